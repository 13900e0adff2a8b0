package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It also provides methods to register flags
// that are shared by more than one subprogram; calling them more than once
// registers the flags only once.
type FlagSet struct {
	*flag.FlagSet
	daemonPaths *DaemonPaths
	json        *bool
}

// DaemonPaths keeps the paths used by the history daemon and its clients.
type DaemonPaths struct {
	DB, Sock string
}

// DaemonPaths returns a pointer to a struct storing the value of -db and
// -sock flags, registering them if needed.
func (fs *FlagSet) DaemonPaths() *DaemonPaths {
	if fs.daemonPaths == nil {
		var dp DaemonPaths
		fs.StringVar(&dp.DB, "db", "",
			"Path to the database file of the history daemon")
		fs.StringVar(&dp.Sock, "sock", "",
			"Path to the history daemon's UNIX socket")
		fs.daemonPaths = &dp
	}
	return fs.daemonPaths
}

// JSON returns a pointer to the value of the -json flag, registering it if
// needed.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo, -version or -print-config in JSON")
		fs.json = &json
	}
	return fs.json
}
