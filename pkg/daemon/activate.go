package daemon

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/luisbebop/histline/pkg/daemon/client"
	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
	"github.com/luisbebop/histline/pkg/daemon/internal/api"
)

var (
	daemonSpawnTimeout     = time.Second
	daemonSpawnWaitPerLoop = 10 * time.Millisecond
)

type daemonStatus int

const (
	daemonOK daemonStatus = iota
	sockfileMissing
	sockfileOtherError
	connectionRefused
	connectionOtherError
	daemonOutdated
)

const connectionRefusedFmt = `Socket file %s exists but refuses requests. This is likely because the daemon was terminated abnormally. Going to remove socket file and re-spawn the daemon.
`

// Activate returns a daemon client, either by connecting to an existing daemon,
// or spawning a new one.
//
// It always returns a non-nil client, even if there was an error. Messages
// about progress are written to w.
func Activate(w io.Writer, spawnCfg *daemondefs.SpawnConfig) (daemondefs.Client, error) {
	sockpath := spawnCfg.SockPath
	cl := client.NewClient(sockpath)
	status, err := detectDaemon(sockpath, cl)
	shouldSpawn := false

	switch status {
	case daemonOK:
	case sockfileMissing:
		shouldSpawn = true
	case sockfileOtherError:
		return cl, fmt.Errorf("socket file %s inaccessible: %w", sockpath, err)
	case connectionRefused:
		fmt.Fprintf(w, connectionRefusedFmt, sockpath)
		err := os.Remove(sockpath)
		if err != nil {
			return cl, fmt.Errorf("failed to remove socket file: %w", err)
		}
		shouldSpawn = true
	case connectionOtherError:
		return cl, fmt.Errorf("unexpected RPC error on socket %s: %w", sockpath, err)
	case daemonOutdated:
		return cl, fmt.Errorf("daemon on socket %s is outdated: %w", sockpath, err)
	default:
		return cl, errors.New("code bug: unknown daemon status")
	}

	if !shouldSpawn {
		return cl, nil
	}

	err = spawn(spawnCfg)
	if err != nil {
		return cl, fmt.Errorf("failed to spawn daemon: %w", err)
	}
	logger.Println("spawned daemon")

	// Wait for daemon to come online
	start := time.Now()
	for time.Since(start) < daemonSpawnTimeout {
		cl.ResetConn()
		status, err := detectDaemon(sockpath, cl)
		logger.Println("daemon status:", status, err)
		if status == daemonOK {
			return cl, nil
		} else if status != sockfileMissing && status != connectionRefused {
			return cl, fmt.Errorf("daemon unreachable after spawning: %w", err)
		}
		time.Sleep(daemonSpawnWaitPerLoop)
	}
	return cl, fmt.Errorf("daemon did not come up within %v", daemonSpawnTimeout)
}

func detectDaemon(sockpath string, cl daemondefs.Client) (daemonStatus, error) {
	_, err := os.Lstat(sockpath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sockfileMissing, err
		}
		return sockfileOtherError, err
	}

	version, err := cl.Version()
	if err != nil {
		if errors.Is(err, errConnRefused) {
			return connectionRefused, err
		}
		return connectionOtherError, err
	}
	if version < api.Version {
		return daemonOutdated, fmt.Errorf("version %d < %d", version, api.Version)
	}
	return daemonOK, nil
}

func (s daemonStatus) String() string {
	switch s {
	case daemonOK:
		return "ok"
	case sockfileMissing:
		return "socket file missing"
	case sockfileOtherError:
		return "socket file inaccessible"
	case connectionRefused:
		return "connection refused"
	case connectionOtherError:
		return "connection error"
	case daemonOutdated:
		return "daemon outdated"
	}
	return fmt.Sprintf("daemonStatus(%d)", int(s))
}
