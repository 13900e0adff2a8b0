package daemon

import (
	"fmt"
	"net"
	"os"
	"syscall"
)

// https://docs.microsoft.com/en-us/windows/win32/winsock/windows-sockets-error-codes-2
var errConnRefused = syscall.Errno(10061)

// No-op on Windows.
func setUmaskForDaemon() {}

// There are no UNIX sockets; the "socket" is a file containing the address of
// a loopback TCP listener.
func listen(path string) (net.Listener, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	listener, err := net.Listen("tcp", "127.0.0.1:")
	if err == nil {
		_, err = fmt.Fprint(file, listener.Addr())
		if err != nil {
			listener.Close()
		}
	}
	if err != nil {
		if err2 := os.Remove(path); err2 != nil {
			logger.Println("failed to remove sock file after failure to listen:", err2)
		}
		return nil, err
	}
	return listener, nil
}

const (
	createBreakwayFromJob = 0x01000000
	createNewProcessGroup = 0x00000200
	detachedProcess       = 0x00000008
	daemonCreationFlags   = createBreakwayFromJob | createNewProcessGroup | detachedProcess
)

func procAttrForSpawn(files []*os.File) *os.ProcAttr {
	return &os.ProcAttr{
		Dir: `C:\`,
		// SystemRoot is needed for net.Listen.
		Env:   []string{"SystemRoot=" + os.Getenv("SystemRoot")},
		Files: files,
		Sys:   &syscall.SysProcAttr{CreationFlags: daemonCreationFlags},
	}
}
