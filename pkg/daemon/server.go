package daemon

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/luisbebop/histline/pkg/daemon/internal/api"
	"github.com/luisbebop/histline/pkg/store"
	"github.com/luisbebop/histline/pkg/store/storedefs"
	"github.com/sourcegraph/jsonrpc2"
)

// ServeOpts keeps options that can be passed to Serve.
type ServeOpts struct {
	// If not nil, will be closed when the daemon is ready to serve requests.
	Ready chan<- struct{}
	// Causes the daemon to abort if closed or sent any data. If nil, Serve will
	// set up its own signal channel by listening to SIGINT and SIGTERM.
	Signals <-chan os.Signal
	// If not nil, overrides the response of the version method.
	Version *int
}

// Serve runs the daemon service, listening on the socket specified by sockpath
// and recording commands in dbpath until all clients have exited. An empty
// dbpath disables recording. See doc for ServeOpts for additional options.
func Serve(sockpath, dbpath string, opts ServeOpts) int {
	logger.Println("pid is", syscall.Getpid())
	logger.Println("going to listen", sockpath)
	listener, err := listen(sockpath)
	if err != nil {
		logger.Printf("failed to listen on %s: %v", sockpath, err)
		logger.Println("aborting")
		return 2
	}

	var st store.DBStore
	if dbpath != "" {
		st, err = store.NewStore(dbpath)
		if err != nil {
			logger.Printf("failed to create storage: %v", err)
			logger.Printf("serving anyway")
		}
	}

	version := api.Version
	if opts.Version != nil {
		version = *opts.Version
	}
	var sd storedefs.Store
	if st != nil {
		sd = st
	}
	handler := newService(version, sd).handler()

	connCh := make(chan net.Conn, 10)
	listenErrCh := make(chan error, 1)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				listenErrCh <- err
				close(listenErrCh)
				return
			}
			connCh <- conn
		}
	}()

	sigCh := opts.Signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(ch)
		sigCh = ch
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conns := make(map[*jsonrpc2.Conn]struct{})
	connDoneCh := make(chan *jsonrpc2.Conn, 10)

	interrupt := func() {
		if len(conns) == 0 {
			logger.Println("exiting since there are no clients")
		}
		logger.Printf("going to close %v active connections", len(conns))
		for conn := range conns {
			// The client may have closed the connection already; there is
			// nothing to do about the error.
			conn.Close()
		}
	}

	if opts.Ready != nil {
		close(opts.Ready)
	}

loop:
	for {
		select {
		case sig := <-sigCh:
			logger.Printf("received signal %v", sig)
			interrupt()
			break loop
		case err := <-listenErrCh:
			logger.Println("could not listen:", err)
			if len(conns) == 0 {
				logger.Println("exiting since there are no clients")
				break loop
			}
			logger.Println("continuing to serve until all existing clients exit")
		case netConn := <-connCh:
			conn := jsonrpc2.NewConn(ctx,
				jsonrpc2.NewBufferedStream(netConn, jsonrpc2.VSCodeObjectCodec{}),
				handler)
			conns[conn] = struct{}{}
			go func() {
				<-conn.DisconnectNotify()
				connDoneCh <- conn
			}()
		case conn := <-connDoneCh:
			delete(conns, conn)
			if len(conns) == 0 {
				logger.Println("all clients disconnected, exiting")
				break loop
			}
		}
	}

	err = os.Remove(sockpath)
	if err != nil {
		logger.Printf("failed to remove socket %s: %v", sockpath, err)
	}
	if st != nil {
		err = st.Close()
		if err != nil {
			logger.Printf("failed to close storage: %v", err)
		}
	}
	err = listener.Close()
	if err != nil {
		logger.Printf("failed to close listener: %v", err)
	}
	// Ensure that the listener goroutine has exited before returning
	<-listenErrCh
	return 0
}
