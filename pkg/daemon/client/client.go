// Package client implements a client for the shared history daemon.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
	"github.com/luisbebop/histline/pkg/daemon/internal/api"
	"github.com/luisbebop/histline/pkg/hist"
	"github.com/sourcegraph/jsonrpc2"
)

// ErrDaemonUnreachable is returned when the daemon cannot be reached after
// several retries.
var ErrDaemonUnreachable = errors.New("daemon offline")

const (
	retries   = 3
	retryWait = 10 * time.Millisecond
)

// Implementation of the Client interface.
type client struct {
	sockPath  string
	rpcClient *jsonrpc2.Conn
	waits     sync.WaitGroup
}

// NewClient creates a client for the daemon listening on sockPath. The
// connection is established lazily, when the first request is made.
func NewClient(sockPath string) daemondefs.Client {
	return &client{sockPath: sockPath}
}

func (c *client) SockPath() string { return c.sockPath }

func (c *client) ResetConn() error {
	if c.rpcClient == nil {
		return nil
	}
	rc := c.rpcClient
	c.rpcClient = nil
	return rc.Close()
}

func (c *client) Close() error {
	c.waits.Wait()
	return c.ResetConn()
}

// Client never serves requests from the daemon.
type nopHandler struct{}

func (nopHandler) Handle(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) {}

func (c *client) call(method string, params, result any) error {
	c.waits.Add(1)
	defer c.waits.Done()

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryWait)
		}
		if c.rpcClient == nil {
			conn, err := dial(c.sockPath)
			if err != nil {
				lastErr = err
				continue
			}
			c.rpcClient = jsonrpc2.NewConn(context.Background(),
				jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}),
				nopHandler{})
		}

		err := c.rpcClient.Call(context.Background(), method, params, result)
		if errors.Is(err, jsonrpc2.ErrClosed) {
			lastErr = err
			c.ResetConn()
			continue
		}
		return convertError(err)
	}
	return fmt.Errorf("%w: %w", ErrDaemonUnreachable, lastErr)
}

// Converts errors with application-defined codes back to the sentinel errors
// of the hist package.
func convertError(err error) error {
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	switch rpcErr.Code {
	case api.CodeInvalidOffset:
		return fmt.Errorf("%s: %w", rpcErr.Message, hist.ErrInvalidOffset)
	case api.CodeNoMatch:
		return hist.ErrNoMatch
	}
	return errors.New(rpcErr.Message)
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromAPIEntry(e api.Entry) daemondefs.Entry {
	entry := daemondefs.Entry{Offset: e.Offset, Line: e.Line, Data: e.Data}
	if e.Time != 0 {
		entry.Time = time.Unix(e.Time, 0)
	}
	return entry
}

func (c *client) Version() (int, error) {
	var version int
	err := c.call(api.MethodVersion, nil, &version)
	return version, err
}

func (c *client) Pid() (int, error) {
	var pid int
	err := c.call(api.MethodPid, nil, &pid)
	return pid, err
}

func (c *client) Add(line, data string) (int, error) {
	return c.add(api.AddRequest{Line: line, Data: data})
}

func (c *client) AddCmd(line string, t time.Time) (int, error) {
	return c.add(api.AddRequest{Line: line, Time: toUnix(t)})
}

func (c *client) add(req api.AddRequest) (int, error) {
	var res api.AddResponse
	err := c.call(api.MethodAdd, req, &res)
	return res.Offset, err
}

func (c *client) AddTime(t time.Time) error {
	return c.call(api.MethodAddTime, api.AddTimeRequest{Time: toUnix(t)}, nil)
}

func (c *client) Get(offset int) (daemondefs.Entry, error) {
	return c.entry(api.MethodGet, api.OffsetRequest{Offset: offset})
}

func (c *client) Replace(offset int, line, data string) (daemondefs.Entry, error) {
	return c.entry(api.MethodReplace,
		api.ReplaceRequest{Offset: offset, Line: line, Data: data})
}

func (c *client) Remove(offset int) (daemondefs.Entry, error) {
	return c.entry(api.MethodRemove, api.OffsetRequest{Offset: offset})
}

func (c *client) entry(method string, req any) (daemondefs.Entry, error) {
	var res api.Entry
	err := c.call(method, req, &res)
	if err != nil {
		return daemondefs.Entry{}, err
	}
	return fromAPIEntry(res), nil
}

func (c *client) Clear() error {
	return c.call(api.MethodClear, nil, nil)
}

func (c *client) Stifle(max int) error {
	return c.call(api.MethodStifle, api.StifleRequest{Max: max}, nil)
}

func (c *client) Unstifle() (int, bool, error) {
	var res api.UnstifleResponse
	err := c.call(api.MethodUnstifle, nil, &res)
	return res.Max, res.Stifled, err
}

func (c *client) State() (hist.State, error) {
	var res api.State
	err := c.call(api.MethodState, nil, &res)
	return hist.State{Pos: res.Pos, Len: res.Len, Base: res.Base,
		Max: res.Max, Stifled: res.Stifled}, err
}

func (c *client) Entries() ([]daemondefs.Entry, error) {
	var res []api.Entry
	err := c.call(api.MethodEntries, nil, &res)
	if err != nil {
		return nil, err
	}
	entries := make([]daemondefs.Entry, len(res))
	for i, e := range res {
		entries[i] = fromAPIEntry(e)
	}
	return entries, nil
}

func (c *client) Search(query string, mode daemondefs.SearchMode) ([]int, error) {
	var res api.SearchResponse
	err := c.call(api.MethodSearch,
		api.SearchRequest{Query: query, Mode: string(mode)}, &res)
	return res.Offsets, err
}
