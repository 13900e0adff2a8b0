package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/luisbebop/histline/pkg/daemon/internal/api"
	"github.com/luisbebop/histline/pkg/hist"
	"github.com/luisbebop/histline/pkg/store/storedefs"
	"github.com/sourcegraph/jsonrpc2"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Metadata key for the stifle limit in the store. An empty value means the
// history is not stifled.
const metaStifle = "stifle"

// The service owns the shared history. Handlers for different connections run
// concurrently; mu serializes all access to the list.
type service struct {
	version int
	// Commands are mirrored to the store if it is not nil.
	store storedefs.Store

	mu   sync.Mutex
	list *hist.List[string]
}

func newService(version int, st storedefs.Store) *service {
	s := &service{version: version, store: st, list: hist.NewList[string]()}
	if st != nil {
		s.restore()
	}
	return s
}

// Loads the stifle limit and the commands from the store.
func (s *service) restore() {
	if v, err := s.store.Meta(metaStifle); err == nil && v != "" {
		if max, err := strconv.Atoi(v); err == nil {
			s.list.Stifle(max)
		}
	}
	next, err := s.store.NextCmdSeq()
	if err != nil {
		logger.Println("failed to get next command sequence:", err)
		return
	}
	from := 0
	if limit, ok := s.list.MaxEntries(); ok {
		from = max(next-limit, 0)
	}
	cmds, err := s.store.CmdsWithSeq(from, next)
	if err != nil {
		logger.Println("failed to load commands:", err)
		return
	}
	for _, cmd := range cmds {
		s.list.Add(cmd.Text, "")
		s.list.AddTime(cmd.Time)
	}
	logger.Printf("restored %d commands from the store", len(cmds))
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func (s *service) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		api.MethodVersion:  s.getVersion,
		api.MethodPid:      s.pid,
		api.MethodAdd:      s.add,
		api.MethodAddTime:  s.addTime,
		api.MethodGet:      s.get,
		api.MethodReplace:  s.replace,
		api.MethodRemove:   s.remove,
		api.MethodClear:    s.clear,
		api.MethodStifle:   s.stifle,
		api.MethodUnstifle: s.unstifle,
		api.MethodState:    s.state,
		api.MethodEntries:  s.entries,
		api.MethodSearch:   s.search,
	})
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

func decode(raw json.RawMessage, v any) error {
	if json.Unmarshal(raw, v) != nil {
		return errInvalidParams
	}
	return nil
}

// Converts errors from the hist package to errors with application-defined
// codes.
func convertError(err error) error {
	switch {
	case errors.Is(err, hist.ErrInvalidOffset):
		return &jsonrpc2.Error{Code: api.CodeInvalidOffset, Message: err.Error()}
	case errors.Is(err, hist.ErrNoMatch):
		return &jsonrpc2.Error{Code: api.CodeNoMatch, Message: err.Error()}
	}
	return err
}

func toAPIEntry(offset int, e hist.Entry[string]) api.Entry {
	entry := api.Entry{Offset: offset, Line: e.Line, Data: e.Data}
	if e.HasTime() {
		entry.Time = e.Time.Unix()
	}
	return entry
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// Handler implementations.

func (s *service) getVersion(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	return s.version, nil
}

func (s *service) pid(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	return os.Getpid(), nil
}

func (s *service) add(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.AddRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	t := fromUnix(req.Time)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Add(req.Line, req.Data)
	if !t.IsZero() {
		s.list.AddTime(t)
	}
	if s.store != nil {
		if _, err := s.store.AddCmd(req.Line, t); err != nil {
			logger.Println("failed to mirror command to the store:", err)
		}
	}
	offset := s.list.Base() + s.list.Len() - 1
	if s.list.Len() == 0 {
		// Stifled to 0 entries; nothing was added.
		offset = -1
	}
	return api.AddResponse{Offset: offset}, nil
}

func (s *service) addTime(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.AddTimeRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.AddTime(fromUnix(req.Time))
	return nil, nil
}

func (s *service) get(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.OffsetRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.list.Get(req.Offset)
	if err != nil {
		return nil, convertError(err)
	}
	return toAPIEntry(req.Offset, e), nil
}

func (s *service) replace(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.ReplaceRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, err := s.list.Replace(req.Offset, req.Line, req.Data)
	if err != nil {
		return nil, convertError(err)
	}
	return toAPIEntry(req.Offset, old), nil
}

func (s *service) remove(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.OffsetRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, err := s.list.Remove(req.Offset)
	if err != nil {
		return nil, convertError(err)
	}
	return toAPIEntry(req.Offset, old), nil
}

func (s *service) clear(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Clear()
	return nil, nil
}

func (s *service) stifle(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.StifleRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Stifle(req.Max)
	s.saveStifle()
	return nil, nil
}

func (s *service) unstifle(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max, stifled := s.list.Unstifle()
	s.saveStifle()
	return api.UnstifleResponse{Max: max, Stifled: stifled}, nil
}

// Must be called with mu held.
func (s *service) saveStifle() {
	if s.store == nil {
		return
	}
	var err error
	if max, ok := s.list.MaxEntries(); ok {
		err = s.store.SetMeta(metaStifle, strconv.Itoa(max))
	} else {
		err = s.store.DelMeta(metaStifle)
	}
	if err != nil {
		logger.Println("failed to save stifle limit:", err)
	}
}

func (s *service) state(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.list.State()
	return api.State{Pos: st.Pos, Len: st.Len, Base: st.Base, Max: st.Max, Stifled: st.Stifled}, nil
}

func (s *service) entries(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]api.Entry, 0, s.list.Len())
	for offset, e := range s.list.All() {
		entries = append(entries, toAPIEntry(offset, e))
	}
	return entries, nil
}

func (s *service) search(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var req api.SearchRequest
	if err := decode(raw, &req); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var offsets []int
	switch req.Mode {
	case api.SearchSubstring, "":
		// Newest first. The shared cursor is left alone.
		for pos := s.list.Len(); pos > 0; {
			offset, err := s.list.SearchPos(req.Query, hist.Backward, pos-1)
			if err != nil {
				break
			}
			offsets = append(offsets, offset)
			pos = offset - s.list.Base()
		}
	case api.SearchPrefix:
		for offset, e := range s.list.All() {
			if strings.HasPrefix(e.Line, req.Query) {
				offsets = append(offsets, offset)
			}
		}
		slicesReverse(offsets)
	case api.SearchFuzzy:
		offsets = s.list.FuzzyFind(req.Query)
	default:
		return nil, errInvalidParams
	}
	if len(offsets) == 0 {
		return nil, convertError(hist.ErrNoMatch)
	}
	return api.SearchResponse{Offsets: offsets}, nil
}

func slicesReverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
