// Package api defines the JSON-RPC methods of the history daemon and their
// parameters.
package api

// Version is the API version. It should be bumped any time the API changes.
const Version = 1

// Method names.
const (
	MethodVersion  = "hist.version"
	MethodPid      = "hist.pid"
	MethodAdd      = "hist.add"
	MethodAddTime  = "hist.addTime"
	MethodGet      = "hist.get"
	MethodReplace  = "hist.replace"
	MethodRemove   = "hist.remove"
	MethodClear    = "hist.clear"
	MethodStifle   = "hist.stifle"
	MethodUnstifle = "hist.unstifle"
	MethodState    = "hist.state"
	MethodEntries  = "hist.entries"
	MethodSearch   = "hist.search"
)

// Application-defined JSON-RPC error codes. They map to the sentinel errors of
// the hist package.
const (
	CodeInvalidOffset int64 = 1
	CodeNoMatch       int64 = 2
)

// Timestamps are Unix seconds; 0 means no timestamp.

type AddRequest struct {
	Line string `json:"line"`
	Data string `json:"data,omitempty"`
	Time int64  `json:"time,omitempty"`
}

type AddResponse struct {
	Offset int `json:"offset"`
}

type AddTimeRequest struct {
	Time int64 `json:"time"`
}

type OffsetRequest struct {
	Offset int `json:"offset"`
}

type ReplaceRequest struct {
	Offset int    `json:"offset"`
	Line   string `json:"line"`
	Data   string `json:"data,omitempty"`
}

type Entry struct {
	Offset int    `json:"offset"`
	Line   string `json:"line"`
	Data   string `json:"data,omitempty"`
	Time   int64  `json:"time,omitempty"`
}

type StifleRequest struct {
	Max int `json:"max"`
}

type UnstifleResponse struct {
	Max     int  `json:"max"`
	Stifled bool `json:"stifled"`
}

type State struct {
	Pos     int  `json:"pos"`
	Len     int  `json:"len"`
	Base    int  `json:"base"`
	Max     int  `json:"max"`
	Stifled bool `json:"stifled"`
}

// Search modes.
const (
	SearchSubstring = "substring"
	SearchPrefix    = "prefix"
	SearchFuzzy     = "fuzzy"
)

type SearchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

type SearchResponse struct {
	Offsets []int `json:"offsets"`
}
