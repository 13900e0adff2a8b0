// Package env keeps names of environment variables with special significance to
// histline.
package env

// Environment variables with special significance to histline.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HISTFILE                 = "HISTFILE"
	HISTLINE_RC              = "HISTLINE_RC"
	HISTLINE_TEST_TIME_SCALE = "HISTLINE_TEST_TIME_SCALE"
	HOME                     = "HOME"
	XDG_RUNTIME_DIR          = "XDG_RUNTIME_DIR"
)
