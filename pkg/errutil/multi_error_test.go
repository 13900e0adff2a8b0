package errutil

import (
	"errors"
	"io/fs"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Errorf("Multi() != nil")
	}
	if Multi(nil, nil) != nil {
		t.Errorf("Multi(nil, nil) != nil")
	}
	if Multi(nil, err1) != err1 {
		t.Errorf("Multi(nil, err1) != err1")
	}

	err := Multi(err1, err2, err3)
	wantMsg := "multiple errors: error 1; error 2; error 3"
	if err.Error() != wantMsg {
		t.Errorf("got message %q, want %q", err.Error(), wantMsg)
	}

	flattened := Multi(Multi(err1, err2), err3)
	if flattened.Error() != wantMsg {
		t.Errorf("got message %q, want %q", flattened.Error(), wantMsg)
	}
}

func TestMulti_Is(t *testing.T) {
	err := Multi(err1, fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(%v, fs.ErrNotExist) = false", err)
	}
	if errors.Is(err, err2) {
		t.Errorf("errors.Is(%v, err2) = true", err)
	}
}
