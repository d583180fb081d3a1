package feed

import (
	"errors"
	"fmt"
)

// ErrorKind tells the shell how to surface a failed load.
type ErrorKind int

const (
	// InitialLoadFailed blocks all content.
	InitialLoadFailed ErrorKind = iota + 1
	// LoadMoreFailed leaves loaded articles usable; the user may retry.
	LoadMoreFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InitialLoadFailed:
		return "initial load failed"
	case LoadMoreFailed:
		return "load more failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// LoadError records a failed page fetch.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Message is the text shown to the user. Transport, 4xx and 5xx failures
// all collapse to the same wording.
func (e *LoadError) Message() string {
	if e.Kind == InitialLoadFailed {
		return "Failed to load articles"
	}
	return "Failed to load more articles"
}

// ErrStale is returned when a fetch finished after the store was closed
// or reloaded; its result was dropped.
var ErrStale = errors.New("feed: result discarded")
