package imap

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by commands issued before Connect succeeded.
var ErrNotConnected = errors.New("not connected")

// Connection stages reported by ConnectionError.
const (
	StageConnect      = "connect"
	StageAuthenticate = "authenticate"
	StageSelect       = "select"
)

// ConnectionError aborts a run. Stage is diagnostic only.
type ConnectionError struct {
	Stage string
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("imap %s failed: %v", e.Stage, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SearchError is scoped to one sender filter.
type SearchError struct {
	Sender string
	Err    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("error searching unseen emails from %s: %v", e.Sender, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// FetchError is scoped to one message.
type FetchError struct {
	UID uint32
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching message UID %d: %v", e.UID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MarkReadError means the message stays unseen and may be processed again next run.
type MarkReadError struct {
	UID uint32
	Err error
}

func (e *MarkReadError) Error() string {
	return fmt.Sprintf("error marking message UID %d as seen: %v", e.UID, e.Err)
}

func (e *MarkReadError) Unwrap() error { return e.Err }
