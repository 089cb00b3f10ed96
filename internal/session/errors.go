package session

import "errors"

var (
	// ErrNotLoaded indicates an operation that needs the palette before it arrived.
	ErrNotLoaded = errors.New("session: palette not loaded")

	// ErrClosed indicates the session's Run loop has returned.
	ErrClosed = errors.New("session: closed")

	// ErrStarted indicates Run was called more than once.
	ErrStarted = errors.New("session: already running")
)
