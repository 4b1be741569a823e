package domain

import "errors"

// ErrSessionNotFound is returned when a chat has no persisted session.
var ErrSessionNotFound = errors.New("session not found")

// ErrStaleSession is returned by conditional store operations when the
// persisted session no longer carries the expected session ID. It means a
// concurrent transition won the race; the losing write must be discarded.
var ErrStaleSession = errors.New("stale session")

// ErrNodeNotFound is returned when a node ID does not resolve in the
// registry. There is no runtime fallback: a dangling reference in a
// conversation file is a hard error.
var ErrNodeNotFound = errors.New("node not found")
