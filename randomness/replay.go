package randomness

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a replayed computation requests more
// randomness than the record contains. This means the computation being
// replayed is not byte-for-byte the one that produced the record, which
// is a verification failure in its own right.
var ErrExhausted = errors.New("randomness: replay record exhausted")

// ReplaySource replays a previously captured Record. Each read returns
// the next recorded bytes and advances an internal cursor. Reads past
// the end of the record fail with ErrExhausted; the source never pads
// with real randomness.
type ReplaySource struct {
	record Record
	cursor int
}

// NewReplaySource creates a source that replays record from the start.
// The record is borrowed for the lifetime of the source.
func NewReplaySource(record Record) *ReplaySource {
	return &ReplaySource{record: record}
}

// Read copies the next len(p) recorded bytes into p. A request that
// would read past the end of the record fails with ErrExhausted and
// consumes nothing.
func (s *ReplaySource) Read(p []byte) (int, error) {
	if remaining := len(s.record) - s.cursor; len(p) > remaining {
		return 0, fmt.Errorf("%w: requested %d bytes with %d remaining",
			ErrExhausted, len(p), remaining)
	}
	n := copy(p, s.record[s.cursor:])
	s.cursor += n
	return n, nil
}

// Remaining returns the number of recorded bytes not yet replayed.
func (s *ReplaySource) Remaining() int {
	return len(s.record) - s.cursor
}
