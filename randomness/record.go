package randomness

// Record is an ordered capture of the random bytes drawn during a single
// run of a computation. Insertion order is significant: a ReplaySource
// hands the bytes back in exactly the order they were drawn.
//
// A Record is owned by exactly one component at a time: the
// RecordingSource that captured it, then the challenge that drained it,
// then (on reveal) the caller. Whoever retires a Record without handing
// it onward must call Zero first.
type Record []byte

// Zero overwrites the record's backing buffer. The record still has its
// length afterwards; only the contents are destroyed.
func (r Record) Zero() {
	for i := range r {
		r[i] = 0
	}
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Len returns the number of recorded bytes.
func (r Record) Len() int {
	return len(r)
}
