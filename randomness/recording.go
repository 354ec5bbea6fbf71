package randomness

import (
	"encoding/binary"
	"io"
)

// RecordingSource wraps a genuine randomness source and appends every
// byte it returns to an internal Record. It does not alter the bytes in
// any way, so the wrapped computation sees exactly the distribution of
// the underlying source. Errors from the underlying source propagate
// unchanged.
type RecordingSource struct {
	src    io.Reader
	record Record
}

// NewRecordingSource wraps src. The source is borrowed, not owned; the
// caller remains responsible for it.
func NewRecordingSource(src io.Reader) *RecordingSource {
	return &RecordingSource{src: src}
}

// Read fills p from the underlying source and appends whatever was
// produced to the record, even on a short read.
func (s *RecordingSource) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)
	if n > 0 {
		s.record = append(s.record, p[:n]...)
	}
	return n, err
}

// Drain transfers ownership of the accumulated record to the caller and
// resets the source to an empty record. The caller is now responsible
// for zeroing the returned Record when done with it.
func (s *RecordingSource) Drain() Record {
	rec := s.record
	s.record = nil
	return rec
}

// Zero destroys the accumulated record without handing it out. Used on
// error paths where the recorded bytes must not survive.
func (s *RecordingSource) Zero() {
	s.record.Zero()
	s.record = nil
}

// Uint64 derives a fixed-width integer from a randomness source by
// reading eight bytes, so that integer draws are captured by a
// RecordingSource and reproduced by a ReplaySource like any other read.
func Uint64(src io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
