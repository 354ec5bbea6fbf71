package randomness

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingPassesBytesThroughUnchanged(t *testing.T) {
	stream := bytes.Repeat([]byte{0xA5, 0x5A, 0x01, 0xFF}, 8)

	rec := NewRecordingSource(bytes.NewReader(stream))
	got := make([]byte, len(stream))
	_, err := io.ReadFull(rec, got)
	require.NoError(t, err)

	require.Equal(t, stream, got, "recording must not alter the bytes the source produced")
	require.Equal(t, Record(stream), rec.Drain())
}

func TestRecordingCapturesRequestOrder(t *testing.T) {
	rec := NewRecordingSource(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))

	first := make([]byte, 3)
	second := make([]byte, 5)
	_, err := io.ReadFull(rec, first)
	require.NoError(t, err)
	_, err = io.ReadFull(rec, second)
	require.NoError(t, err)

	require.Equal(t, Record{1, 2, 3, 4, 5, 6, 7, 8}, rec.Drain())
}

func TestRecordingDrainResetsRecord(t *testing.T) {
	rec := NewRecordingSource(bytes.NewReader([]byte{9, 9, 9}))

	buf := make([]byte, 3)
	_, err := io.ReadFull(rec, buf)
	require.NoError(t, err)

	require.Equal(t, 3, rec.Drain().Len())
	require.Equal(t, 0, rec.Drain().Len(), "second drain must be empty")
}

func TestRecordingPropagatesSourceErrors(t *testing.T) {
	rec := NewRecordingSource(bytes.NewReader([]byte{1, 2}))

	buf := make([]byte, 8)
	_, err := io.ReadFull(rec, buf)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Whatever was produced before the failure is still recorded.
	require.Equal(t, Record{1, 2}, rec.Drain())
}

func TestRecordingZeroDestroysRecord(t *testing.T) {
	rec := NewRecordingSource(bytes.NewReader([]byte{7, 7, 7, 7}))
	buf := make([]byte, 4)
	_, err := io.ReadFull(rec, buf)
	require.NoError(t, err)

	captured := rec.record
	rec.Zero()
	assert.Equal(t, Record{0, 0, 0, 0}, captured, "zeroed record must be overwritten in place")
	require.Equal(t, 0, rec.Drain().Len())
}

func TestReplayReturnsRecordedBytes(t *testing.T) {
	record := Record{10, 20, 30, 40, 50}
	replay := NewReplaySource(record)

	first := make([]byte, 2)
	_, err := io.ReadFull(replay, first)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20}, first)

	rest := make([]byte, 3)
	_, err = io.ReadFull(replay, rest)
	require.NoError(t, err)
	require.Equal(t, []byte{30, 40, 50}, rest)
	require.Equal(t, 0, replay.Remaining())
}

func TestReplayExhaustion(t *testing.T) {
	replay := NewReplaySource(Record{1, 2, 3})

	buf := make([]byte, 2)
	_, err := replay.Read(buf)
	require.NoError(t, err)

	// One byte left; asking for two must fail without consuming it.
	_, err = replay.Read(buf)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 1, replay.Remaining())

	_, err = replay.Read(buf[:1])
	require.NoError(t, err)
	require.Equal(t, byte(3), buf[0])
}

func TestReplayEmptyRecord(t *testing.T) {
	replay := NewReplaySource(nil)

	_, err := replay.Read(make([]byte, 1))
	require.ErrorIs(t, err, ErrExhausted)

	// Zero-length reads are fine.
	n, err := replay.Read(nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestUint64RecordsAndReplays(t *testing.T) {
	rec := NewRecordingSource(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	original, err := Uint64(rec)
	require.NoError(t, err)

	replayed, err := Uint64(NewReplaySource(rec.Drain()))
	require.NoError(t, err)
	require.Equal(t, original, replayed)
}

func TestUint64Exhaustion(t *testing.T) {
	_, err := Uint64(NewReplaySource(Record{1, 2, 3}))
	require.ErrorIs(t, err, ErrExhausted)
}

func TestRecordZeroAndClone(t *testing.T) {
	r := Record{1, 2, 3}
	c := r.Clone()
	r.Zero()

	assert.Equal(t, Record{0, 0, 0}, r)
	assert.Equal(t, Record{1, 2, 3}, c, "clone must be independent of the original")
	assert.Nil(t, Record(nil).Clone())
}
