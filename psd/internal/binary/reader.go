// Package binary implements the positioned byte cursor the section
// decoders read from. All multi-byte reads are big-endian, matching the
// on-disk format.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	psderr "github.com/layerkit/psd-reader/errors"
)

// ErrNotAtStart is returned when the source handed to NewReader is not
// positioned at offset 0. The caller must rewind before constructing; the
// reader never resyncs silently.
var ErrNotAtStart = errors.New("binary: source not positioned at offset 0")

// Reader wraps a seekable byte source with position tracking and typed
// fixed-width reads. It is not safe for concurrent use; each decode owns
// exactly one Reader.
type Reader struct {
	r    io.ReadSeeker
	size int64
	off  int64
}

// NewReader creates a Reader over src. src must be positioned at offset 0.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	pos, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("binary: query position: %w", err)
	}
	if pos != 0 {
		return nil, fmt.Errorf("%w (at %d)", ErrNotAtStart, pos)
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("binary: query size: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("binary: rewind: %w", err)
	}

	return &Reader{r: src, size: size}, nil
}

// Offset returns the current absolute byte offset.
func (r *Reader) Offset() int64 {
	return r.off
}

// Size returns the total length of the source in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 {
	return r.size - r.off
}

// read returns exactly n bytes or a truncation error naming the requested
// and available byte counts.
func (r *Reader) read(n int64) ([]byte, error) {
	if avail := r.size - r.off; n > avail {
		return nil, psderr.Truncation("", n, avail)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, &psderr.Error{
			Kind:      psderr.KindTruncation,
			Requested: n,
			Available: r.size - r.off,
			Detail:    "short read",
			Cause:     err,
		}
	}
	r.off += n
	return buf, nil
}

// ReadString reads exactly n bytes and returns them as text.
func (r *Reader) ReadString(n int) (string, error) {
	buf, err := r.read(int64(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadRectangle reads four big-endian signed 32-bit integers in
// top, left, bottom, right order.
func (r *Reader) ReadRectangle() (top, left, bottom, right int32, err error) {
	buf, err := r.read(16)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	top = int32(binary.BigEndian.Uint32(buf[0:4]))
	left = int32(binary.BigEndian.Uint32(buf[4:8]))
	bottom = int32(binary.BigEndian.Uint32(buf[8:12]))
	right = int32(binary.BigEndian.Uint32(buf[12:16]))
	return top, left, bottom, right, nil
}

// ReadBits consumes n bytes and decomposes the first into its 8 bits,
// most significant first: index 0 holds bit 7, index 7 holds bit 0.
func (r *Reader) ReadBits(n int) ([8]bool, error) {
	var bits [8]bool
	if n < 1 {
		return bits, fmt.Errorf("binary: ReadBits needs at least 1 byte, got %d", n)
	}
	buf, err := r.read(int64(n))
	if err != nil {
		return bits, err
	}
	for i := 0; i < 8; i++ {
		bits[i] = buf[0]&(1<<(7-i)) != 0
	}
	return bits, nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("binary: negative skip %d", n)
	}
	if avail := r.size - r.off; n > avail {
		return psderr.Truncation("", n, avail)
	}
	if _, err := r.r.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("binary: skip %d: %w", n, err)
	}
	r.off += n
	return nil
}
