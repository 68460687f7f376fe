package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"

	psderr "github.com/layerkit/psd-reader/errors"
)

func newReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

func TestNewReaderRejectsNonZeroOffset(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3, 4})
	if _, err := src.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	_, err := NewReader(src)
	if !errors.Is(err, ErrNotAtStart) {
		t.Fatalf("NewReader = %v, want ErrNotAtStart", err)
	}
}

func TestReadBigEndian(t *testing.T) {
	r := newReader(t, []byte{
		0x12, 0x34, // u16
		0x00, 0x01, 0x02, 0x03, // u32
		0xFF, 0xFD, // s16 = -3
		0xAB, // u8
	})

	u16, err := r.ReadUint16()
	if err != nil || u16 != 0x1234 {
		t.Errorf("ReadUint16 = %#x, %v; want 0x1234", u16, err)
	}
	u32, err := r.ReadUint32()
	if err != nil || u32 != 0x00010203 {
		t.Errorf("ReadUint32 = %#x, %v; want 0x00010203", u32, err)
	}
	s16, err := r.ReadInt16()
	if err != nil || s16 != -3 {
		t.Errorf("ReadInt16 = %d, %v; want -3", s16, err)
	}
	u8, err := r.ReadUint8()
	if err != nil || u8 != 0xAB {
		t.Errorf("ReadUint8 = %#x, %v; want 0xAB", u8, err)
	}
	if r.Offset() != 9 {
		t.Errorf("Offset = %d, want 9", r.Offset())
	}
}

func TestReadString(t *testing.T) {
	r := newReader(t, []byte("8BPSrest"))
	s, err := r.ReadString(4)
	if err != nil || s != "8BPS" {
		t.Fatalf("ReadString = %q, %v; want %q", s, err, "8BPS")
	}
}

func TestReadRectangle(t *testing.T) {
	r := newReader(t, []byte{
		0xFF, 0xFF, 0xFF, 0xFF, // top = -1
		0x00, 0x00, 0x00, 0x02, // left = 2
		0x00, 0x00, 0x00, 0x64, // bottom = 100
		0x00, 0x00, 0x01, 0x00, // right = 256
	})

	top, left, bottom, right, err := r.ReadRectangle()
	if err != nil {
		t.Fatalf("ReadRectangle: %v", err)
	}
	if top != -1 || left != 2 || bottom != 100 || right != 256 {
		t.Errorf("rectangle = (%d,%d,%d,%d), want (-1,2,100,256)", top, left, bottom, right)
	}
	if r.Offset() != 16 {
		t.Errorf("Offset = %d, want 16", r.Offset())
	}
}

func TestReadBitsMSBFirst(t *testing.T) {
	// 0xA1 = 1010 0001: index 0 is bit 7.
	r := newReader(t, []byte{0xA1, 0xFF})

	bits, err := r.ReadBits(2)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	want := [8]bool{true, false, true, false, false, false, false, true}
	if bits != want {
		t.Errorf("ReadBits = %v, want %v", bits, want)
	}
	// Both bytes consumed.
	if r.Offset() != 2 {
		t.Errorf("Offset = %d, want 2", r.Offset())
	}
}

func TestReadBitsRejectsZeroBytes(t *testing.T) {
	r := newReader(t, []byte{0xFF})
	if _, err := r.ReadBits(0); err == nil {
		t.Fatal("expected error for a zero-byte bit read")
	}
	if r.Offset() != 0 {
		t.Errorf("Offset = %d, want 0 after rejected read", r.Offset())
	}
}

func TestSkip(t *testing.T) {
	r := newReader(t, []byte{0, 1, 2, 3, 4, 5})
	if err := r.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Offset() != 4 {
		t.Errorf("Offset = %d, want 4", r.Offset())
	}
	u8, err := r.ReadUint8()
	if err != nil || u8 != 4 {
		t.Errorf("ReadUint8 after skip = %d, %v; want 4", u8, err)
	}
	if r.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", r.Remaining())
	}
}

func TestTruncationReportsCounts(t *testing.T) {
	r := newReader(t, []byte{1, 2, 3})

	_, err := r.ReadString(4)
	var e *psderr.Error
	if !errors.As(err, &e) {
		t.Fatalf("ReadString = %v, want *errors.Error", err)
	}
	if e.Kind != psderr.KindTruncation {
		t.Errorf("Kind = %q, want truncation", e.Kind)
	}
	if e.Requested != 4 || e.Available != 3 {
		t.Errorf("requested/available = %d/%d, want 4/3", e.Requested, e.Available)
	}
}

func TestSkipPastEndIsTruncation(t *testing.T) {
	r := newReader(t, []byte{1, 2})
	err := r.Skip(5)
	if !errors.Is(err, &psderr.Error{Kind: psderr.KindTruncation}) {
		t.Fatalf("Skip = %v, want truncation", err)
	}
}
