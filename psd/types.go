package psd

import (
	"fmt"
	"sort"
	"strings"

	psdreader "github.com/layerkit/psd-reader"
)

// Document is one fully decoded file. Every sub-entity is owned
// exclusively by the document and never mutated after Decode returns.
type Document struct {
	Header           Header
	ColorModeData    ColorModeData
	ImageResources   ImageResources
	LayerAndMaskInfo LayerAndMaskInfo
	ImageData        ImageData
}

func (d *Document) String() string {
	parts := []string{
		d.Header.String(),
		d.ColorModeData.String(),
		d.ImageResources.String(),
		d.LayerAndMaskInfo.String(),
		d.ImageData.String(),
	}
	return strings.Join(parts, "\n")
}

// Header is the fixed 26-byte record at the start of every document.
type Header struct {
	Signature string
	Version   uint16
	Channels  uint16
	Height    uint32
	Width     uint32
	Depth     uint16
	ColorMode ColorMode
}

func (h Header) String() string {
	return fmt.Sprintf("==Header==\n" +
		"Signature: %s\n" +
		"Version: %d\n" +
		"Channels: %d\n" +
		"Height: %d\n" +
		"Width: %d\n" +
		"Depth: %d\n" +
		"Color Mode: %s",
		h.Signature, h.Version, h.Channels, h.Height, h.Width, h.Depth, h.ColorMode)
}

// ColorMode pairs a color-mode code with its table label.
type ColorMode struct {
	Label string
	Code  uint16
}

func (m ColorMode) String() string {
	return fmt.Sprintf("%s (%d)", m.Label, m.Code)
}

// ColorModeData is the length-prefixed opaque block after the header.
// Indexed-color documents carry a 768-byte color table here, duotone
// documents their duotone specification; the payload is not interpreted.
type ColorModeData struct {
	Length uint32
	Data   psdreader.Span
}

func (c ColorModeData) String() string {
	return fmt.Sprintf("==Color Mode Data==\nLength: %d", c.Length)
}

// ImageResources is the length-prefixed opaque resource-block section.
type ImageResources struct {
	Length uint32
	Data   psdreader.Span
}

func (r ImageResources) String() string {
	return fmt.Sprintf("==Image Resources==\nLength: %d", r.Length)
}

// LayerAndMaskInfo holds the decoded layer records plus the located
// global mask-data block. LayerCount is always the absolute count; a
// negative on-disk count only hints that channel 0 of the merged result
// carries transparency.
type LayerAndMaskInfo struct {
	Length          uint32
	LayerInfoLength uint32
	LayerCount      int
	Layers          []Layer
	MaskDataLength  uint32
	MaskData        psdreader.Span
}

func (l LayerAndMaskInfo) String() string {
	return fmt.Sprintf("==Layer and Mask Info==\n" +
		"Length: %d\n" +
		"Layer Count: %d\n" +
		"Mask Data Length: %d",
		l.Length, l.LayerCount, l.MaskDataLength)
}

// Rectangle is a layer's bounding box in top, left, bottom, right order.
type Rectangle struct {
	Top    int32
	Left   int32
	Bottom int32
	Right  int32
}

func (r Rectangle) Width() int32 {
	return r.Right - r.Left
}

func (r Rectangle) Height() int32 {
	return r.Bottom - r.Top
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(top=%d, left=%d, bottom=%d, right=%d)", r.Top, r.Left, r.Bottom, r.Right)
}

// Layer is one decoded layer record. Channels maps each channel id to
// its declared data lengths in encounter order: the format allows an id
// to repeat, and every length is preserved. ExtraData locates the
// undecoded mask sub-record, blending ranges, and padded name.
type Layer struct {
	Rect                  Rectangle
	ChannelCount          uint16
	Channels              map[int16][]uint32
	BlendMode             BlendMode
	Opacity               uint8
	Clipping              Clipping
	TransparencyProtected bool
	Visible               bool
	ExtraData             psdreader.Span
}

func (l Layer) String() string {
	ids := make([]int, 0, len(l.Channels))
	for id := range l.Channels {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var ch strings.Builder
	for i, id := range ids {
		if i > 0 {
			ch.WriteString(", ")
		}
		fmt.Fprintf(&ch, "%d:%v", id, l.Channels[int16(id)])
	}

	return fmt.Sprintf("==Layer==\n" +
		"Rect: %s\n" +
		"Channels: {%s}\n" +
		"Blend Mode: %s\n" +
		"Opacity: %d\n" +
		"Clipping: %s\n" +
		"Transparency Protected: %t\n" +
		"Visible: %t",
		l.Rect, ch.String(), l.BlendMode, l.Opacity, l.Clipping,
		l.TransparencyProtected, l.Visible)
}

// BlendMode pairs a blend mode mnemonic with its full name.
type BlendMode struct {
	Key  string
	Name string
}

func (b BlendMode) String() string {
	return fmt.Sprintf("%s (%q)", b.Name, b.Key)
}

// Clipping pairs a clipping code with its label.
type Clipping struct {
	Label string
	Code  uint8
}

func (c Clipping) String() string {
	return fmt.Sprintf("%s (%d)", c.Label, c.Code)
}

// Compression pairs a compression code with its label.
type Compression struct {
	Label string
	Code  uint16
}

func (c Compression) String() string {
	return fmt.Sprintf("%s (%d)", c.Label, c.Code)
}

// ImageData records the pixel section's compression code and the located
// pixel payload. The payload itself is never read.
type ImageData struct {
	Compression    Compression
	BytesRemaining int64
	Payload        psdreader.Span
}

func (i ImageData) String() string {
	return fmt.Sprintf("==Image Data==\n" +
		"Compression: %s\n" +
		"Bytes Remaining: %d",
		i.Compression, i.BytesRemaining)
}
