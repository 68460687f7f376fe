package psd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	psdreader "github.com/layerkit/psd-reader"
	psderr "github.com/layerkit/psd-reader/errors"
	"github.com/layerkit/psd-reader/psd/internal/binary"
)

// Section names used in errors and trace events.
const (
	SectionHeader         = "header"
	SectionColorModeData  = "color mode data"
	SectionImageResources = "image resources"
	SectionLayerMaskInfo  = "layer and mask info"
	SectionLayer          = "layer"
	SectionImageData      = "image data"
)

// Option configures a decode.
type Option func(*decoder)

// WithObserver installs an observer receiving trace events at decode
// boundaries.
func WithObserver(obs psdreader.Observer) Option {
	return func(d *decoder) {
		d.obs = obs
	}
}

type decoder struct {
	r   *binary.Reader
	obs psdreader.Observer
}

// Decode reads one complete document from src, which must be seekable
// and positioned at offset 0. The five sections are decoded strictly in
// file order; the first failure aborts the decode and no partial
// document is returned.
func Decode(src io.ReadSeeker, opts ...Option) (*Document, error) {
	r, err := binary.NewReader(src)
	if err != nil {
		return nil, err
	}

	d := &decoder{r: r, obs: psdreader.NopObserver{}}
	for _, opt := range opts {
		opt(d)
	}
	return d.decode()
}

// DecodeFile opens path, decodes it, and closes the file on every exit
// path.
func DecodeFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("psd: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, opts...)
}

func (d *decoder) decode() (*Document, error) {
	doc := &Document{}
	var err error

	if doc.Header, err = d.decodeHeader(); err != nil {
		return nil, err
	}
	if doc.ColorModeData.Length, doc.ColorModeData.Data, err = d.decodeOpaqueSection(SectionColorModeData); err != nil {
		return nil, err
	}
	if doc.ImageResources.Length, doc.ImageResources.Data, err = d.decodeOpaqueSection(SectionImageResources); err != nil {
		return nil, err
	}
	if doc.LayerAndMaskInfo, err = d.decodeLayerAndMaskInfo(); err != nil {
		return nil, err
	}
	if doc.ImageData, err = d.decodeImageData(); err != nil {
		return nil, err
	}
	return doc, nil
}

// fail annotates cursor-level errors with the section they arose in.
func (d *decoder) fail(section string, err error) error {
	var e *psderr.Error
	if errors.As(err, &e) {
		e.WithSection(section)
	}
	return err
}

// decodeHeader consumes the fixed 26-byte header record and validates
// every field before any later section is read.
func (d *decoder) decodeHeader() (Header, error) {
	const section = SectionHeader
	start := d.r.Offset()
	d.obs.SectionStart(section, start)
	var h Header

	sig, err := d.r.ReadString(4)
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Signature", sig, exactly(Signature)); err != nil {
		return h, err
	}
	h.Signature = sig
	d.obs.Field(section, "Signature", sig)

	version, err := d.r.ReadUint16()
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Version", version, exactly(Version)); err != nil {
		return h, err
	}
	h.Version = version
	d.obs.Field(section, "Version", version)

	// 6 reserved bytes: tolerated, never interpreted.
	if err := d.r.Skip(6); err != nil {
		return h, d.fail(section, err)
	}

	channels, err := d.r.ReadUint16()
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Channels", channels, between(MinChannels, MaxChannels)); err != nil {
		return h, err
	}
	h.Channels = channels
	d.obs.Field(section, "Channels", channels)

	height, err := d.r.ReadUint32()
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Height", height, between(MinDimension, MaxDimension)); err != nil {
		return h, err
	}
	h.Height = height
	d.obs.Field(section, "Height", height)

	width, err := d.r.ReadUint32()
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Width", width, between(MinDimension, MaxDimension)); err != nil {
		return h, err
	}
	h.Width = width
	d.obs.Field(section, "Width", width)

	depth, err := d.r.ReadUint16()
	if err != nil {
		return h, d.fail(section, err)
	}
	if err := validate(section, "Depth", depth, oneOf(depths...)); err != nil {
		return h, err
	}
	h.Depth = depth
	d.obs.Field(section, "Depth", depth)

	modeCode, err := d.r.ReadUint16()
	if err != nil {
		return h, d.fail(section, err)
	}
	mode, ok := colorModeFor(modeCode)
	if !ok {
		return h, psderr.FormatMismatch(section, "Color Mode", colorModeCodes, modeCode)
	}
	h.ColorMode = mode
	d.obs.Field(section, "Color Mode", mode)

	d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
	return h, nil
}

// decodeOpaqueSection handles the two sections that are a 4-byte length
// followed by an uninterpreted payload of exactly that many bytes.
func (d *decoder) decodeOpaqueSection(section string) (uint32, psdreader.Span, error) {
	start := d.r.Offset()
	d.obs.SectionStart(section, start)

	length, err := d.r.ReadUint32()
	if err != nil {
		return 0, psdreader.Span{}, d.fail(section, err)
	}
	d.obs.Field(section, "Length", length)

	span := psdreader.Span{Offset: d.r.Offset(), Length: int64(length)}
	if err := d.r.Skip(int64(length)); err != nil {
		return 0, psdreader.Span{}, d.fail(section, err)
	}

	d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
	return length, span, nil
}

// decodeLayerAndMaskInfo drives the layer-record decoder and locates the
// trailing global mask-data block. The section must end exactly at its
// declared length.
func (d *decoder) decodeLayerAndMaskInfo() (LayerAndMaskInfo, error) {
	const section = SectionLayerMaskInfo
	start := d.r.Offset()
	d.obs.SectionStart(section, start)
	var info LayerAndMaskInfo

	length, err := d.r.ReadUint32()
	if err != nil {
		return info, d.fail(section, err)
	}
	info.Length = length
	d.obs.Field(section, "Length", length)

	// A zero-length section is just its length field; there are no
	// layers and no mask data.
	if length == 0 {
		d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
		return info, nil
	}

	layerInfoLength, err := d.r.ReadUint32()
	if err != nil {
		return info, d.fail(section, err)
	}
	info.LayerInfoLength = layerInfoLength
	layerInfoStart := d.r.Offset()

	if layerInfoLength > 0 {
		count, err := d.r.ReadInt16()
		if err != nil {
			return info, d.fail(section, err)
		}
		// A negative count is a merged-alpha hint; only its absolute
		// value matters here. Negate after widening: -32768 has no
		// int16 negation.
		n := int(count)
		if n < 0 {
			n = -n
		}
		info.LayerCount = n
		d.obs.Field(section, "Layer Count", info.LayerCount)

		info.Layers = make([]Layer, 0, info.LayerCount)
		for i := 0; i < info.LayerCount; i++ {
			layer, err := d.decodeLayer()
			if err != nil {
				return info, err
			}
			info.Layers = append(info.Layers, layer)
		}

		// The declared sub-block length is rounded up to a multiple
		// of 2; skip any pad byte left after the last record.
		infoEnd := layerInfoStart + int64(layerInfoLength)
		if got := d.r.Offset(); got > infoEnd {
			return info, psderr.Inconsistent(section,
				"layer info ends at offset %d, declared end is %d", got, infoEnd)
		} else if got < infoEnd {
			if err := d.r.Skip(infoEnd - got); err != nil {
				return info, d.fail(section, err)
			}
		}
	}

	maskLength, err := d.r.ReadUint32()
	if err != nil {
		return info, d.fail(section, err)
	}
	info.MaskDataLength = maskLength
	info.MaskData = psdreader.Span{Offset: d.r.Offset(), Length: int64(maskLength)}
	d.obs.Field(section, "Mask Data Length", maskLength)

	if err := d.r.Skip(int64(maskLength)); err != nil {
		return info, d.fail(section, err)
	}

	// The declared length covers everything after the length field.
	wantEnd := start + 4 + int64(length)
	if got := d.r.Offset(); got != wantEnd {
		return info, psderr.Inconsistent(section,
			"section ends at offset %d, declared end is %d", got, wantEnd)
	}

	d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
	return info, nil
}

// decodeLayer consumes one layer record, including the variable-length
// extra data block (layer mask sub-record, blending ranges, padded name)
// that must be skipped for the next record to start aligned.
func (d *decoder) decodeLayer() (Layer, error) {
	const section = SectionLayer
	start := d.r.Offset()
	d.obs.SectionStart(section, start)
	var l Layer

	top, left, bottom, right, err := d.r.ReadRectangle()
	if err != nil {
		return l, d.fail(section, err)
	}
	l.Rect = Rectangle{Top: top, Left: left, Bottom: bottom, Right: right}

	channelCount, err := d.r.ReadUint16()
	if err != nil {
		return l, d.fail(section, err)
	}
	l.ChannelCount = channelCount

	// Channel ids may repeat; every declared length is preserved in
	// encounter order, never overwritten.
	l.Channels = make(map[int16][]uint32, channelCount)
	for i := 0; i < int(channelCount); i++ {
		id, err := d.r.ReadInt16()
		if err != nil {
			return l, d.fail(section, err)
		}
		length, err := d.r.ReadUint32()
		if err != nil {
			return l, d.fail(section, err)
		}
		l.Channels[id] = append(l.Channels[id], length)
	}

	blendSig, err := d.r.ReadString(4)
	if err != nil {
		return l, d.fail(section, err)
	}
	if err := validate(section, "Blend Mode Signature", blendSig, exactly(BlendModeSignature)); err != nil {
		return l, err
	}

	blendKey, err := d.r.ReadString(4)
	if err != nil {
		return l, d.fail(section, err)
	}
	// Short mnemonics are space-padded to 4 bytes on disk.
	blend, ok := blendModeFor(strings.TrimRight(blendKey, " "))
	if !ok {
		return l, psderr.FormatMismatch(section, "Blend Mode Key", blendModeKeys, blendKey)
	}
	l.BlendMode = blend
	d.obs.Field(section, "Blend Mode", blend)

	opacity, err := d.r.ReadUint8()
	if err != nil {
		return l, d.fail(section, err)
	}
	l.Opacity = opacity
	d.obs.Field(section, "Opacity", opacity)

	clippingCode, err := d.r.ReadUint8()
	if err != nil {
		return l, d.fail(section, err)
	}
	clipping, ok := clippingFor(clippingCode)
	if !ok {
		return l, psderr.FormatMismatch(section, "Clipping", "one of {0, 1}", clippingCode)
	}
	l.Clipping = clipping
	d.obs.Field(section, "Clipping", clipping)

	bits, err := d.r.ReadBits(1)
	if err != nil {
		return l, d.fail(section, err)
	}
	// Flag bits are numbered from the least significant end; ReadBits
	// orders them most significant first.
	l.TransparencyProtected = bits[7]
	l.Visible = bits[6]
	d.obs.Field(section, "Visible", l.Visible)

	// One filler byte precedes the extra data length.
	if err := d.r.Skip(1); err != nil {
		return l, d.fail(section, err)
	}

	extraLength, err := d.r.ReadUint32()
	if err != nil {
		return l, d.fail(section, err)
	}
	l.ExtraData = psdreader.Span{Offset: d.r.Offset(), Length: int64(extraLength)}
	if err := d.r.Skip(int64(extraLength)); err != nil {
		return l, d.fail(section, err)
	}

	d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
	return l, nil
}

// decodeImageData reads the compression code and measures, without
// reading, the pixel payload occupying the rest of the source.
func (d *decoder) decodeImageData() (ImageData, error) {
	const section = SectionImageData
	start := d.r.Offset()
	d.obs.SectionStart(section, start)
	var data ImageData

	code, err := d.r.ReadUint16()
	if err != nil {
		return data, d.fail(section, err)
	}
	compression, ok := compressionFor(code)
	if !ok {
		return data, psderr.FormatMismatch(section, "Compression", "one of {0, 1}", code)
	}
	data.Compression = compression
	d.obs.Field(section, "Compression", compression)

	data.BytesRemaining = d.r.Size() - d.r.Offset()
	data.Payload = psdreader.Span{Offset: d.r.Offset(), Length: data.BytesRemaining}

	d.obs.SectionEnd(section, d.r.Offset(), d.r.Offset()-start)
	return data, nil
}

// Expected-value descriptions for the closed lookup tables.
const (
	colorModeCodes = "one of {0, 1, 2, 3, 4, 7, 8, 9}"
	blendModeKeys  = "a known blend mode mnemonic"
)
