package psd

// Fixed tags and field bounds defined by the container format. None of
// these are user-tunable.
const (
	// Signature is the 4-byte tag every document starts with.
	Signature = "8BPS"

	// Version is the only supported file version.
	Version uint16 = 1

	// BlendModeSignature is the 4-byte tag preceding each layer's blend
	// mode key.
	BlendModeSignature = "8BIM"

	// Supported channel count range, alpha channels included.
	MinChannels = 1
	MaxChannels = 56

	// Supported pixel range for both height and width.
	MinDimension = 1
	MaxDimension = 30000
)

// Channel identifiers with a meaning beyond a plain channel index.
const (
	ChannelTransparencyMask int16 = -1
	ChannelUserLayerMask    int16 = -2
)

// Bit depths a channel may use.
var depths = []int64{1, 8, 16}

// colorModeLabels is the closed color-mode table. Codes 5 and 6 are
// intentionally absent; any code without an entry fails the decode.
var colorModeLabels = map[uint16]string{
	0: "Bitmap",
	1: "Grayscale",
	2: "Indexed Color",
	3: "RGB Color",
	4: "CMYK Color",
	7: "Multichannel",
	8: "Duotone",
	9: "Lab Color",
}

// blendModeNames maps the 4-byte blend mode mnemonics to their full
// names. Mnemonics shorter than 4 bytes are space-padded on disk; keys
// here are stored trimmed and lookups trim before matching.
var blendModeNames = map[string]string{
	"norm": "normal",
	"dark": "darken",
	"lite": "lighten",
	"hue":  "hue",
	"sat":  "saturation",
	"colr": "color",
	"lum":  "luminosity",
	"mul":  "multiply",
	"scrn": "screen",
	"diss": "dissolve",
	"over": "overlay",
	"hLit": "hard light",
	"sLit": "soft light",
	"diff": "difference",
}

var clippingLabels = map[uint8]string{
	0: "base",
	1: "non-base",
}

var compressionLabels = map[uint16]string{
	0: "Raw data",
	1: "RLE compressed",
}

func colorModeFor(code uint16) (ColorMode, bool) {
	label, ok := colorModeLabels[code]
	return ColorMode{Code: code, Label: label}, ok
}

func blendModeFor(key string) (BlendMode, bool) {
	name, ok := blendModeNames[key]
	return BlendMode{Key: key, Name: name}, ok
}

func clippingFor(code uint8) (Clipping, bool) {
	label, ok := clippingLabels[code]
	return Clipping{Code: code, Label: label}, ok
}

func compressionFor(code uint16) (Compression, bool) {
	label, ok := compressionLabels[code]
	return Compression{Code: code, Label: label}, ok
}
