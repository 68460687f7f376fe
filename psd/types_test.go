package psd_test

import (
	"strings"
	"testing"

	"github.com/layerkit/psd-reader/psd"
)

func TestHeaderString(t *testing.T) {
	doc := mustDecode(t, minimalDoc())
	s := doc.Header.String()
	for _, want := range []string{"==Header==", "Signature: 8BPS", "Channels: 3", "Color Mode: RGB Color (3)"} {
		if !strings.Contains(s, want) {
			t.Errorf("Header.String() = %q, missing %q", s, want)
		}
	}
}

func TestDocumentString(t *testing.T) {
	rec := layerRecord([]chanEntry{{0, 4}}, "scrn", 200, 0, 2, nil)
	doc := mustDecode(t, docWithLayers(layerMaskSection(1, rec)))

	s := doc.String()
	for _, want := range []string{
		"==Header==",
		"==Color Mode Data==",
		"==Image Resources==",
		"==Layer and Mask Info==",
		"Layer Count: 1",
		"==Image Data==",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Document.String() missing %q", want)
		}
	}

	ls := doc.LayerAndMaskInfo.Layers[0].String()
	for _, want := range []string{"screen", "Opacity: 200", "Visible: true"} {
		if !strings.Contains(ls, want) {
			t.Errorf("Layer.String() = %q, missing %q", ls, want)
		}
	}
}

func TestRectangleDimensions(t *testing.T) {
	r := psd.Rectangle{Top: 5, Left: 10, Bottom: 25, Right: 40}
	if r.Width() != 30 || r.Height() != 20 {
		t.Errorf("Width/Height = %d/%d, want 30/20", r.Width(), r.Height())
	}
}
