// Package psdreader provides a decoder for layered-image documents in the
// Photoshop binary container format.
//
// A document is one fixed-size header followed by four variable-length,
// length-delimited sections, decoded strictly in file order. The decoder
// validates every semantically meaningful field as it is read and fails
// fast: an invalid field aborts the whole decode and no partial document
// is returned.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	psdreader/           Root package with the Span and Observer types
//	├── psd/             Section decoders and the decoded document model
//	│   └── internal/binary/  Positioned big-endian byte cursor
//	├── errors/          Structured error types for decode failures
//	└── cmd/psdinfo/     CLI for printing and browsing decoded documents
//
// # Quick Start
//
// Decode a file:
//
//	doc, err := psd.DecodeFile("image.psd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Header.ColorMode.Label)
//
// # Opaque payloads
//
// Pixel planes, the color table, duotone data, image-resource blocks, and
// per-layer extra data are located and measured but never interpreted.
// Each is exposed as a Span (absolute offset plus length) so an external
// interpreter can re-read the bytes it cares about.
//
// # Concurrency
//
// Decoding is a single forward pass over a single cursor. Two documents
// may be decoded concurrently only when each decode owns its own source;
// no cursor state is ever shared.
package psdreader
