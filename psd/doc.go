// Package psd decodes layered-image documents section by section: the
// fixed 26-byte header, then color mode data, image resources, layer and
// mask info, and image data, each length-delimited and consumed exactly.
//
// Decoding is strictly sequential over one cursor. Every semantically
// meaningful field is validated as it is read; the first violation aborts
// the decode with a structured error and no partial document escapes.
// Opaque payloads (color table, resource blocks, mask data, layer extra
// data, pixel planes) are located and measured but never interpreted.
package psd
