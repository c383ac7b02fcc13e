// Package compress provides the payload codecs used by the envelope layer.
//
// Each codec implements the Codec interface over a well-known block
// compression format: Zstandard (cgo-accelerated when available), S2, and
// LZ4, plus a no-op passthrough. Codecs operate on complete payloads, not
// streams; the envelope records which codec was used so the extract side can
// pick the inverse automatically.
package compress
