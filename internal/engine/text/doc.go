// Package text defines the read-only document model shared by the engine
// packages: byte offsets, half-open spans, and the Document interface that
// anything sliceable by offset can satisfy.
//
// The engine never mutates a Document. Buffers hand out immutable snapshots
// that implement it, and tests use StringDocument directly.
package text
