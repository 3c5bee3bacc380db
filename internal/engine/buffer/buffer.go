package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/abbrev/internal/engine/change"
	"github.com/dshills/abbrev/internal/engine/text"
)

// ByteOffset is re-exported for callers that only import buffer.
type ByteOffset = text.ByteOffset

// Errors returned by buffer operations.
var (
	ErrStaleSnapshot = errors.New("snapshot is stale")
	ErrNilSnapshot   = errors.New("nil snapshot")
)

// RevisionID identifies one state of a buffer. IDs increase monotonically
// across all buffers in the process.
type RevisionID uint64

var revisionCounter atomic.Uint64

// NewRevisionID returns a fresh revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds the document being edited.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content. Line endings
// are normalized to the buffer's style.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = b.normalizeLineEndings(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF pair may straddle two reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}
	return NewBufferFromString(string(data), opts...), nil
}

func (b *Buffer) normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Snapshot returns a read-only view of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{
		text:       b.text,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
}

// Apply applies tx to the current content. The transaction is validated
// before anything changes; on error the buffer is untouched.
// Returns the snapshot the transaction was applied to.
func (b *Buffer) Apply(tx change.Transaction) (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applyLocked(tx)
}

// ApplyTransaction is Apply without the snapshot.
func (b *Buffer) ApplyTransaction(tx change.Transaction) error {
	_, err := b.Apply(tx)
	return err
}

// ApplyTo applies tx only if the buffer is still at base's revision.
// Use it when tx was built from base and another writer may have
// changed the buffer in between.
func (b *Buffer) ApplyTo(base *Snapshot, tx change.Transaction) error {
	if base == nil {
		return ErrNilSnapshot
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if base.revisionID != b.revisionID {
		return fmt.Errorf("apply to revision %d (current %d): %w",
			base.revisionID, b.revisionID, ErrStaleSnapshot)
	}
	_, err := b.applyLocked(tx)
	return err
}

func (b *Buffer) applyLocked(tx change.Transaction) (*Snapshot, error) {
	before := &Snapshot{
		text:       b.text,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
	if tx.IsEmpty() {
		return before, nil
	}
	out, err := tx.Apply(before)
	if err != nil {
		return nil, fmt.Errorf("apply transaction: %w", err)
	}
	b.text = out
	b.revisionID = NewRevisionID()
	return before, nil
}

// WriteTo writes the buffer content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.Text())
	return int64(n), err
}
