package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/abbrev/internal/engine/change"
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/text"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when New is given zero.
const DefaultMaxEntries = 1000

// Entry is one undo unit.
type Entry struct {
	ID      uuid.UUID
	Name    string
	Forward change.Transaction
	Inverse change.Transaction
	Before  cursor.Selection
	After   cursor.Selection
	Time    time.Time
}

// NewEntry builds an entry for tx, which was applied to doc.
func NewEntry(name string, doc text.Document, tx change.Transaction, before, after cursor.Selection) Entry {
	return Entry{
		ID:      uuid.New(),
		Name:    name,
		Forward: tx,
		Inverse: tx.Invert(doc),
		Before:  before,
		After:   after,
		Time:    time.Now(),
	}
}

// Applier applies a transaction to a document. *buffer.Buffer satisfies it.
type Applier interface {
	ApplyTransaction(tx change.Transaction) error
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(tx change.Transaction) error

// ApplyTransaction calls f(tx).
func (f ApplierFunc) ApplyTransaction(tx change.Transaction) error {
	return f(tx)
}

// History manages undo/redo stacks for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []Entry
	redoStack []Entry

	maxEntries int
}

// New creates a history bounded to maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record pushes e onto the undo stack and clears the redo stack.
// Entries with an empty forward transaction are ignored.
func (h *History) Record(e Entry) {
	if e.Forward.IsEmpty() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = append([]Entry(nil), h.undoStack[excess:]...)
	}
}

// Undo applies the inverse of the most recent entry through a and moves it
// to the redo stack. The caller restores entry.Before.
// On failure the entry stays on the undo stack.
func (h *History) Undo(a Applier) (Entry, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return Entry{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := a.ApplyTransaction(e.Inverse); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, e)
		h.mu.Unlock()
		return Entry{}, fmt.Errorf("undo %s: %w", e.Name, err)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return e, nil
}

// Redo reapplies the most recently undone entry. The caller restores
// entry.After.
func (h *History) Redo(a Applier) (Entry, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return Entry{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := a.ApplyTransaction(e.Forward); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, e)
		h.mu.Unlock()
		return Entry{}, fmt.Errorf("redo %s: %w", e.Name, err)
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return e, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.RedoCount() > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Last returns the most recent undo entry.
func (h *History) Last() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return Entry{}, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
