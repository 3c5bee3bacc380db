package app

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/abbrev/internal/abbrev"
	"github.com/dshills/abbrev/internal/engine/buffer"
	"github.com/dshills/abbrev/internal/engine/change"
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/history"
	"github.com/dshills/abbrev/internal/engine/movement"
	"github.com/dshills/abbrev/internal/logging"
)

// Session is one buffer being edited with a multi-cursor selection.
// Each typed character becomes one transaction and one undo step.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	path     string
	buf      *buffer.Buffer
	sel      cursor.Selection
	store    *abbrev.Store
	expander *abbrev.Expander
	history  *history.History
	logger   *logging.Logger
	enabled  bool
	modified bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStore sets the abbreviation source. Without one nothing expands.
func WithStore(s *abbrev.Store) SessionOption {
	return func(sess *Session) {
		sess.store = s
	}
}

// WithWordMover overrides the word-boundary oracle used for expansion.
func WithWordMover(m movement.WordMover) SessionOption {
	return func(sess *Session) {
		sess.expander = abbrev.NewExpander(m)
	}
}

// WithHistory sets the undo history.
func WithHistory(h *history.History) SessionOption {
	return func(sess *Session) {
		sess.history = h
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(l *logging.Logger) SessionOption {
	return func(sess *Session) {
		sess.logger = l
	}
}

// WithEnabled turns expansion on or off.
func WithEnabled(enabled bool) SessionOption {
	return func(sess *Session) {
		sess.enabled = enabled
	}
}

// WithPath associates the session with a file for Save.
func WithPath(path string) SessionOption {
	return func(sess *Session) {
		sess.path = path
	}
}

// NewSession creates a session over buf with one cursor at the start.
func NewSession(buf *buffer.Buffer, opts ...SessionOption) *Session {
	s := &Session{
		id:      uuid.New(),
		buf:     buf,
		sel:     cursor.Single(0),
		enabled: true,
		logger:  logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = abbrev.NewStore(nil)
	}
	if s.expander == nil {
		s.expander = abbrev.NewExpander(nil)
	}
	if s.history == nil {
		s.history = history.New(0)
	}
	s.logger = s.logger.WithComponent("session").WithField("session", s.id.String()[:8])
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Path returns the file the session saves to.
func (s *Session) Path() string {
	return s.path
}

// Text returns the current buffer content.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Snapshot returns the current buffer snapshot.
func (s *Session) Snapshot() *buffer.Snapshot {
	return s.buf.Snapshot()
}

// Selection returns the current selection.
func (s *Session) Selection() cursor.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Enabled reports whether typing expands abbreviations.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled turns expansion on or off.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Modified reports whether the buffer changed since load or the last save.
func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

// History returns the session's undo history.
func (s *Session) History() *history.History {
	return s.history
}

// InsertChar types ch at every cursor. Where the word before a cursor is
// an abbreviation it is replaced by its expansion followed by ch. If an
// expansion would overlap another cursor, ch is inserted verbatim at
// every cursor instead.
// The whole keystroke is applied atomically and recorded as one undo step.
func (s *Session) InsertChar(ch rune) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var table *abbrev.Table
	if s.enabled {
		table = s.store.Table()
	}

	snap := s.buf.Snapshot()
	tx := s.expander.Build(snap, s.sel, table, ch)
	if table != nil && errors.Is(tx.Validate(snap.Len()), change.ErrOverlap) {
		// An expansion swallowed another cursor; type ch verbatim everywhere.
		s.logger.Debug("expansion overlaps another cursor, inserting %q", ch)
		tx = s.expander.Build(snap, s.sel, nil, ch)
	}
	if err := s.applyLocked("insert", snap, tx); err != nil {
		return NewOperationError("insert", s.path, err)
	}
	return nil
}

// InsertText types each rune of text in turn, as if typed.
func (s *Session) InsertText(text string) error {
	for _, r := range text {
		if err := s.InsertChar(r); err != nil {
			return err
		}
	}
	return nil
}

// Backspace deletes the selection of each non-empty range, or the
// grapheme before each cursor.
func (s *Session) Backspace() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.buf.Snapshot()
	tx := change.ChangeBySelection(s.sel, func(r cursor.Range) change.Change {
		if !r.IsEmpty() {
			return change.Delete(r.From(), r.To())
		}
		pos := r.Cursor()
		return change.Delete(movement.PrevGraphemeStart(snap, pos), pos)
	})
	if err := s.applyLocked("delete", snap, tx); err != nil {
		return NewOperationError("delete", s.path, err)
	}
	return nil
}

func (s *Session) applyLocked(name string, snap *buffer.Snapshot, tx change.Transaction) error {
	if isNoOp(tx) {
		return nil
	}
	if err := s.buf.ApplyTo(snap, tx); err != nil {
		return err
	}
	after := tx.MapSelection(s.sel).Collapse()
	s.history.Record(history.NewEntry(name, snap, tx, s.sel, after))
	s.sel = after
	s.modified = true
	s.logger.Debug("%s %s", name, tx)
	return nil
}

func isNoOp(tx change.Transaction) bool {
	for _, c := range tx.Changes() {
		if !c.IsNoOp() {
			return false
		}
	}
	return true
}

// Undo reverts the last step and restores the selection it started with.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.history.Undo(s.buf)
	if err != nil {
		return err
	}
	s.sel = e.Before.Clamp(s.buf.Len())
	s.modified = true
	return nil
}

// Redo reapplies the last undone step.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.history.Redo(s.buf)
	if err != nil {
		return err
	}
	s.sel = e.After.Clamp(s.buf.Len())
	s.modified = true
	return nil
}

// SetSelection replaces the selection, clamped to the buffer.
// An empty selection becomes a single cursor at 0.
func (s *Session) SetSelection(sel cursor.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel.IsEmpty() {
		sel = cursor.Single(0)
	}
	s.sel = sel.Clamp(s.buf.Len())
}

// AddCursor adds a cursor at offset and makes it primary.
func (s *Session) AddCursor(offset buffer.ByteOffset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = s.sel.Push(cursor.Point(offset).Clamp(s.buf.Len()))
}

// CollapseToPrimary drops every cursor but the primary one.
func (s *Session) CollapseToPrimary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = cursor.NewSelection(s.sel.Primary().Collapse())
}

// MoveCursors applies m to every range. Cursors that land on the same
// offset merge.
func (s *Session) MoveCursors(m Motion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.buf.Snapshot()
	s.sel = s.sel.Map(func(r cursor.Range) cursor.Range {
		return m(snap, r)
	}).Normalize()
}

// Save writes the buffer to the session's path.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(s.path, []byte(s.buf.Text()), 0o644); err != nil {
		return NewOperationError("save", s.path, err)
	}
	s.modified = false
	s.logger.Info("saved %s", s.path)
	return nil
}

// String describes the session for status lines.
func (s *Session) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.path
	if name == "" {
		name = "[scratch]"
	}
	return fmt.Sprintf("%s %s", name, s.sel)
}
