package buffer

import (
	"strings"

	"github.com/dshills/abbrev/internal/engine/text"
)

// Snapshot is a read-only view of a buffer at one revision.
// It implements text.Document.
type Snapshot struct {
	text       string
	revisionID RevisionID
	lineEnding LineEnding
}

var _ text.Document = (*Snapshot)(nil)

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// Slice returns text in [start, end), clamped to the snapshot.
func (s *Snapshot) Slice(start, end ByteOffset) string {
	start, end = text.Clamp(start, end, s.Len())
	return s.text[start:end]
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// RevisionID returns the revision this snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the buffer's line ending style at snapshot time.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// Lines returns the snapshot split into lines without their terminators.
// An empty snapshot has one empty line.
func (s *Snapshot) Lines() []string {
	return strings.Split(s.text, s.lineEnding.Sequence())
}

// LineStart returns the byte offset of the start of line (0-indexed).
// Lines past the end return the snapshot length.
func (s *Snapshot) LineStart(line int) ByteOffset {
	if line <= 0 {
		return 0
	}
	sep := s.lineEnding.Sequence()
	off := 0
	for i := 0; i < line; i++ {
		idx := strings.Index(s.text[off:], sep)
		if idx < 0 {
			return s.Len()
		}
		off += idx + len(sep)
	}
	return ByteOffset(off)
}

// Position converts a byte offset into a 0-indexed line and byte column.
func (s *Snapshot) Position(offset ByteOffset) (line, col int) {
	if offset > s.Len() {
		offset = s.Len()
	}
	if offset < 0 {
		offset = 0
	}
	before := s.text[:offset]
	sep := s.lineEnding.Sequence()
	line = strings.Count(before, sep)
	if idx := strings.LastIndex(before, sep); idx >= 0 {
		return line, len(before) - idx - len(sep)
	}
	return line, len(before)
}
