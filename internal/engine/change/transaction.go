package change

import (
	"errors"
	"sort"
	"strings"

	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/engine/text"
)

// Errors returned when a transaction cannot be applied.
var (
	ErrOutOfRange = errors.New("change out of range")
	ErrOverlap    = errors.New("changes overlap")
)

// Transaction is an ordered collection of changes against one document
// snapshot. Order is the order in which the changes were produced (for
// transactions built from a selection, the selection order); application
// always happens by position.
type Transaction struct {
	changes []Change
}

// NewTransaction creates a transaction from changes in the given order.
func NewTransaction(changes ...Change) Transaction {
	t := Transaction{changes: make([]Change, len(changes))}
	copy(t.changes, changes)
	return t
}

// ChangeBySelection builds one change per range of sel by calling fn,
// keeping selection order. An empty selection yields an empty transaction.
func ChangeBySelection(sel cursor.Selection, fn func(r cursor.Range) Change) Transaction {
	ranges := sel.Ranges()
	t := Transaction{changes: make([]Change, 0, len(ranges))}
	for _, r := range ranges {
		t.changes = append(t.changes, fn(r))
	}
	return t
}

// Changes returns a copy of the changes in transaction order.
func (t Transaction) Changes() []Change {
	out := make([]Change, len(t.changes))
	copy(out, t.changes)
	return out
}

// Len returns the number of changes.
func (t Transaction) Len() int {
	return len(t.changes)
}

// IsEmpty returns true if the transaction holds no changes.
func (t Transaction) IsEmpty() bool {
	return len(t.changes) == 0
}

// Delta returns the total change in document length.
func (t Transaction) Delta() ByteOffset {
	var d ByteOffset
	for _, c := range t.changes {
		d += c.Delta()
	}
	return d
}

// Equals returns true if both transactions hold equal changes in the same
// order.
func (t Transaction) Equals(other Transaction) bool {
	if len(t.changes) != len(other.changes) {
		return false
	}
	for i, c := range t.changes {
		if !c.Equals(other.changes[i]) {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the transaction.
func (t Transaction) String() string {
	parts := make([]string, len(t.changes))
	for i, c := range t.changes {
		parts[i] = c.String()
	}
	return "Transaction{" + strings.Join(parts, ", ") + "}"
}

// sorted returns the changes ordered by position. Insertions at the same
// offset keep their relative order.
func (t Transaction) sorted() []Change {
	out := t.Changes()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// Validate reports whether the transaction can be applied to a document of
// length docLen: every region must lie within the document and no two
// regions may overlap.
func (t Transaction) Validate(docLen ByteOffset) error {
	_, err := t.validated(docLen)
	return err
}

func (t Transaction) validated(docLen ByteOffset) ([]Change, error) {
	changes := t.sorted()
	for i, c := range changes {
		if c.Start < 0 || c.Start > c.End || c.End > docLen {
			return nil, ErrOutOfRange
		}
		if i > 0 && changes[i-1].End > c.Start {
			return nil, ErrOverlap
		}
	}
	return changes, nil
}

// Apply applies the transaction to doc and returns the resulting text.
// Either every change is applied or, on error, none is.
func (t Transaction) Apply(doc text.Document) (string, error) {
	changes, err := t.validated(doc.Len())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(int(doc.Len() + t.Delta()))

	var pos ByteOffset
	for _, c := range changes {
		sb.WriteString(doc.Slice(pos, c.Start))
		sb.WriteString(c.Replacement())
		pos = c.End
	}
	sb.WriteString(doc.Slice(pos, doc.Len()))
	return sb.String(), nil
}

// Invert returns the transaction that undoes t once t has been applied to
// doc. The inverse is positioned against the document produced by Apply.
func (t Transaction) Invert(doc text.Document) Transaction {
	changes := t.sorted()
	inv := Transaction{changes: make([]Change, 0, len(changes))}

	var delta ByteOffset
	for _, c := range changes {
		start := c.Start + delta
		end := start + ByteOffset(len(c.Replacement()))
		inv.changes = append(inv.changes, Replace(start, end, doc.Slice(c.Start, c.End)))
		delta += c.Delta()
	}
	return inv
}

// MapOffset returns where offset in the original document ends up after
// the transaction is applied. Offsets at or after a change move with it;
// an offset inside a replaced region moves to the end of the replacement.
func (t Transaction) MapOffset(offset ByteOffset) ByteOffset {
	var delta ByteOffset
	for _, c := range t.sorted() {
		switch {
		case c.End <= offset:
			delta += c.Delta()
		case c.Start < offset:
			return c.Start + delta + ByteOffset(len(c.Replacement()))
		default:
			return offset + delta
		}
	}
	return offset + delta
}

// MapSelection maps every range of sel through the transaction. Order,
// hints and the primary index are preserved.
func (t Transaction) MapSelection(sel cursor.Selection) cursor.Selection {
	if t.IsEmpty() {
		return sel
	}
	return sel.Map(func(r cursor.Range) cursor.Range {
		r.Anchor = t.MapOffset(r.Anchor)
		r.Head = t.MapOffset(r.Head)
		return r
	})
}
