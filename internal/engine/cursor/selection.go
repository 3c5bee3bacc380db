package cursor

import (
	"sort"
	"strings"
)

// Selection is an ordered list of ranges with one primary range.
// Unlike an editor's live cursor set, a Selection never reorders or merges
// its ranges on its own; call Normalize for that.
type Selection struct {
	ranges  []Range
	primary int
}

// NewSelection creates a selection from ranges in the given order.
// The first range is primary.
func NewSelection(ranges ...Range) Selection {
	s := Selection{ranges: make([]Range, len(ranges))}
	copy(s.ranges, ranges)
	return s
}

// Single creates a selection holding one cursor at offset.
func Single(offset ByteOffset) Selection {
	return Selection{ranges: []Range{Point(offset)}}
}

// Cursors creates a selection with one collapsed cursor per offset.
func Cursors(offsets ...ByteOffset) Selection {
	s := Selection{ranges: make([]Range, len(offsets))}
	for i, off := range offsets {
		s.ranges[i] = Point(off)
	}
	return s
}

// Len returns the number of ranges.
func (s Selection) Len() int {
	return len(s.ranges)
}

// IsEmpty returns true if the selection holds no ranges.
func (s Selection) IsEmpty() bool {
	return len(s.ranges) == 0
}

// IsMulti returns true if there are multiple ranges.
func (s Selection) IsMulti() bool {
	return len(s.ranges) > 1
}

// Ranges returns a copy of all ranges in order.
func (s Selection) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Get returns the range at index, or the zero Range if out of bounds.
func (s Selection) Get(index int) Range {
	if index < 0 || index >= len(s.ranges) {
		return Range{}
	}
	return s.ranges[index]
}

// PrimaryIndex returns the index of the primary range.
func (s Selection) PrimaryIndex() int {
	return s.primary
}

// Primary returns the primary range.
func (s Selection) Primary() Range {
	return s.Get(s.primary)
}

// WithPrimary returns a copy whose primary range is at index.
// Out-of-range indices leave the selection unchanged.
func (s Selection) WithPrimary(index int) Selection {
	if index < 0 || index >= len(s.ranges) {
		return s
	}
	out := s.clone()
	out.primary = index
	return out
}

// Push returns a copy with r appended and made primary.
func (s Selection) Push(r Range) Selection {
	out := Selection{ranges: make([]Range, len(s.ranges), len(s.ranges)+1)}
	copy(out.ranges, s.ranges)
	out.ranges = append(out.ranges, r)
	out.primary = len(out.ranges) - 1
	return out
}

// Remove returns a copy without the range at index.
func (s Selection) Remove(index int) Selection {
	if index < 0 || index >= len(s.ranges) {
		return s
	}
	out := Selection{ranges: make([]Range, 0, len(s.ranges)-1)}
	out.ranges = append(out.ranges, s.ranges[:index]...)
	out.ranges = append(out.ranges, s.ranges[index+1:]...)
	switch {
	case s.primary > index:
		out.primary = s.primary - 1
	case s.primary == index:
		out.primary = 0
	default:
		out.primary = s.primary
	}
	if out.primary >= len(out.ranges) {
		out.primary = 0
	}
	return out
}

// Map applies f to each range and returns the resulting selection.
// Order and primary index are preserved.
func (s Selection) Map(f func(r Range) Range) Selection {
	out := s.clone()
	for i, r := range out.ranges {
		out.ranges[i] = f(r)
	}
	return out
}

// Collapse collapses every range to a cursor at its head.
func (s Selection) Collapse() Selection {
	return s.Map(Range.Collapse)
}

// Clamp clamps every range to [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	return s.Map(func(r Range) Range { return r.Clamp(maxOffset) })
}

// HasExtent returns true if any range is non-empty.
func (s Selection) HasExtent() bool {
	for _, r := range s.ranges {
		if !r.IsEmpty() {
			return true
		}
	}
	return false
}

// Normalize returns a copy sorted by position with overlapping ranges
// merged. Coincident cursors collapse into one. The primary index follows
// the range that was primary.
func (s Selection) Normalize() Selection {
	if len(s.ranges) <= 1 {
		return s.clone()
	}

	type indexed struct {
		r       Range
		primary bool
	}
	items := make([]indexed, len(s.ranges))
	for i, r := range s.ranges {
		items[i] = indexed{r: r, primary: i == s.primary}
	}

	// Sort by start position; same start sorts larger ranges first
	sort.SliceStable(items, func(i, j int) bool {
		fi, fj := items[i].r.From(), items[j].r.From()
		if fi != fj {
			return fi < fj
		}
		return items[i].r.To() > items[j].r.To()
	})

	out := Selection{ranges: make([]Range, 0, len(items))}
	out.ranges = append(out.ranges, items[0].r)
	if items[0].primary {
		out.primary = 0
	}
	for _, it := range items[1:] {
		last := &out.ranges[len(out.ranges)-1]
		if it.r.From() < last.To() || it.r.Equals(*last) {
			// Coincident cursors are deduplicated as-is
			if !it.r.IsEmpty() || !last.IsEmpty() {
				*last = last.Merge(it.r)
			}
		} else {
			out.ranges = append(out.ranges, it.r)
		}
		if it.primary {
			out.primary = len(out.ranges) - 1
		}
	}
	return out
}

// Equals returns true if both selections hold equal ranges in the same
// order with the same primary index.
func (s Selection) Equals(other Selection) bool {
	if len(s.ranges) != len(other.ranges) || s.primary != other.primary {
		return false
	}
	for i, r := range s.ranges {
		if !r.Equals(other.ranges[i]) {
			return false
		}
	}
	return true
}

// String returns a compact representation such as "{Cursor(3), Range(4→9)}".
func (s Selection) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
		if i == s.primary && len(s.ranges) > 1 {
			parts[i] = "*" + parts[i]
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Selection) clone() Selection {
	out := Selection{ranges: make([]Range, len(s.ranges)), primary: s.primary}
	copy(out.ranges, s.ranges)
	return out
}
