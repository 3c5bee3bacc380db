package abbrev

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableInsertLookup(t *testing.T) {
	table := NewTable()
	table.Insert("btw", "by the way")

	got, ok := table.Lookup("btw")
	if !ok || got != "by the way" {
		t.Errorf("Lookup(btw) = %q, %v", got, ok)
	}

	if _, ok := table.Lookup("BTW"); ok {
		t.Error("lookup should be case-sensitive")
	}
	if _, ok := table.Lookup("bt"); ok {
		t.Error("lookup should not match prefixes")
	}
}

func TestTableInsertOverwrites(t *testing.T) {
	table := NewTable()
	table.Insert("k", "one")
	table.Insert("k", "two")

	if got, _ := table.Lookup("k"); got != "two" {
		t.Errorf("expected overwrite, got %q", got)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestTableInsertIdempotent(t *testing.T) {
	table := NewTable()
	table.Insert("btw", "by the way")
	before := table.Clone()
	table.Insert("btw", "by the way")

	if !table.Equal(before) {
		t.Error("inserting the same pair twice should not change the table")
	}
}

func TestTableRejectsEmptyKey(t *testing.T) {
	table := NewTable()
	table.Insert("", "nothing")

	if table.Len() != 0 {
		t.Errorf("empty abbreviation should be ignored, Len() = %d", table.Len())
	}
	if _, ok := table.Lookup(""); ok {
		t.Error("empty key should never match")
	}
}

func TestTableRemove(t *testing.T) {
	table := NewTable()
	table.Insert("a", "b")

	table.Remove("missing")
	if table.Len() != 1 {
		t.Error("removing a missing key should be a no-op")
	}

	table.Remove("a")
	if _, ok := table.Lookup("a"); ok {
		t.Error("expected entry to be removed")
	}
	table.Remove("a")
}

func TestTableNil(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("x"); ok {
		t.Error("nil table should have no entries")
	}
	if table.Len() != 0 || table.Entries() != nil {
		t.Error("nil table should be empty")
	}
	if table.Clone().Len() != 0 {
		t.Error("clone of nil table should be empty")
	}
}

func TestTableEntriesSorted(t *testing.T) {
	table := NewTable()
	table.Insert("omw", "on my way")
	table.Insert("afaik", "as far as I know")
	table.Insert("btw", "by the way")

	want := []Entry{
		{"afaik", "as far as I know"},
		{"btw", "by the way"},
		{"omw", "on my way"},
	}
	if diff := cmp.Diff(want, table.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableCloneIndependent(t *testing.T) {
	table := NewTable()
	table.Insert("a", "1")
	c := table.Clone()
	c.Insert("b", "2")

	if table.Len() != 1 {
		t.Error("clone mutation leaked into original")
	}
}

func TestTableMerge(t *testing.T) {
	a := NewTable()
	a.Insert("x", "old")
	a.Insert("y", "kept")
	b := NewTable()
	b.Insert("x", "new")

	a.Merge(b)
	a.Merge(nil)

	if got, _ := a.Lookup("x"); got != "new" {
		t.Errorf("merge should prefer other, got %q", got)
	}
	if got, _ := a.Lookup("y"); got != "kept" {
		t.Errorf("merge lost entry, got %q", got)
	}
}

func TestTableWriteToRoundTrip(t *testing.T) {
	table := NewTable()
	table.Insert("btw", "by the way")
	table.Insert("sp", " leading space")
	table.Insert("e", "")

	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	want := "btw by the way\ne \nsp  leading space\n"
	if buf.String() != want {
		t.Errorf("WriteTo() = %q, want %q", buf.String(), want)
	}

	loaded := LoadReader(&buf)
	if !loaded.Equal(table) {
		t.Errorf("round trip mismatch: %v", loaded.Entries())
	}
}
