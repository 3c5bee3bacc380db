package buffer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/abbrev/internal/engine/change"
)

func TestNewBufferFromString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []Option
		want string
	}{
		{"empty", "", nil, ""},
		{"lf", "a\nb", nil, "a\nb"},
		{"crlf to lf", "a\r\nb\r\n", nil, "a\nb\n"},
		{"cr to lf", "a\rb", nil, "a\nb"},
		{"lf to crlf", "a\nb", []Option{WithLineEnding(LineEndingCRLF)}, "a\r\nb"},
		{"mixed to cr", "a\r\nb\nc", []Option{WithLineEnding(LineEndingCR)}, "a\rb\rc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.in, tt.opts...)
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := b.Len(); got != ByteOffset(len(tt.want)) {
				t.Errorf("Len() = %d, want %d", got, len(tt.want))
			}
		})
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("one\r\ntwo"))
	if err != nil {
		t.Fatalf("NewBufferFromReader: %v", err)
	}
	if b.Text() != "one\ntwo" {
		t.Errorf("Text() = %q", b.Text())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		in   string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\r\nb\nc\r\n", LineEndingCRLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.in); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBufferApply(t *testing.T) {
	b := NewBufferFromString("hello btw")
	rev := b.RevisionID()

	tx := change.NewTransaction(change.Replace(6, 9, "by the way "))
	before, err := b.Apply(tx)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.Text() != "hello by the way " {
		t.Errorf("Text() = %q", b.Text())
	}
	if before.Text() != "hello btw" {
		t.Errorf("before snapshot = %q", before.Text())
	}
	if before.RevisionID() != rev {
		t.Errorf("before revision = %d, want %d", before.RevisionID(), rev)
	}
	if b.RevisionID() == rev {
		t.Error("revision not bumped")
	}
}

func TestBufferApplyEmpty(t *testing.T) {
	b := NewBufferFromString("abc")
	rev := b.RevisionID()
	if _, err := b.Apply(change.NewTransaction()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.RevisionID() != rev {
		t.Error("empty transaction bumped revision")
	}
}

func TestBufferApplyAtomic(t *testing.T) {
	b := NewBufferFromString("abcdef")
	rev := b.RevisionID()

	// second change is out of range; the first must not be applied either
	tx := change.NewTransaction(change.Insert(0, "x"), change.Insert(99, "y"))
	_, err := b.Apply(tx)
	if !errors.Is(err, change.ErrOutOfRange) {
		t.Fatalf("Apply error = %v, want ErrOutOfRange", err)
	}
	if b.Text() != "abcdef" {
		t.Errorf("Text() = %q, want unchanged", b.Text())
	}
	if b.RevisionID() != rev {
		t.Error("revision changed on failed apply")
	}
}

func TestBufferApplyTo(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()

	if err := b.ApplyTo(snap, change.NewTransaction(change.Insert(3, "d"))); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	err := b.ApplyTo(snap, change.NewTransaction(change.Insert(0, "z")))
	if !errors.Is(err, ErrStaleSnapshot) {
		t.Errorf("ApplyTo stale = %v, want ErrStaleSnapshot", err)
	}
	if b.Text() != "abcd" {
		t.Errorf("Text() = %q", b.Text())
	}
	if err := b.ApplyTo(nil, change.NewTransaction()); !errors.Is(err, ErrNilSnapshot) {
		t.Errorf("ApplyTo(nil) = %v", err)
	}
}

func TestSnapshotImmutable(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()
	if _, err := b.Apply(change.NewTransaction(change.Delete(0, 3))); err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "abc" || snap.Len() != 3 {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if got := snap.Slice(1, 99); got != "bc" {
		t.Errorf("Slice(1, 99) = %q", got)
	}
}

func TestSnapshotPosition(t *testing.T) {
	snap := NewBufferFromString("ab\ncde\n\nf").Snapshot()

	tests := []struct {
		off       ByteOffset
		line, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{7, 2, 0},
		{8, 3, 0},
		{9, 3, 1},
		{100, 3, 1},
	}
	for _, tt := range tests {
		line, col := snap.Position(tt.off)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = (%d, %d), want (%d, %d)", tt.off, line, col, tt.line, tt.col)
		}
	}

	if got := snap.LineStart(1); got != 3 {
		t.Errorf("LineStart(1) = %d", got)
	}
	if got := snap.LineStart(3); got != 8 {
		t.Errorf("LineStart(3) = %d", got)
	}
	if got := snap.LineStart(10); got != 9 {
		t.Errorf("LineStart(10) = %d", got)
	}
	if got := len(snap.Lines()); got != 4 {
		t.Errorf("len(Lines()) = %d", got)
	}
}

func TestBufferWriteTo(t *testing.T) {
	var out bytes.Buffer
	n, err := NewBufferFromString("x\ny").WriteTo(&out)
	if err != nil || n != 3 || out.String() != "x\ny" {
		t.Errorf("WriteTo = (%d, %v), %q", n, err, out.String())
	}
}
