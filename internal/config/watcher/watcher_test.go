package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/abbrev/internal/abbrev"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbreviations")
	writeFile(t, path, "btw by the way\n")

	store := abbrev.NewStore(abbrev.LoadFile(path))
	reloads := make(chan Event, 10)
	w, err := New(path, store,
		WithDebounce(10*time.Millisecond),
		WithHandler(func(ev Event) { reloads <- ev }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "btw by the way\nidk I don't know\n")

	waitFor(t, func() bool {
		_, ok := store.Table().Lookup("idk")
		return ok
	})

	select {
	case ev := <-reloads:
		if ev.Path != w.Path() {
			t.Errorf("event path = %q, want %q", ev.Path, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestWatcher_RemoveYieldsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbreviations")
	writeFile(t, path, "btw by the way\n")

	store := abbrev.NewStore(abbrev.LoadFile(path))
	w, err := New(path, store, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return store.Table().Len() == 0 })
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbreviations")
	writeFile(t, path, "btw by the way\n")

	store := abbrev.NewStore(abbrev.LoadFile(path))
	reloads := make(chan Event, 10)
	w, err := New(path, store,
		WithDebounce(10*time.Millisecond),
		WithHandler(func(ev Event) { reloads <- ev }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other"), "x y\n")

	select {
	case ev := <-reloads:
		t.Fatalf("unexpected reload %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbreviations")
	store := abbrev.NewStore(nil)

	w, err := New(path, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// written before any event can be debounced into a reload
	writeFile(t, path, "ty thank you\n")
	if err := w.Reload(); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Table().Lookup("ty"); got != "thank you" {
		t.Errorf("Lookup(ty) = %q", got)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := w.Reload(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Reload after Close = %v", err)
	}
}

func TestWatcher_ReloadReplaysOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbreviations")
	writeFile(t, path, "btw by the way\nteh the\n")

	overlay := abbrev.NewOverlay()
	overlay.Insert("omw", "on my way")
	overlay.Remove("teh")

	store := abbrev.NewStore(nil)
	w, err := New(path, store, WithOverlay(overlay))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "btw by the way\nteh the\nty thank you\n")
	if err := w.Reload(); err != nil {
		t.Fatal(err)
	}

	table := store.Table()
	for _, abbr := range []string{"btw", "ty", "omw"} {
		if _, ok := table.Lookup(abbr); !ok {
			t.Errorf("Lookup(%q) missing after reload", abbr)
		}
	}
	if _, ok := table.Lookup("teh"); ok {
		t.Error("overlay removal not replayed")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "abbreviations"), abbrev.NewStore(nil))
	if !errors.Is(err, ErrPathNotExist) {
		t.Errorf("New() = %v, want ErrPathNotExist", err)
	}
}
