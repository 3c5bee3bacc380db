package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/abbrev/internal/config"
	"github.com/dshills/abbrev/internal/engine/cursor"
	"github.com/dshills/abbrev/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewLoadsTableAndScript(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abbreviations")
	script := filepath.Join(dir, "init.lua")
	writeFile(t, file, "btw by the way\nteh the\n")
	writeFile(t, script, `abbrev.add("omw", "on my way") abbrev.remove("teh")`)

	cfg := config.Default()
	cfg.Abbrev.File = file
	cfg.Abbrev.Script = script

	a, err := New(cfg, WithLogger(logging.Null()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	table := a.Store().Table()
	if _, ok := table.Lookup("omw"); !ok {
		t.Error("script entry missing")
	}
	if _, ok := table.Lookup("teh"); ok {
		t.Error("script removal not applied")
	}
	if _, ok := table.Lookup("btw"); !ok {
		t.Error("file entry missing")
	}
}

func TestNewMissingFilesAreNotFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Abbrev.File = filepath.Join(dir, "missing")
	cfg.Abbrev.Script = filepath.Join(dir, "missing.lua")

	a, err := New(cfg, WithLogger(logging.Null()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if a.Store().Table().Len() != 0 {
		t.Errorf("table has %d entries", a.Store().Table().Len())
	}
}

func TestNewWatchReloads(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abbreviations")
	writeFile(t, file, "btw by the way\n")

	cfg := config.Default()
	cfg.Abbrev.File = file
	cfg.Abbrev.Watch = true

	a, err := New(cfg, WithLogger(logging.Null()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	s, err := a.OpenSession(filepath.Join(dir, "doc.txt"))
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, file, "btw by the way\nty thank you\n")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := a.Store().Table().Lookup("ty"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("table not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.InsertText("ty!"); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "thank you!" {
		t.Errorf("Text() = %q", got)
	}
}

func TestNewScriptSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abbreviations")
	script := filepath.Join(dir, "init.lua")
	writeFile(t, file, "btw by the way\n")
	writeFile(t, script, `abbrev.add("omw", "on my way")`)

	cfg := config.Default()
	cfg.Abbrev.File = file
	cfg.Abbrev.Script = script
	cfg.Abbrev.Watch = true

	a, err := New(cfg, WithLogger(logging.Null()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	writeFile(t, file, "btw by the way\nty thank you\n")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := a.Store().Table().Lookup("ty"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("table not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	table := a.Store().Table()
	if exp, ok := table.Lookup("omw"); !ok || exp != "on my way" {
		t.Errorf("Lookup(omw) = %q, %v after reload; table has %d entries", exp, ok, table.Len())
	}
}

func TestOpenSessionReadsFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.txt")
	writeFile(t, doc, "btw\r\n")

	cfg := config.Default()
	cfg.Abbrev.File = filepath.Join(dir, "abbreviations")
	writeFile(t, cfg.Abbrev.File, "btw by the way\n")
	cfg.Abbrev.Enabled = false

	a, err := New(cfg, WithLogger(logging.Null()))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	s, err := a.OpenSession(doc)
	if err != nil {
		t.Fatal(err)
	}
	if s.Text() != "btw\n" || s.Path() != doc {
		t.Errorf("session = %q at %q", s.Text(), s.Path())
	}
	if s.Enabled() {
		t.Error("session ignores abbrev.enabled")
	}
	s.SetSelection(cursor.Cursors(3))
	s.SetEnabled(true)
	if err := s.InsertChar(' '); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "by the way \n" {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestNewLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Abbrev.File = filepath.Join(dir, "missing")
	cfg.Logging.File = filepath.Join(dir, "abbrev.log")
	cfg.Logging.Level = "debug"

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
