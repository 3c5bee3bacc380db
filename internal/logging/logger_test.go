package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	l.core.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return l, &buf
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		result := ParseLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}

	if ValidLevel("verbose") {
		t.Error("verbose should not be a valid level")
	}
	if !ValidLevel("Warn") {
		t.Error("Warn should be a valid level")
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := fixedLogger(LevelDebug)

	l.WithComponent("abbrev").WithField("file", "/tmp/a").Info("loaded %d entries", 3)

	want := "2024-01-02T03:04:05.000 [INFO] test: loaded 3 entries {component=abbrev, file=/tmp/a}\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := fixedLogger(LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[WARN]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLoggerDerivedSharesLevel(t *testing.T) {
	l, buf := fixedLogger(LevelError)
	child := l.WithComponent("watcher")

	l.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("derived logger should follow root level, got %q", buf.String())
	}
	if child.Level() != LevelDebug {
		t.Errorf("Level() = %s", child.Level())
	}
}

func TestNullLogger(t *testing.T) {
	l := Null()
	l.Error("discarded")
	l.WithField("k", "v").Info("discarded")

	var nilLogger *Logger
	nilLogger.Info("no panic")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abbrev.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	l := New(Config{Level: LevelInfo, Output: f})
	l.Info("hello")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing record: %q", data)
	}
}
