package abbrev

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dshills/abbrev/internal/logging"
)

// FileReader reads whole files. It lets tests load tables from memory.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFiles implements FileReader using the real file system.
type OSFiles struct{}

// ReadFile reads the entire file at path.
func (OSFiles) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader builds tables from abbreviation files.
type Loader struct {
	files  FileReader
	logger *logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFiles sets the file reader used by the loader.
func WithFiles(files FileReader) LoaderOption {
	return func(l *Loader) {
		if files != nil {
			l.files = files
		}
	}
}

// WithLogger sets the logger that records skipped lines and read failures.
func WithLogger(logger *logging.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		files:  OSFiles{},
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads the abbreviation file at path.
// A missing or unreadable file yields an empty table; the error is logged,
// never returned.
func (l *Loader) LoadFile(path string) *Table {
	data, err := l.files.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("abbreviation file %s does not exist", path)
		} else {
			l.logger.Warn("reading abbreviation file %s: %v", path, err)
		}
		return NewTable()
	}

	t := l.parse(path, string(data))
	l.logger.Debug("loaded %d abbreviations from %s", t.Len(), path)
	return t
}

// LoadReader reads an abbreviation table from r.
// If r fails, the result is an empty table.
func (l *Loader) LoadReader(r io.Reader) *Table {
	data, err := io.ReadAll(r)
	if err != nil {
		l.logger.Warn("reading abbreviations: %v", err)
		return NewTable()
	}
	return l.parse("<reader>", string(data))
}

// LoadLines builds a table from already-split lines.
func (l *Loader) LoadLines(lines []string) *Table {
	t := NewTable()
	for i, line := range lines {
		l.parseLine(t, "<lines>", i+1, line)
	}
	return t
}

func (l *Loader) parse(source, content string) *Table {
	t := NewTable()
	lineNo := 0
	for len(content) > 0 {
		lineNo++
		line, rest, _ := strings.Cut(content, "\n")
		content = rest
		l.parseLine(t, source, lineNo, strings.TrimSuffix(line, "\r"))
	}
	return t
}

// parseLine splits line on its first space into abbreviation and
// expansion. Lines with no space or an empty abbreviation are skipped.
func (l *Loader) parseLine(t *Table, source string, lineNo int, line string) {
	abbr, expansion, ok := ParseLine(line)
	if !ok {
		if line != "" {
			l.logger.Debug("%s:%d: skipping malformed abbreviation line", source, lineNo)
		}
		return
	}
	t.Insert(abbr, expansion)
}

// ParseLine splits one abbreviation file line. It reports false for lines
// without a space and for lines whose abbreviation would be empty.
func ParseLine(line string) (abbr, expansion string, ok bool) {
	abbr, expansion, found := strings.Cut(line, " ")
	if !found || abbr == "" {
		return "", "", false
	}
	return abbr, expansion, true
}

// LoadFile reads the abbreviation file at path with a default loader.
func LoadFile(path string) *Table {
	return NewLoader().LoadFile(path)
}

// LoadReader reads a table from r with a default loader.
func LoadReader(r io.Reader) *Table {
	return NewLoader().LoadReader(r)
}

// LoadLines builds a table from lines with a default loader.
func LoadLines(lines []string) *Table {
	return NewLoader().LoadLines(lines)
}
