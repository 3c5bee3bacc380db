package movement

import (
	"unicode"
	"unicode/utf8"
)

// Class is the category of a grapheme cluster for word motions.
type Class uint8

const (
	ClassWhitespace Class = iota
	ClassEOL
	ClassWord
	ClassPunctuation
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassEOL:
		return "eol"
	case ClassWord:
		return "word"
	case ClassPunctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Classify returns the class of a grapheme cluster, decided by its first
// rune.
func Classify(cluster string) Class {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
		return ClassEOL
	case unicode.IsSpace(r):
		return ClassWhitespace
	case IsWordRune(r):
		return ClassWord
	default:
		return ClassPunctuation
	}
}

// IsWordRune returns true if r is a word character.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}
