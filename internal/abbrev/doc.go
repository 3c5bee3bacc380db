// Package abbrev implements abbreviation expansion for typed characters.
//
// A Table maps abbreviations to expansions. An Expander turns one typed
// character into one change.Transaction covering every cursor of a
// selection: when the word immediately left of a cursor is a registered
// abbreviation, that word is replaced by its expansion followed by the
// typed character; otherwise the character is inserted as-is.
//
// Word boundaries are not computed here. The Expander asks a
// movement.WordMover for the previous word, so abbreviations always match
// what the user reaches with word-wise cursor movement.
//
// Basic usage:
//
//	table := abbrev.LoadFile(path)
//	tx := abbrev.NewExpander(nil).Build(snapshot, selection, table, ' ')
//	// apply tx as one edit and one undo step
//
// Loading is best-effort: a missing or unreadable file gives an empty
// table, and malformed lines are skipped.
package abbrev
