package core

import (
	"strings"
	"unicode"
)

// Kind classifies a single input line.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindNoSeparator
	KindEntry
)

// Separator divides a key from its value. Only the first one on a line counts.
const Separator = "="

// CommentPrefix marks a comment when it is the first non-whitespace character.
const CommentPrefix = '#'

// ByteOrderMark is trimmed like whitespace, so a file saved with a BOM
// reads the same as one without.
const ByteOrderMark = '\uFEFF'

// IsSpace reports whether r is removed by TrimSpace.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == ByteOrderMark
}

// TrimSpace removes leading and trailing Unicode whitespace and byte order marks.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Entry is the raw key and value of one line, before trimming.
type Entry struct {
	Key   string
	Value string
}

// Trimmed returns the key and value with surrounding whitespace removed.
func (e Entry) Trimmed() (key, value string) {
	return TrimSpace(e.Key), TrimSpace(e.Value)
}

// ParseLine classifies line and, for KindEntry, splits it at the first separator.
func ParseLine(line string) (Entry, Kind) {
	trimmed := TrimSpace(line)
	if trimmed == "" {
		return Entry{}, KindBlank
	}
	if trimmed[0] == CommentPrefix {
		return Entry{}, KindComment
	}
	key, value, ok := strings.Cut(line, Separator)
	if !ok {
		return Entry{}, KindNoSeparator
	}
	return Entry{Key: key, Value: value}, KindEntry
}
