package envparse

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strings"

	moderr "github.com/lizzyg/envparse/errors"
	"github.com/lizzyg/envparse/internal/core"
)

// Marshal renders m as key=value lines sorted by key. Every map returned by
// Parse can be marshalled, and parsing the result gives back an equal map.
// Entries that would not survive that round trip fail with an
// *errors.EntryError wrapping errors.ErrUnrepresentable.
func Marshal(m map[string]string) (string, error) {
	var b strings.Builder
	if err := MarshalWriter(&b, m); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarshalWriter is Marshal writing to w. All entries are validated before
// anything is written.
func MarshalWriter(w io.Writer, m map[string]string) error {
	keys := slices.Sorted(maps.Keys(m))
	for _, k := range keys {
		if err := Representable(k, m[k]); err != nil {
			return err
		}
	}
	bw := bufio.NewWriter(w)
	for _, k := range keys {
		bw.WriteString(k)
		bw.WriteString(core.Separator)
		bw.WriteString(m[k])
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Representable reports whether key=value parses back to the same pair.
func Representable(key, value string) error {
	reason := ""
	switch {
	case strings.Contains(key, core.Separator):
		reason = "key contains '='"
	case strings.ContainsAny(key, "\r\n"):
		reason = "key contains a line break"
	case core.TrimSpace(key) != key:
		reason = "key has surrounding whitespace"
	case key != "" && key[0] == core.CommentPrefix:
		reason = "key starts with '#'"
	case strings.ContainsAny(value, "\r\n"):
		reason = "value contains a line break"
	case core.TrimSpace(value) != value:
		reason = "value has surrounding whitespace"
	default:
		return nil
	}
	return &moderr.EntryError{Key: key, Reason: reason}
}
