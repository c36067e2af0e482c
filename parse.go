// Package envparse reads .env-style key=value text into a map.
//
// The format is deliberately lenient. Blank lines, lines whose first
// non-whitespace character is '#', and lines without '=' are skipped. Every
// other line is split at its first '=' and both halves are trimmed. Values are
// opaque: quotes, backslashes and inline '#' are kept verbatim. When a key
// repeats, the later line wins.
package envparse

import (
	"bufio"
	"io"
	"reflect"

	moderr "github.com/lizzyg/envparse/errors"
	"github.com/lizzyg/envparse/internal/core"
)

// Parse returns the entries of text. It never fails; malformed lines are skipped.
func Parse(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range core.SplitLines(text) {
		add(out, line)
	}
	return out
}

// ParseBytes is Parse for file contents.
func ParseBytes(b []byte) map[string]string {
	return Parse(string(b))
}

// ParseAny parses v when it is a string (or a type whose underlying kind is
// string) and otherwise fails with a *errors.TypeError matching
// errors.ErrTypeMismatch. Nothing is parsed when the type check fails.
func ParseAny(v any) (map[string]string, error) {
	switch s := v.(type) {
	case string:
		return Parse(s), nil
	case nil:
		return nil, moderr.NewTypeError(v)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return Parse(rv.String()), nil
	}
	return nil, moderr.NewTypeError(v)
}

// ParseReader parses r one "\n"-terminated chunk at a time, so memory is
// bounded by the longest chunk rather than the whole input. Lines have no
// length limit. The only errors are those returned by r.
func ParseReader(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	br := bufio.NewReader(r)
	for {
		// A chunk ends at "\n" or EOF, so "\r\n" never straddles two chunks
		// and SplitLines sees every terminator whole.
		chunk, err := br.ReadString('\n')
		for _, line := range core.SplitLines(chunk) {
			add(out, line)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func add(out map[string]string, line string) {
	e, kind := core.ParseLine(line)
	if kind != core.KindEntry {
		return
	}
	key, value := e.Trimmed()
	out[key] = value
}
