// Package koanfparser lets koanf load .env-style files with envparse rules.
//
//	k := koanf.New(".")
//	k.Load(file.Provider(".env"), koanfparser.Parser())
package koanfparser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/maps"

	"github.com/lizzyg/envparse"
	moderr "github.com/lizzyg/envparse/errors"
)

// DotEnv implements koanf.Parser.
type DotEnv struct {
	delim string
}

// Parser returns a parser that keeps keys flat: "app.name=x" stays a single
// top-level key.
func Parser() *DotEnv {
	return &DotEnv{}
}

// ParserWithDelim returns a parser that splits keys on delim into nested
// maps, so "app.name=x" is reachable as k.String("app.name") when delim
// matches the koanf instance's delimiter. Input where a key is both a value
// and a parent ("a=1" with "a.b=2") fails with errors.ErrKeyConflict.
func ParserWithDelim(delim string) *DotEnv {
	return &DotEnv{delim: delim}
}

// Unmarshal parses b. Values are always strings.
func (p *DotEnv) Unmarshal(b []byte) (map[string]interface{}, error) {
	parsed := envparse.ParseBytes(b)
	out := make(map[string]interface{}, len(parsed))
	for k, v := range parsed {
		out[k] = v
	}
	if p.delim == "" {
		return out, nil
	}
	if err := checkConflicts(out, p.delim); err != nil {
		return nil, err
	}
	return maps.Unflatten(out, p.delim), nil
}

// checkConflicts rejects a key that is also a prefix of another key, which
// maps.Unflatten would resolve differently depending on map order. Keys are
// visited sorted so the reported pair is stable.
func checkConflicts(flat map[string]interface{}, delim string) error {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts := strings.Split(k, delim)
		for i := 1; i < len(parts); i++ {
			prefix := strings.Join(parts[:i], delim)
			if _, ok := flat[prefix]; ok {
				return fmt.Errorf("%w: %q and %q", moderr.ErrKeyConflict, prefix, k)
			}
		}
	}
	return nil
}

// Marshal flattens o and renders it as sorted key=value lines. Non-string
// values are formatted with fmt.Sprint; nil becomes an empty value.
func (p *DotEnv) Marshal(o map[string]interface{}) ([]byte, error) {
	delim := p.delim
	if delim == "" {
		delim = "."
	}
	flat, _ := maps.Flatten(o, nil, delim)
	m := make(map[string]string, len(flat))
	for k, v := range flat {
		switch val := v.(type) {
		case nil:
			m[k] = ""
		case string:
			m[k] = val
		default:
			m[k] = fmt.Sprint(val)
		}
	}
	s, err := envparse.Marshal(m)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
