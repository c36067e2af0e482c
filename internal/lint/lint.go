// Package lint reports lines that the parser accepts silently but that are
// probably not what the author meant.
package lint

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lizzyg/envparse/internal/core"
)

// Code identifies the kind of a Finding.
type Code string

const (
	CodeDuplicateKey Code = "duplicate-key"
	CodeNoSeparator  Code = "no-separator"
	CodeEmptyKey     Code = "empty-key"
	CodeMismatch     Code = "godotenv-mismatch"
	CodeRejected     Code = "godotenv-rejected"
)

// Finding is one diagnostic, tied to a 1-based line number.
type Finding struct {
	Line    int    `json:"line" yaml:"line"`
	Code    Code   `json:"code" yaml:"code"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%d: %s: %s", f.Line, f.Code, f.Message)
}

// Options selects the optional checks.
type Options struct {
	// Godotenv compares every line with how github.com/joho/godotenv reads it.
	Godotenv bool
}

// Check returns findings in line order. The parse result itself is not
// affected by anything reported here.
func Check(text string, opts Options) []Finding {
	var out []Finding
	seen := make(map[string]int)
	for i, line := range core.SplitLines(text) {
		n := i + 1
		e, kind := core.ParseLine(line)
		switch kind {
		case core.KindBlank, core.KindComment:
			continue
		case core.KindNoSeparator:
			msg := "line has no '=' and is ignored"
			if opts.Godotenv {
				if k, v, ok := godotenvPair(line); ok {
					msg += fmt.Sprintf("; godotenv reads it as %s=%s", k, v)
				}
			}
			out = append(out, Finding{Line: n, Code: CodeNoSeparator, Message: msg})
			continue
		}

		key, value := e.Trimmed()
		if key == "" {
			out = append(out, Finding{Line: n, Code: CodeEmptyKey, Message: "entry has an empty key"})
		}
		if prev, ok := seen[key]; ok {
			out = append(out, Finding{
				Line:    n,
				Code:    CodeDuplicateKey,
				Key:     key,
				Message: fmt.Sprintf("%q overrides the value from line %d", key, prev),
			})
		}
		seen[key] = n

		if opts.Godotenv {
			if f, ok := compare(n, line, key, value); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// compare reports a finding when godotenv disagrees with the parser on line.
func compare(n int, line, key, value string) (Finding, bool) {
	gm, err := godotenv.Unmarshal(line)
	if err != nil {
		return Finding{
			Line:    n,
			Code:    CodeRejected,
			Key:     key,
			Message: fmt.Sprintf("godotenv rejects this line: %v", err),
		}, true
	}
	if gv, ok := gm[key]; ok && len(gm) == 1 && gv == value {
		return Finding{}, false
	}
	gk, gv, _ := single(gm)
	return Finding{
		Line: n,
		Code: CodeMismatch,
		Key:  key,
		Message: fmt.Sprintf("read as %q=%q, godotenv reads %q=%q%s",
			key, value, gk, gv, hint(key, value)),
	}, true
}

func godotenvPair(line string) (string, string, bool) {
	gm, err := godotenv.Unmarshal(line)
	if err != nil {
		return "", "", false
	}
	return single(gm)
}

func single(m map[string]string) (string, string, bool) {
	for k, v := range m {
		return k, v, len(m) == 1
	}
	return "", "", false
}

func hint(key, value string) string {
	switch {
	case len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0]:
		return " (quotes are kept as part of the value)"
	case strings.HasPrefix(key, "export "):
		return " (\"export\" is kept as part of the key)"
	case strings.Contains(value, " #"):
		return " (inline '#' is part of the value)"
	case strings.Contains(value, "$"):
		return " (variables are not expanded)"
	default:
		return ""
	}
}
