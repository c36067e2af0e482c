// Package diff compares two parsed maps.
package diff

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
)

// Change is a key present on both sides with different values.
type Change struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// Result groups the differences from a to b.
type Result struct {
	Added   map[string]string `json:"added" yaml:"added"`
	Removed map[string]string `json:"removed" yaml:"removed"`
	Changed map[string]Change `json:"changed" yaml:"changed"`
}

// Empty reports whether a and b were equal.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Compare lists what changes going from a to b.
func Compare(a, b map[string]string) Result {
	r := Result{
		Added:   map[string]string{},
		Removed: map[string]string{},
		Changed: map[string]Change{},
	}
	for k, av := range a {
		bv, ok := b[k]
		switch {
		case !ok:
			r.Removed[k] = av
		case av != bv:
			r.Changed[k] = Change{Old: av, New: bv}
		}
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok {
			r.Added[k] = bv
		}
	}
	return r
}

// Write prints r as "+", "-" and "~" lines in key order.
func (r Result) Write(w io.Writer) error {
	for _, k := range slices.Sorted(maps.Keys(r.Removed)) {
		if _, err := fmt.Fprintf(w, "- %s=%s\n", k, r.Removed[k]); err != nil {
			return err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(r.Added)) {
		if _, err := fmt.Fprintf(w, "+ %s=%s\n", k, r.Added[k]); err != nil {
			return err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(r.Changed)) {
		c := r.Changed[k]
		if _, err := fmt.Fprintf(w, "~ %s: %q -> %q\n", k, c.Old, c.New); err != nil {
			return err
		}
	}
	return nil
}

// Text is the go-cmp rendering of the difference, empty when equal.
func Text(a, b map[string]string) string {
	return cmp.Diff(a, b)
}
