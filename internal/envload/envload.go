// Package envload builds a child process environment from parsed entries.
package envload

import (
	"maps"
	"slices"
	"strings"
)

// Environ merges m into base (KEY=VALUE pairs, as from os.Environ) for a
// child process. Entries in base win unless overwrite is set. The result is
// sorted by key; empty keys are dropped.
func Environ(base []string, m map[string]string, overwrite bool) []string {
	merged := make(map[string]string, len(base)+len(m))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		merged[k] = v
	}
	for k, v := range m {
		if k == "" {
			continue
		}
		if _, exists := merged[k]; exists && !overwrite {
			continue
		}
		merged[k] = v
	}
	out := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		out = append(out, k+"="+merged[k])
	}
	return out
}
