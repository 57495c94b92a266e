// Package audience computes the concrete recipient set of a broadcast
// notification from its targeting fields and a tenant roster snapshot.
// All functions are pure and operate on already-fetched data; callers own
// the I/O.
package audience

import (
	"fmt"
	"strings"
)

// NormalizeID canonicalizes an identifier-like value into a trimmed,
// lower-cased string. Backend rows mix numeric and string identifiers with
// inconsistent casing, so every set-membership comparison in this package
// goes through this function. nil becomes the empty string; the function
// never fails.
func NormalizeID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(x))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(x.String()))
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprint(x)))
	}
}

// NormalizeIDs normalizes a list of identifiers, dropping values that
// normalize to the empty string and deduplicating the rest. Order of first
// appearance is preserved.
func NormalizeIDs(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		id := NormalizeID(v)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
