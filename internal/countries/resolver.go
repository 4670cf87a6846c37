package countries

import (
	"sort"
	"strings"
)

// Resolver turns free-text country names into ISO-2 codes. It is immutable
// after construction and safe for concurrent use.
//
// Resolution order:
//  1. exact alias-table match (case-insensitive)
//  2. passthrough when the input is already a two-letter code
//  3. substring containment against the alias table
//  4. "" when nothing matches
//
// Substring matching walks the table longest-alias-first so the most specific
// alias wins among overlaps ("north korea" before "korea"). That ordering is
// the chosen tie-break for overlapping aliases; within equal lengths the
// construction order of the table decides.
type Resolver struct {
	exact   map[string]string
	ordered []Alias
}

// NewResolver builds a resolver from the given alias table. The table is
// copied; callers cannot mutate the resolver afterwards.
func NewResolver(table []Alias) *Resolver {
	r := &Resolver{
		exact:   make(map[string]string, len(table)),
		ordered: make([]Alias, len(table)),
	}
	for i, a := range table {
		name := strings.ToLower(strings.TrimSpace(a.Name))
		r.ordered[i] = Alias{Name: name, Code: a.Code}
		if _, taken := r.exact[name]; !taken {
			r.exact[name] = a.Code
		}
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return len(r.ordered[i].Name) > len(r.ordered[j].Name)
	})
	return r
}

// DefaultResolver builds a resolver over DefaultAliases.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultAliases())
}

// Resolve maps text to an ISO-2 code, or "" when the input is empty or
// matches nothing. Deterministic for identical input.
func (r *Resolver) Resolve(text string) string {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return ""
	}
	if code, ok := r.exact[needle]; ok {
		return code
	}
	if isAlpha2(needle) {
		return strings.ToUpper(needle)
	}
	for _, a := range r.ordered {
		if strings.Contains(needle, a.Name) {
			return a.Code
		}
	}
	return ""
}

func isAlpha2(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
