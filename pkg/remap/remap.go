// Package remap rewrites the registry prefix of container-image references
// according to an ordered list of source/destination prefix rules.
package remap

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/imgremap/imgremap/pkg/imageref"
)

// Rule maps a source registry prefix to a destination prefix. The match is a
// plain string-prefix test against the canonical image reference, and the
// substitution replaces every occurrence of Source, not only the leading one.
type Rule struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// Rules is an ordered rule list. Order is significant: the first matching
// rule wins and scanning stops.
type Rules []Rule

// Rewrite canonicalizes raw and applies the first rule whose Source is a
// prefix of the canonical form. When no rule matches, the canonical form is
// returned unchanged, so callers always observe a canonicalized reference.
// Rewrite is total and never fails; an empty rule list is a pass-through to
// canonicalization.
func (rs Rules) Rewrite(raw string) string {
	canonical := imageref.Canonical(raw)
	for _, rule := range rs {
		if strings.HasPrefix(canonical, rule.Source) {
			return strings.ReplaceAll(canonical, rule.Source, rule.Destination)
		}
	}
	return canonical
}

// FromMap converts a map-shaped mapping into Rules with a deterministic
// order: longer sources first so that more specific prefixes win over
// prefixes of themselves, ties broken lexicographically.
func FromMap(mapping map[string]string) Rules {
	sources := lo.Keys(mapping)
	sort.Slice(sources, func(i, j int) bool {
		if len(sources[i]) != len(sources[j]) {
			return len(sources[i]) > len(sources[j])
		}
		return sources[i] < sources[j]
	})
	rules := make(Rules, 0, len(sources))
	for _, source := range sources {
		rules = append(rules, Rule{Source: source, Destination: mapping[source]})
	}
	return rules
}
