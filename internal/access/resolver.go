package access

import (
	"sort"
	"strings"
)

// Resolver maps request paths to modules. The prefix table is fixed at
// construction; an explicit per-route annotation always beats the table.
type Resolver struct {
	prefixes []prefixRule
}

type prefixRule struct {
	prefix string
	module Module
}

// NewResolver builds a resolver from a prefix table. Prefixes are matched
// longest first so a sub-resource prefix (/regra/entrada) is tested before
// its parent (/regra) and is never shadowed by it.
func NewResolver(table map[string]Module) *Resolver {
	rules := make([]prefixRule, 0, len(table))
	for prefix, module := range table {
		rules = append(rules, prefixRule{prefix: prefix, module: module})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})
	return &Resolver{prefixes: rules}
}

// Resolve returns the module for a request. A non-empty annotation is
// authoritative. Otherwise the path is normalized (query string and trailing
// slash stripped) and matched against the prefix table; an exact match or a
// prefix followed by "/" both count. Returns false when nothing matches.
func (r *Resolver) Resolve(annotated Module, path string) (Module, bool) {
	if annotated != "" {
		return annotated, true
	}

	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")

	for _, rule := range r.prefixes {
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return rule.module, true
		}
	}
	return "", false
}
