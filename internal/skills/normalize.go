// Package skills canonicalizes free-text skill names and compares skill sets.
package skills

import (
	"fmt"
	"strings"
)

// DefaultAliases maps cleaned skill spellings to a single canonical token.
// Keys are cleaned before use, so "node.js" and "nodejs" are the same key.
// Every target must itself be a cleaned token; targets map to themselves.
var DefaultAliases = map[string]string{
	"nodejs":                  "nodejs",
	"node":                    "nodejs",
	"node js":                 "nodejs",
	"javascript":              "js",
	"js":                      "js",
	"typescript":              "ts",
	"ts":                      "ts",
	"machine learning":        "ml",
	"ml":                      "ml",
	"artificial intelligence": "ai",
	"ai":                      "ai",
	"data science":            "datascience",
	"c++":                     "cpp",
	"cplusplus":               "cpp",
	"expressjs":               "express",
	"express js":              "express",
	"fast api":                "fastapi",
	"scikit learn":            "scikitlearn",
	"sklearn":                 "scikitlearn",
	"llm models":              "llm",
	"deep learning":           "deeplearning",
	"prompt engineering":      "promptengineering",
	"golang":                  "go",
	"k8s":                     "kubernetes",
	"postgres":                "postgresql",
}

// Normalizer canonicalizes skill names using an alias table
type Normalizer struct {
	aliases map[string]string
}

var defaultNormalizer = mustNormalizer(DefaultAliases)

// Default returns the normalizer built from DefaultAliases.
func Default() *Normalizer {
	return defaultNormalizer
}

// Normalize canonicalizes a skill with the default alias table.
func Normalize(skill string) string {
	return defaultNormalizer.Normalize(skill)
}

// NewNormalizer builds a normalizer from an alias table. It returns an error when an
// alias target is not already in cleaned form or when a target is itself aliased to a
// different token, since either would break idempotence.
func NewNormalizer(aliases map[string]string) (*Normalizer, error) {
	table := make(map[string]string, len(aliases)*2)
	for raw, target := range aliases {
		if clean(target) != target || target == "" {
			return nil, fmt.Errorf("alias target %q for %q is not a cleaned token", target, raw)
		}
		key := clean(raw)
		if key == "" {
			continue
		}
		if existing, ok := table[key]; ok && existing != target {
			return nil, fmt.Errorf("alias %q maps to both %q and %q", key, existing, target)
		}
		table[key] = target
	}
	targets := make([]string, 0, len(table))
	for _, target := range table {
		targets = append(targets, target)
	}
	for _, target := range targets {
		if existing, ok := table[target]; ok && existing != target {
			return nil, fmt.Errorf("alias target %q is itself aliased to %q", target, existing)
		}
		table[target] = target
	}
	return &Normalizer{aliases: table}, nil
}

func mustNormalizer(aliases map[string]string) *Normalizer {
	n, err := NewNormalizer(aliases)
	if err != nil {
		panic(fmt.Sprintf("invalid skill alias table: %v", err))
	}
	return n
}

// WithAliases returns a new normalizer whose table is this one's plus extra.
// Entries in extra win over existing entries with the same key.
func (n *Normalizer) WithAliases(extra map[string]string) (*Normalizer, error) {
	merged := make(map[string]string, len(n.aliases)+len(extra))
	for k, v := range n.aliases {
		if k == v {
			continue
		}
		merged[k] = v
	}
	for k, v := range extra {
		merged[clean(k)] = v
	}
	return NewNormalizer(merged)
}

// Normalize lower-cases the skill, removes '.', turns '-' and '_' into spaces, collapses
// whitespace and applies the alias table. Unknown skills pass through cleaned.
func (n *Normalizer) Normalize(skill string) string {
	cleaned := clean(skill)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := n.aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// clean performs the string cleanup part of normalization.
func clean(skill string) string {
	s := strings.ToLower(skill)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Set is a set of normalized skills that remembers first-seen order and the raw
// spelling each token was first seen with.
type Set struct {
	keys    []string
	display map[string]string
}

// Set normalizes skills into a Set. Empty tokens are dropped and duplicates collapse.
func (n *Normalizer) Set(skills []string) Set {
	s := Set{display: make(map[string]string, len(skills))}
	for _, raw := range skills {
		token := n.Normalize(raw)
		if token == "" {
			continue
		}
		if _, seen := s.display[token]; seen {
			continue
		}
		s.keys = append(s.keys, token)
		s.display[token] = strings.TrimSpace(raw)
	}
	return s
}

// Len returns the number of distinct normalized skills.
func (s Set) Len() int {
	return len(s.keys)
}

// Has reports whether token (already normalized) is in the set.
func (s Set) Has(token string) bool {
	_, ok := s.display[token]
	return ok
}

// Keys returns the normalized tokens in first-seen order.
func (s Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Display returns the raw spelling a token was first seen with.
func (s Set) Display(token string) string {
	if d, ok := s.display[token]; ok && d != "" {
		return d
	}
	return token
}

// Intersect returns the tokens of s that are also in other, in s order.
func (s Set) Intersect(other Set) []string {
	var out []string
	for _, k := range s.keys {
		if other.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Difference returns the tokens of s that are not in other, in s order.
func (s Set) Difference(other Set) []string {
	var out []string
	for _, k := range s.keys {
		if !other.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Displays maps tokens to their raw spellings in s.
func (s Set) Displays(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = s.Display(t)
	}
	return out
}
