// SPDX-License-Identifier: Apache-2.0

// Package crossref resolves lexicon fields against Darwin Core vocabulary
// terms.
//
// Classification is a pure function of its inputs: a fixed RuleSet decides,
// in strict precedence order, whether a field is infrastructure plumbing,
// contextually mapped, a direct name match, a manual rename, or an
// extension field with no vocabulary equivalent. Terms belonging to a
// relevant class that no field maps to are reported as unimplemented.
package crossref

import (
	"sort"
	"strings"

	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
)

// ContextRule maps a field name to a term only when the defining source's
// path contains PathContains as a substring. Rules are evaluated in
// declaration order and the last matching rule for a field wins.
type ContextRule struct {
	Field        string
	PathContains string
	Term         string
}

// RuleSet is the read-only resolution configuration for one run. It is
// passed explicitly so independent schema families can be classified
// concurrently with different rules.
type RuleSet struct {
	// Infrastructure names fields that are protocol plumbing, never domain
	// data. They classify as unmapped regardless of any name match.
	Infrastructure map[string]bool

	// Contextual rules resolve fields whose meaning depends on which
	// lexicon defines them. Declaration order matters: last match wins.
	Contextual []ContextRule

	// Renames maps field names to term names when the two differ but mean
	// the same thing. A rename whose target is not a known term is inert.
	Renames map[string]string

	// RelevantClasses limits which semantic classes count as unimplemented
	// when no field maps to them.
	RelevantClasses map[string]bool
}

// Mapping pairs a field name with the term it resolved to.
type Mapping struct {
	Field string   `json:"field"`
	Term  dwc.Term `json:"term"`
}

// Classification is the three-way result of one resolution run. Every input
// field name appears in exactly one of Mapped or Unmapped. All slices are
// sorted, so identical inputs render byte-identical reports.
type Classification struct {
	Mapped        []Mapping  `json:"mapped"`        // sorted by field name
	Unmapped      []string   `json:"unmapped"`      // sorted field names
	Unimplemented []dwc.Term `json:"unimplemented"` // sorted by class, then name
}

// Classify resolves every field defined by sources against terms under
// rules. It never fails: stale rule targets and empty inputs degrade to
// unmapped, not errors, because the vocabulary evolves independently of the
// lexicons. Inputs are not mutated.
func Classify(sources []*lexicon.Source, terms map[string]dwc.Term, rules RuleSet) Classification {
	contextual := resolveContextual(sources, terms, rules.Contextual)
	flat := lexicon.Flatten(sources)

	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	var result Classification
	mappedTerms := make(map[string]bool)
	for _, name := range names {
		term, ok := resolve(name, terms, rules, contextual)
		if !ok {
			result.Unmapped = append(result.Unmapped, name)
			continue
		}
		result.Mapped = append(result.Mapped, Mapping{Field: name, Term: term})
		mappedTerms[term.Name] = true
	}

	termNames := make([]string, 0, len(terms))
	for name := range terms {
		termNames = append(termNames, name)
	}
	sort.Strings(termNames)
	for _, name := range termNames {
		term := terms[name]
		if rules.RelevantClasses[term.Class] && !mappedTerms[name] {
			result.Unimplemented = append(result.Unimplemented, term)
		}
	}
	sort.Slice(result.Unimplemented, func(i, j int) bool {
		a, b := result.Unimplemented[i], result.Unimplemented[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Name < b.Name
	})

	return result
}

// resolve applies the precedence order for one field name:
// infrastructure > contextual > direct match > manual rename > unmapped.
func resolve(name string, terms map[string]dwc.Term, rules RuleSet, contextual map[string]dwc.Term) (dwc.Term, bool) {
	if rules.Infrastructure[name] {
		return dwc.Term{}, false
	}
	if term, ok := contextual[name]; ok {
		return term, true
	}
	if term, ok := terms[name]; ok {
		return term, true
	}
	if target, ok := rules.Renames[name]; ok {
		if term, ok := terms[target]; ok {
			return term, true
		}
	}
	return dwc.Term{}, false
}

// resolveContextual computes the pending contextual resolutions: a rule
// fires when some source's path contains the rule's substring, that source
// defines the field, and the target term exists. Later rules overwrite
// earlier ones for the same field.
func resolveContextual(sources []*lexicon.Source, terms map[string]dwc.Term, rules []ContextRule) map[string]dwc.Term {
	resolved := make(map[string]dwc.Term)
	for _, rule := range rules {
		term, ok := terms[rule.Term]
		if !ok {
			continue
		}
		for _, src := range sources {
			if strings.Contains(src.Path, rule.PathContains) && src.Defines(rule.Field) {
				resolved[rule.Field] = term
			}
		}
	}
	return resolved
}

// Coverage is the fraction of relevant vocabulary already carried by some
// field: mapped / (mapped + unimplemented), or 0 when no relevant terms
// exist at all.
func (c Classification) Coverage() float64 {
	total := len(c.Mapped) + len(c.Unimplemented)
	if total == 0 {
		return 0
	}
	return float64(len(c.Mapped)) / float64(total)
}
