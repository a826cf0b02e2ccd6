// SPDX-License-Identifier: Apache-2.0

package crossref

import (
	"sort"

	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
)

// MappedClassGroup lists the mappings whose target terms share a semantic
// class, for report layout.
type MappedClassGroup struct {
	Class    string
	Mappings []Mapping // sorted by field name
}

// TermClassGroup lists terms sharing a semantic class.
type TermClassGroup struct {
	Class string
	Terms []dwc.Term // sorted by term name
}

// MappedByClass folds the mapped fields into per-class groups. Groups are
// sorted by class name and entries within a group by field name.
func (c Classification) MappedByClass() []MappedClassGroup {
	byClass := make(map[string][]Mapping)
	for _, m := range c.Mapped {
		byClass[m.Term.Class] = append(byClass[m.Term.Class], m)
	}

	groups := make([]MappedClassGroup, 0, len(byClass))
	for class, mappings := range byClass {
		sort.Slice(mappings, func(i, j int) bool { return mappings[i].Field < mappings[j].Field })
		groups = append(groups, MappedClassGroup{Class: class, Mappings: mappings})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Class < groups[j].Class })
	return groups
}

// UnimplementedByClass folds the unimplemented terms into per-class groups,
// sorted by class name with terms sorted by name.
func (c Classification) UnimplementedByClass() []TermClassGroup {
	byClass := make(map[string][]dwc.Term)
	for _, term := range c.Unimplemented {
		byClass[term.Class] = append(byClass[term.Class], term)
	}

	groups := make([]TermClassGroup, 0, len(byClass))
	for class, terms := range byClass {
		sort.Slice(terms, func(i, j int) bool { return terms[i].Name < terms[j].Name })
		groups = append(groups, TermClassGroup{Class: class, Terms: terms})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Class < groups[j].Class })
	return groups
}
