// SPDX-License-Identifier: Apache-2.0

// Package lexicon loads AT Protocol lexicon documents and exposes their
// field definitions for Darwin Core cross-referencing.
//
// A lexicon document declares named defs. A def carries its properties
// either directly or nested one level under a record wrapper; exactly one
// of the two shapes is populated per def. The same field name may appear in
// several defs or documents, and deliberately so: identical names carry
// different semantics in different groups, which is what contextual mapping
// rules exist for.
package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Property is the type descriptor of a single lexicon field.
type Property struct {
	Type        string    `yaml:"type"`
	Format      string    `yaml:"format"`
	Ref         string    `yaml:"ref"`
	Items       *Property `yaml:"items"`
	Description string    `yaml:"description"`
	MaxLength   *int      `yaml:"maxLength"`
	Minimum     *float64  `yaml:"minimum"`
	Maximum     *float64  `yaml:"maximum"`
	Default     any       `yaml:"default"`
	KnownValues []string  `yaml:"knownValues"`
}

// TypeLabel renders the property's type for display: refs collapse to their
// last NSID segment, arrays append "[]", and a format refinement replaces
// the primitive type when present.
func (p Property) TypeLabel() string {
	switch p.Type {
	case "ref":
		return refLabel(p.Ref)
	case "array":
		if p.Items == nil {
			return "array"
		}
		if p.Items.Type == "ref" {
			return refLabel(p.Items.Ref) + "[]"
		}
		if p.Items.Type == "" {
			return "array"
		}
		return p.Items.Type + "[]"
	}
	if p.Format != "" {
		return p.Format
	}
	return p.Type
}

func refLabel(ref string) string {
	if strings.HasPrefix(ref, "#") {
		return ref
	}
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return ref[i+1:]
	}
	return "ref"
}

// ConstraintsLabel renders the property's bounds as a short comma-joined
// summary, or "" when unconstrained. Enumerations longer than four values
// are abbreviated to a count.
func (p Property) ConstraintsLabel() string {
	var parts []string
	if p.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max %d", *p.MaxLength))
	}
	if p.Minimum != nil {
		parts = append(parts, fmt.Sprintf("min %g", *p.Minimum))
	}
	if p.Maximum != nil {
		parts = append(parts, fmt.Sprintf("max %g", *p.Maximum))
	}
	if p.Default != nil {
		parts = append(parts, fmt.Sprintf("default: %v", p.Default))
	}
	if len(p.KnownValues) > 0 {
		if len(p.KnownValues) <= 4 {
			parts = append(parts, strings.Join(p.KnownValues, " | "))
		} else {
			parts = append(parts, fmt.Sprintf("%d values", len(p.KnownValues)))
		}
	}
	return strings.Join(parts, ", ")
}

// Field is one named, typed schema property together with its owning group.
type Field struct {
	Name     string
	Property Property
	Required bool
	Group    string
}

// Group is one lexicon def with its field map and per-group required set.
type Group struct {
	Name        string
	Description string
	Fields      map[string]Field
}

// Source is one loaded lexicon document. Path is the identifying path used
// for substring matching by contextual mapping rules.
type Source struct {
	Path        string
	ID          string
	Description string
	Groups      []Group
}

// Defines reports whether any group in the source declares the named field.
func (s *Source) Defines(field string) bool {
	for _, g := range s.Groups {
		if _, ok := g.Fields[field]; ok {
			return true
		}
	}
	return false
}

// lexiconDoc mirrors the subset of the lexicon document format we read.
// Lexicon files are JSON; goccy/go-yaml parses JSON as a YAML subset.
type lexiconDoc struct {
	ID          string             `yaml:"id"`
	Description string             `yaml:"description"`
	Defs        map[string]defBody `yaml:"defs"`
}

type defBody struct {
	Type        string              `yaml:"type"`
	Description string              `yaml:"description"`
	Properties  map[string]Property `yaml:"properties"`
	Required    []string            `yaml:"required"`
	Record      *recordBody         `yaml:"record"`
}

type recordBody struct {
	Description string              `yaml:"description"`
	Properties  map[string]Property `yaml:"properties"`
	Required    []string            `yaml:"required"`
}

// Parse reads one lexicon document. Defs without properties (token defs,
// pure refs) are skipped. Groups are sorted by name so a Source renders
// identically across runs.
func Parse(path string, data []byte) (*Source, error) {
	var doc lexiconDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lexicon %s: %w", path, err)
	}

	src := &Source{
		Path:        path,
		ID:          doc.ID,
		Description: doc.Description,
	}
	for defName, body := range doc.Defs {
		props := body.Properties
		required := body.Required
		desc := body.Description
		if len(props) == 0 && body.Record != nil {
			props = body.Record.Properties
			required = body.Record.Required
			if desc == "" {
				desc = body.Record.Description
			}
		}
		if len(props) == 0 {
			continue
		}

		requiredSet := make(map[string]bool, len(required))
		for _, name := range required {
			requiredSet[name] = true
		}

		group := Group{
			Name:        defName,
			Description: desc,
			Fields:      make(map[string]Field, len(props)),
		}
		for name, prop := range props {
			group.Fields[name] = Field{
				Name:     name,
				Property: prop,
				Required: requiredSet[name],
				Group:    defName,
			}
		}
		src.Groups = append(src.Groups, group)
	}
	sort.Slice(src.Groups, func(i, j int) bool { return src.Groups[i].Name < src.Groups[j].Name })
	return src, nil
}

// Flatten merges all groups of all sources into a single field view; later
// sources and groups overwrite earlier ones on name collision. The per-group
// view on each Source preserves every occurrence.
func Flatten(sources []*Source) map[string]Field {
	flat := make(map[string]Field)
	for _, src := range sources {
		for _, group := range src.Groups {
			names := make([]string, 0, len(group.Fields))
			for name := range group.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				flat[name] = group.Fields[name]
			}
		}
	}
	return flat
}
