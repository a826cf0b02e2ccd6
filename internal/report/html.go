// SPDX-License-Identifier: Apache-2.0

package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/lexicons-bio/dwc-crossref/internal/config"
	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
)

//go:embed templates/*.gohtml templates/style.css
var templateFS embed.FS

// Page pairs a site model with its loaded lexicon document.
type Page struct {
	Model  config.Model
	Source *lexicon.Source
}

// Site renders the static documentation site: an index page with global
// coverage stats plus one reference/alignment page per model.
type Site struct {
	Terms map[string]dwc.Term
	Cfg   config.Config
	Pages []Page
}

// Generate writes index.html and one page per model into outDir, creating
// it if needed. Returns the relative names of the files written, in order.
func (s *Site) Generate(outDir string) ([]string, error) {
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse site templates: %w", err)
	}
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read site stylesheet: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	write := func(name, templateName string, data any) error {
		f, err := os.Create(filepath.Join(outDir, name))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		defer f.Close()
		if err := tmpl.ExecuteTemplate(f, templateName, data); err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
		written = append(written, name)
		return nil
	}

	styles := template.CSS(css)
	if err := write("index.html", "index", s.indexData(styles)); err != nil {
		return nil, err
	}
	for _, page := range s.Pages {
		data := s.modelData(page, styles)
		if err := write(page.Model.Slug+".html", "model", data); err != nil {
			return nil, err
		}
	}
	return written, nil
}

// classify runs the resolution engine over the given sources with the
// site's rule set, widened to the union of all model classes so the site
// reports coverage for every class a model claims.
func (s *Site) classify(sources []*lexicon.Source) crossref.Classification {
	rules := s.Cfg.Rules
	rules.RelevantClasses = s.siteClasses()
	return crossref.Classify(sources, s.Terms, rules)
}

func (s *Site) siteClasses() map[string]bool {
	classes := make(map[string]bool)
	for _, page := range s.Pages {
		for _, class := range page.Model.Classes {
			classes[class] = true
		}
	}
	return classes
}

// mappedTermNames returns the set of term names some field resolves to.
func mappedTermNames(cls crossref.Classification) map[string]bool {
	names := make(map[string]bool, len(cls.Mapped))
	for _, m := range cls.Mapped {
		names[m.Term.Name] = true
	}
	return names
}

// termStats counts relevant-term coverage: how many terms in the given
// classes have a mapped field. This is the per-model statistic of the site,
// distinct from Classification.Coverage which counts mapped fields.
func (s *Site) termStats(mapped map[string]bool, classes []string) stats {
	classSet := make(map[string]bool, len(classes))
	for _, c := range classes {
		classSet[c] = true
	}
	var st stats
	for _, term := range s.Terms {
		if !classSet[term.Class] {
			continue
		}
		st.Total++
		if mapped[term.Name] {
			st.Mapped++
		}
	}
	st.Missing = st.Total - st.Mapped
	if st.Total > 0 {
		st.Pct = float64(st.Mapped) / float64(st.Total) * 100
	}
	return st
}

type stats struct {
	Mapped  int
	Total   int
	Missing int
	Pct     float64
}

func (st stats) PctLabel() string { return fmt.Sprintf("%.0f%%", st.Pct) }

// ---------------------------------------------------------------------------
// view models
// ---------------------------------------------------------------------------

type navLink struct {
	Href   string
	Label  string
	Active bool
}

type pageChrome struct {
	Title string
	CSS   template.CSS
	Nav   []navLink
}

func (s *Site) chrome(title, active string, css template.CSS) pageChrome {
	nav := []navLink{{Href: "index.html", Label: "Overview", Active: active == "overview"}}
	for _, page := range s.Pages {
		nav = append(nav, navLink{
			Href:   page.Model.Slug + ".html",
			Label:  page.Model.Name,
			Active: active == page.Model.Slug,
		})
	}
	return pageChrome{Title: title, CSS: css, Nav: nav}
}

type indexCard struct {
	Slug        string
	NSID        string
	Name        string
	Description string
	FieldCount  int
	Pct         string
}

type indexData struct {
	pageChrome
	LexiconCount int
	TotalFields  int
	GlobalPct    string
	MappedTerms  int
	Cards        []indexCard
}

func (s *Site) indexData(css template.CSS) indexData {
	sources := make([]*lexicon.Source, 0, len(s.Pages))
	for _, page := range s.Pages {
		sources = append(sources, page.Source)
	}
	cls := s.classify(sources)
	global := s.termStats(mappedTermNames(cls), sortedKeys(s.siteClasses()))

	data := indexData{
		pageChrome:   s.chrome("lexicons.bio", "overview", css),
		LexiconCount: len(s.Pages),
		GlobalPct:    global.PctLabel(),
		MappedTerms:  global.Mapped,
	}
	for _, page := range s.Pages {
		pageCls := s.classify([]*lexicon.Source{page.Source})
		st := s.termStats(mappedTermNames(pageCls), page.Model.Classes)
		count := s.domainFieldCount(page.Source)
		data.TotalFields += count
		data.Cards = append(data.Cards, indexCard{
			Slug:        page.Model.Slug,
			NSID:        "bio.lexicons." + page.Model.Slug,
			Name:        page.Model.Name,
			Description: page.Model.Description,
			FieldCount:  count,
			Pct:         st.PctLabel(),
		})
	}
	return data
}

// domainFieldCount counts the source's distinct field names that are not
// infrastructure plumbing.
func (s *Site) domainFieldCount(src *lexicon.Source) int {
	count := 0
	for name := range lexicon.Flatten([]*lexicon.Source{src}) {
		if !s.Cfg.Rules.Infrastructure[name] {
			count++
		}
	}
	return count
}

type refRow struct {
	Field       string
	Required    bool
	Type        string
	Description string
	Constraints string
	DwCName     string
	DwCIRI      string
}

type refSection struct {
	Name        string
	MainLabel   string // set when the def is "main": the lexicon's short name
	Description string
	Rows        []refRow
}

type alignRow struct {
	TermName      string
	IRI           string
	Definition    string
	GBIF          string // "req", "rec", or ""
	Field         string
	FieldRequired bool
	Type          string
	Mapped        bool
}

type alignSection struct {
	Class  string
	Mapped int
	Total  int
	Rows   []alignRow
}

type extRow struct {
	Field       string
	Required    bool
	Type        string
	Description string
}

type modelData struct {
	pageChrome
	NSID        string
	Name        string
	Description string
	FieldCount  int
	Stats       stats
	TOC         []string
	Reference   []refSection
	Alignment   []alignSection
	Extension   []extRow
}

func (s *Site) modelData(page Page, css template.CSS) modelData {
	cls := s.classify([]*lexicon.Source{page.Source})
	flat := lexicon.Flatten([]*lexicon.Source{page.Source})

	// term name -> mapping field, for alignment rows
	fieldByTerm := make(map[string]string, len(cls.Mapped))
	mappedFields := make(map[string]bool, len(cls.Mapped))
	for _, m := range cls.Mapped {
		fieldByTerm[m.Term.Name] = m.Field
		mappedFields[m.Field] = true
	}

	data := modelData{
		pageChrome:  s.chrome(page.Model.Name+" — lexicons.bio", page.Model.Slug, css),
		NSID:        page.Source.ID,
		Name:        page.Model.Name,
		Description: page.Model.Description,
		FieldCount:  s.domainFieldCount(page.Source),
		Stats:       s.termStats(mappedTermNames(cls), page.Model.Classes),
	}

	for _, group := range page.Source.Groups {
		data.TOC = append(data.TOC, group.Name)
		data.Reference = append(data.Reference, s.refSection(page, group))
	}
	data.Alignment = s.alignSections(page.Model.Classes, flat, fieldByTerm)
	data.Extension = extensionRows(flat, mappedFields, s.Cfg.Rules.Infrastructure)
	return data
}

func (s *Site) refSection(page Page, group lexicon.Group) refSection {
	section := refSection{Name: group.Name, Description: group.Description}
	if group.Name == "main" {
		section.MainLabel = shortNSID(page.Source.ID)
	}
	for _, name := range sortedFieldNames(group.Fields) {
		field := group.Fields[name]
		row := refRow{
			Field:       field.Name,
			Required:    field.Required,
			Type:        field.Property.TypeLabel(),
			Description: field.Property.Description,
			Constraints: field.Property.ConstraintsLabel(),
		}
		// Link the DwC column only for domain fields with a vocabulary home.
		if !s.Cfg.Rules.Infrastructure[name] {
			target := name
			if renamed, ok := s.Cfg.Rules.Renames[name]; ok {
				target = renamed
			}
			if term, ok := s.Terms[target]; ok {
				row.DwCName = term.Name
				row.DwCIRI = term.IRI
			}
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}

func (s *Site) alignSections(classes []string, flat map[string]lexicon.Field, fieldByTerm map[string]string) []alignSection {
	var sections []alignSection
	for _, class := range classes {
		var terms []dwc.Term
		for _, term := range s.Terms {
			if term.Class == class {
				terms = append(terms, term)
			}
		}
		if len(terms) == 0 {
			continue
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i].Name < terms[j].Name })

		section := alignSection{Class: class, Total: len(terms)}
		for _, term := range terms {
			row := alignRow{
				TermName:   term.Name,
				IRI:        term.IRI,
				Definition: term.Definition,
			}
			switch {
			case s.Cfg.GBIFRequired[term.Name]:
				row.GBIF = "req"
			case s.Cfg.GBIFRecommended[term.Name]:
				row.GBIF = "rec"
			}
			if fieldName, ok := fieldByTerm[term.Name]; ok {
				if field, defined := flat[fieldName]; defined {
					row.Mapped = true
					row.Field = field.Name
					row.FieldRequired = field.Required
					row.Type = field.Property.TypeLabel()
					section.Mapped++
				}
			}
			section.Rows = append(section.Rows, row)
		}
		sections = append(sections, section)
	}
	return sections
}

// extensionRows lists domain fields that resolved to no term at all.
func extensionRows(flat map[string]lexicon.Field, mappedFields, infrastructure map[string]bool) []extRow {
	var rows []extRow
	for _, name := range sortedFieldNames(flat) {
		if mappedFields[name] || infrastructure[name] {
			continue
		}
		field := flat[name]
		rows = append(rows, extRow{
			Field:       field.Name,
			Required:    field.Required,
			Type:        field.Property.TypeLabel(),
			Description: field.Property.Description,
		})
	}
	return rows
}

func sortedFieldNames(fields map[string]lexicon.Field) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func shortNSID(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '.' {
			return id[i+1:]
		}
	}
	return id
}
