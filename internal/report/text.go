// SPDX-License-Identifier: Apache-2.0

// Package report renders a Classification for human consumption, either as
// a console report or as a static HTML site. Renderers only consume the
// classification; they never reclassify.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
)

const divider = "======================================================================"

// Text writes the console cross-reference report. Output is byte-identical
// across runs for identical inputs: sources arrive in load order and the
// classification is already sorted.
func Text(w io.Writer, sources []*lexicon.Source, cls crossref.Classification) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "Darwin Core Cross-Reference Report\n")
	fmt.Fprintf(&b, "%s\n", divider)

	fmt.Fprintf(&b, "\n## Lexicon files\n\n")
	for _, src := range sources {
		fmt.Fprintf(&b, "  %s\n", src.Path)
		for _, group := range src.Groups {
			fmt.Fprintf(&b, "    #%s: %d fields\n", group.Name, len(group.Fields))
		}
	}

	fmt.Fprintf(&b, "\n## Mapped to Darwin Core (%d fields)\n\n", len(cls.Mapped))
	for _, group := range cls.MappedByClass() {
		fmt.Fprintf(&b, "  [%s]\n", group.Class)
		for _, m := range group.Mappings {
			arrow := m.Field
			if m.Field != m.Term.Name {
				arrow = fmt.Sprintf("%s -> %s", m.Field, m.Term.Name)
			}
			fmt.Fprintf(&b, "    %-45s %s\n", arrow, m.Term.IRI)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## AT Protocol / extension fields (%d fields)\n\n", len(cls.Unmapped))
	for _, field := range cls.Unmapped {
		fmt.Fprintf(&b, "    %s\n", field)
	}

	fmt.Fprintf(&b, "\n## Unimplemented DwC terms in relevant classes (%d terms)\n\n", len(cls.Unimplemented))
	for _, group := range cls.UnimplementedByClass() {
		fmt.Fprintf(&b, "  [%s] (%d terms)\n", group.Class, len(group.Terms))
		for _, term := range group.Terms {
			fmt.Fprintf(&b, "    %-45s %s\n", term.Name, term.IRI)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "Summary\n")
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "  Lexicon fields mapped to DwC:       %d\n", len(cls.Mapped))
	fmt.Fprintf(&b, "  AT Protocol / extension fields:      %d\n", len(cls.Unmapped))
	fmt.Fprintf(&b, "  Unimplemented relevant DwC terms:    %d\n", len(cls.Unimplemented))
	total := len(cls.Mapped) + len(cls.Unimplemented)
	fmt.Fprintf(&b, "  Coverage of relevant DwC terms:      %.0f%% (%d/%d)\n",
		cls.Coverage()*100, len(cls.Mapped), total)

	_, err := io.WriteString(w, b.String())
	return err
}
