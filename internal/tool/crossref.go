// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the cross-reference engine as MCP tools.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexicons-bio/dwc-crossref/internal/config"
	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
)

// MetadataCrossrefLexicons describes the crossref_lexicons tool.
var MetadataCrossrefLexicons = &mcp.Tool{
	Name: "crossref_lexicons",
	Description: "Cross-reference AT Protocol lexicon fields against Darwin Core terms. " +
		"Takes the TDWG term_versions.csv content and one or more lexicon JSON documents, " +
		"and returns which fields map to which DwC terms, which fields are protocol/extension " +
		"fields with no DwC equivalent, which relevant DwC terms have no field yet, and the " +
		"resulting coverage percentage.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"dwc_csv", "lexicons"},
		"properties": map[string]interface{}{
			"dwc_csv": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the TDWG term_versions.csv export",
			},
			"lexicons": map[string]interface{}{
				"type":        "array",
				"description": "Lexicon JSON documents to classify",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"path", "content"},
					"properties": map[string]interface{}{
						"path": map[string]interface{}{
							"type":        "string",
							"description": "Identifying path of the document, used by contextual mapping rules",
						},
						"content": map[string]interface{}{
							"type":        "string",
							"description": "Raw JSON content of the lexicon document",
						},
					},
				},
			},
		},
	},
}

// LexiconDocument is one lexicon input to the crossref tool.
type LexiconDocument struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// InputCrossrefLexicons is the input for the CrossrefLexicons tool.
type InputCrossrefLexicons struct {
	DwCCSV   string            `json:"dwc_csv"`
	Lexicons []LexiconDocument `json:"lexicons"`
}

// OutputCrossrefLexicons is the output for the CrossrefLexicons tool.
type OutputCrossrefLexicons struct {
	Mapped        []crossref.Mapping `json:"mapped"`
	Unmapped      []string           `json:"unmapped"`
	Unimplemented []dwc.Term         `json:"unimplemented"`
	// CoveragePct is the share of relevant DwC terms already carried by a
	// lexicon field, as a 0-100 percentage.
	CoveragePct float64 `json:"coverage_pct"`
}

// CrossrefLexicons classifies the given lexicon documents against the given
// vocabulary using the default lexicons.bio rule tables.
func CrossrefLexicons(_ context.Context, _ *mcp.CallToolRequest, input InputCrossrefLexicons) (*mcp.CallToolResult, OutputCrossrefLexicons, error) {
	if input.DwCCSV == "" {
		return nil, OutputCrossrefLexicons{}, fmt.Errorf("dwc_csv is required")
	}
	if len(input.Lexicons) == 0 {
		return nil, OutputCrossrefLexicons{}, fmt.Errorf("at least one lexicon is required")
	}

	records, err := dwc.ReadRecords(strings.NewReader(input.DwCCSV))
	if err != nil {
		return nil, OutputCrossrefLexicons{}, err
	}
	terms := dwc.BuildTerms(records)

	sources := make([]*lexicon.Source, 0, len(input.Lexicons))
	for _, doc := range input.Lexicons {
		src, err := lexicon.Parse(doc.Path, []byte(doc.Content))
		if err != nil {
			return nil, OutputCrossrefLexicons{}, err
		}
		sources = append(sources, src)
	}

	cls := crossref.Classify(sources, terms, config.Default().Rules)
	return nil, OutputCrossrefLexicons{
		Mapped:        cls.Mapped,
		Unmapped:      cls.Unmapped,
		Unimplemented: cls.Unimplemented,
		CoveragePct:   cls.Coverage() * 100,
	}, nil
}
