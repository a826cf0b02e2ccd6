// SPDX-License-Identifier: Apache-2.0

// Package config carries the resolution rule tables and site layout for one
// schema family. The compiled-in defaults describe the lexicons.bio family;
// a CUE file can override any section for other families.
package config

import (
	"github.com/lexicons-bio/dwc-crossref/internal/crossref"
)

// Model describes one published lexicon page of the generated site: which
// document it renders and which Darwin Core classes it is expected to cover.
type Model struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Lexicon     string   `json:"lexicon"` // path relative to the lexicon dir
	Classes     []string `json:"classes"`
	Description string   `json:"description"`
}

// Config is the full run configuration: resolution rules plus report/site
// layout.
type Config struct {
	Rules  crossref.RuleSet
	Models []Model

	// GBIF publishing requirements, rendered as badges on alignment tables.
	GBIFRequired    map[string]bool
	GBIFRecommended map[string]bool
}

// Default returns the lexicons.bio configuration.
func Default() Config {
	return Config{
		Rules: crossref.RuleSet{
			Infrastructure: set(
				"subject", "subjectIndex", "isAgreement", "confidence", "taxonId",
				"taxon", "location", "image", "alt", "aspectRatio", "width", "height",
			),
			Contextual: []crossref.ContextRule{
				{Field: "createdAt", PathContains: "identification", Term: "dateIdentified"},
				{Field: "blobs", PathContains: "occurrence", Term: "associatedMedia"},
				{Field: "recordedBy", PathContains: "occurrence", Term: "recordedBy"},
			},
			Renames: map[string]string{
				"notes":     "occurrenceRemarks",
				"comment":   "identificationRemarks",
				"createdAt": "dateIdentified",
			},
			RelevantClasses: set(
				"Occurrence", "Event", "Location", "Taxon", "Identification", "Organism",
			),
		},
		Models: []Model{
			{
				Name:        "Occurrence",
				Slug:        "occurrence",
				Lexicon:     "bio/lexicons/occurrence.json",
				Classes:     []string{"Occurrence", "Event", "Location", "Record-level"},
				Description: "A biodiversity observation — an organism at a place and time.",
			},
			{
				Name:        "Identification",
				Slug:        "identification",
				Lexicon:     "bio/lexicons/identification.json",
				Classes:     []string{"Identification", "Taxon"},
				Description: "A taxonomic determination for an observation.",
			},
		},
		GBIFRequired: set("occurrenceID", "basisOfRecord", "scientificName", "eventDate"),
		GBIFRecommended: set(
			"taxonRank", "kingdom", "decimalLatitude", "decimalLongitude",
			"geodeticDatum", "countryCode", "individualCount",
		),
	}
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}
