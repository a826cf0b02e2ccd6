// SPDX-License-Identifier: Apache-2.0

// Package dwc loads the Darwin Core controlled vocabulary from the TDWG
// term_versions.csv export and reduces it to the currently recommended
// property terms, keyed by local name.
package dwc

import (
	"strings"
)

// ClassRecordLevel is the bucket for terms whose grouping path carries no
// class segment (Dublin Core namespaces and empty paths). Collisions across
// unrelated vocabularies all land in this one bucket.
const ClassRecordLevel = "Record-level"

// Record is one raw row of the term_versions.csv export.
type Record struct {
	Status      string
	RDFType     string
	OrganizedIn string
	LocalName   string
	Label       string
	Definition  string
	IRI         string
}

// Term is one retained vocabulary entry. Terms are built once per run and
// never mutated afterwards.
type Term struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Definition string `json:"definition"`
	IRI        string `json:"iri"`
	Class      string `json:"class"`
}

// BuildTerms reduces raw records to the retained term set, keyed by local
// name. Records are dropped when their status is not "recommended", when
// their RDF type marks a class rather than a property, or when they belong
// to the UseWithIRI namespace. Among surviving records sharing a local name
// the first in input order wins; the export lists the most recent version
// first.
func BuildTerms(records []Record) map[string]Term {
	terms := make(map[string]Term)
	for _, rec := range records {
		if rec.Status != "recommended" {
			continue
		}
		if strings.Contains(rec.RDFType, "Class") {
			continue
		}
		if strings.Contains(rec.OrganizedIn, "UseWithIRI") {
			continue
		}
		if _, seen := terms[rec.LocalName]; seen {
			continue
		}
		terms[rec.LocalName] = Term{
			Name:       rec.LocalName,
			Label:      rec.Label,
			Definition: rec.Definition,
			IRI:        rec.IRI,
			Class:      ExtractClass(rec.OrganizedIn),
		}
	}
	return terms
}

// ExtractClass derives a term's semantic class from its organized_in URI:
// the final non-empty path segment, except that Dublin Core namespaces
// ("1.1", "terms") and an empty path collapse to ClassRecordLevel. This is
// a heuristic over the grouping path, not a guaranteed-unique classification.
func ExtractClass(organizedIn string) string {
	if organizedIn == "" {
		return ClassRecordLevel
	}
	trimmed := strings.TrimRight(organizedIn, "/")
	last := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if last == "1.1" || last == "terms" {
		return ClassRecordLevel
	}
	return last
}
