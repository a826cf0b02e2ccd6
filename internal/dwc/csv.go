// SPDX-License-Identifier: Apache-2.0

package dwc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadRecords parses a term_versions.csv stream into raw records. The first
// row is the header; columns are located by name so column order in the
// export does not matter. Rows shorter than the header are rejected by the
// csv reader itself.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"status", "rdf_type", "term_localName", "term_iri"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		records = append(records, Record{
			Status:      field(row, "status"),
			RDFType:     field(row, "rdf_type"),
			OrganizedIn: field(row, "organized_in"),
			LocalName:   field(row, "term_localName"),
			Label:       field(row, "label"),
			Definition:  field(row, "definition"),
			IRI:         field(row, "term_iri"),
		})
	}
	return records, nil
}

// LoadFile reads a term_versions.csv file and returns the retained term set.
func LoadFile(path string) (map[string]Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary csv: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return BuildTerms(records), nil
}
