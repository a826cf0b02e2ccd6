// SPDX-License-Identifier: Apache-2.0

package dwc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicons-bio/dwc-crossref/internal/dwc"
)

func TestBuildTerms(t *testing.T) {
	records := []dwc.Record{
		{Status: "recommended", RDFType: "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property",
			OrganizedIn: "http://rs.tdwg.org/dwc/terms/attributes/Occurrence",
			LocalName:   "occurrenceID", Label: "Occurrence ID",
			IRI: "http://rs.tdwg.org/dwc/terms/occurrenceID"},
		// Older version of the same term: first one must win.
		{Status: "recommended", RDFType: "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property",
			OrganizedIn: "http://rs.tdwg.org/dwc/terms/attributes/Occurrence",
			LocalName:   "occurrenceID", Label: "Occurrence ID (old)",
			IRI: "http://rs.tdwg.org/dwc/terms/occurrenceID-old"},
		// Superseded record.
		{Status: "superseded", RDFType: "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property",
			LocalName: "basisOfRecord"},
		// Class definition, not a property.
		{Status: "recommended", RDFType: "http://www.w3.org/2000/01/rdf-schema#Class",
			OrganizedIn: "http://rs.tdwg.org/dwc/terms/",
			LocalName:   "Occurrence"},
		// IRI-only variant.
		{Status: "recommended", RDFType: "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property",
			OrganizedIn: "http://rs.tdwg.org/dwc/iri/UseWithIRI",
			LocalName:   "behavior"},
		{Status: "recommended", RDFType: "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property",
			OrganizedIn: "http://rs.tdwg.org/dwc/terms/attributes/Event",
			LocalName:   "eventDate", Label: "Event Date",
			IRI: "http://rs.tdwg.org/dwc/terms/eventDate"},
	}

	terms := dwc.BuildTerms(records)

	require.Len(t, terms, 2)
	assert.Equal(t, "Occurrence ID", terms["occurrenceID"].Label)
	assert.Equal(t, "Occurrence", terms["occurrenceID"].Class)
	assert.Equal(t, "Event", terms["eventDate"].Class)
	assert.NotContains(t, terms, "basisOfRecord")
	assert.NotContains(t, terms, "Occurrence")
	assert.NotContains(t, terms, "behavior")
}

func TestExtractClass(t *testing.T) {
	tests := []struct {
		name        string
		organizedIn string
		want        string
	}{
		{"empty path", "", dwc.ClassRecordLevel},
		{"class segment", "http://rs.tdwg.org/dwc/terms/attributes/Taxon", "Taxon"},
		{"trailing slash", "http://rs.tdwg.org/dwc/terms/attributes/Location/", "Location"},
		{"dublin core elements", "http://purl.org/dc/elements/1.1", dwc.ClassRecordLevel},
		{"dublin core terms", "http://purl.org/dc/terms", dwc.ClassRecordLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dwc.ExtractClass(tt.organizedIn))
		})
	}
}

const sampleCSV = `term_localName,label,status,rdf_type,organized_in,term_iri,definition
occurrenceID,Occurrence ID,recommended,http://www.w3.org/1999/02/22-rdf-syntax-ns#Property,http://rs.tdwg.org/dwc/terms/attributes/Occurrence,http://rs.tdwg.org/dwc/terms/occurrenceID,An identifier for the Occurrence.
eventDate,Event Date,recommended,http://www.w3.org/1999/02/22-rdf-syntax-ns#Property,http://rs.tdwg.org/dwc/terms/attributes/Event,http://rs.tdwg.org/dwc/terms/eventDate,"The date-time, or interval."
`

func TestReadRecords(t *testing.T) {
	records, err := dwc.ReadRecords(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "occurrenceID", records[0].LocalName)
	assert.Equal(t, "recommended", records[0].Status)
	assert.Equal(t, "http://rs.tdwg.org/dwc/terms/occurrenceID", records[0].IRI)
	assert.Equal(t, "The date-time, or interval.", records[1].Definition)
}

func TestReadRecords_MissingColumn(t *testing.T) {
	_, err := dwc.ReadRecords(strings.NewReader("label,definition\nfoo,bar\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReadRecords_EmptyInput(t *testing.T) {
	_, err := dwc.ReadRecords(strings.NewReader(""))
	require.Error(t, err)
}
