// SPDX-License-Identifier: Apache-2.0

package lexicon_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicons-bio/dwc-crossref/internal/lexicon"
)

const sampleLexicon = `{
  "lexicon": 1,
  "id": "bio.lexicons.occurrence",
  "description": "A biodiversity observation.",
  "defs": {
    "main": {
      "type": "record",
      "record": {
        "type": "object",
        "description": "A biodiversity occurrence record.",
        "required": ["eventDate"],
        "properties": {
          "eventDate": {"type": "string", "format": "datetime", "description": "When the organism was observed."},
          "notes": {"type": "string", "maxLength": 3000},
          "location": {"type": "ref", "ref": "#location"},
          "blobs": {"type": "array", "items": {"type": "ref", "ref": "com.example.embed.image"}}
        }
      }
    },
    "location": {
      "type": "object",
      "required": ["decimalLatitude"],
      "properties": {
        "decimalLatitude": {"type": "string"},
        "decimalLongitude": {"type": "string"}
      }
    },
    "basisToken": {"type": "token", "description": "A def without properties."}
  }
}`

func TestParse(t *testing.T) {
	src, err := lexicon.Parse("lexicons/bio/occurrence.json", []byte(sampleLexicon))
	require.NoError(t, err)

	assert.Equal(t, "lexicons/bio/occurrence.json", src.Path)
	assert.Equal(t, "bio.lexicons.occurrence", src.ID)

	// The token def has no properties and is dropped; groups sort by name.
	require.Len(t, src.Groups, 2)
	assert.Equal(t, "location", src.Groups[0].Name)
	assert.Equal(t, "main", src.Groups[1].Name)

	main := src.Groups[1]
	assert.Equal(t, "A biodiversity occurrence record.", main.Description)
	require.Len(t, main.Fields, 4)
	assert.True(t, main.Fields["eventDate"].Required)
	assert.False(t, main.Fields["notes"].Required)
	assert.Equal(t, "main", main.Fields["notes"].Group)

	location := src.Groups[0]
	assert.True(t, location.Fields["decimalLatitude"].Required)
	assert.False(t, location.Fields["decimalLongitude"].Required)
}

func TestParse_InvalidDocument(t *testing.T) {
	_, err := lexicon.Parse("bad.json", []byte(`{"defs": [1, 2]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestSource_Defines(t *testing.T) {
	src, err := lexicon.Parse("occurrence.json", []byte(sampleLexicon))
	require.NoError(t, err)

	assert.True(t, src.Defines("eventDate"))
	assert.True(t, src.Defines("decimalLongitude"))
	assert.False(t, src.Defines("basisOfRecord"))
}

func TestTypeLabel(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name string
		prop lexicon.Property
		want string
	}{
		{"primitive", lexicon.Property{Type: "string"}, "string"},
		{"format refinement", lexicon.Property{Type: "string", Format: "datetime"}, "datetime"},
		{"local ref", lexicon.Property{Type: "ref", Ref: "#location"}, "#location"},
		{"external ref", lexicon.Property{Type: "ref", Ref: "com.example.embed.image"}, "image"},
		{"bare ref", lexicon.Property{Type: "ref", Ref: "somewhere"}, "ref"},
		{"array of primitive", lexicon.Property{Type: "array", Items: &lexicon.Property{Type: "string"}}, "string[]"},
		{"array of local ref", lexicon.Property{Type: "array", Items: &lexicon.Property{Type: "ref", Ref: "#img"}}, "#img[]"},
		{"array of external ref", lexicon.Property{Type: "array", Items: &lexicon.Property{Type: "ref", Ref: "com.example.embed.image"}}, "image[]"},
		{"array without items", lexicon.Property{Type: "array"}, "array"},
		{"int with bounds keeps type", lexicon.Property{Type: "integer", MaxLength: intp(10)}, "integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.TypeLabel())
		})
	}
}

func TestConstraintsLabel(t *testing.T) {
	intp := func(n int) *int { return &n }
	floatp := func(f float64) *float64 { return &f }

	tests := []struct {
		name string
		prop lexicon.Property
		want string
	}{
		{"none", lexicon.Property{Type: "string"}, ""},
		{"max length", lexicon.Property{MaxLength: intp(3000)}, "max 3000"},
		{"numeric bounds", lexicon.Property{Minimum: floatp(-90), Maximum: floatp(90)}, "min -90, max 90"},
		{"default", lexicon.Property{Default: "HumanObservation"}, "default: HumanObservation"},
		{"short enum", lexicon.Property{KnownValues: []string{"a", "b"}}, "a | b"},
		{"long enum", lexicon.Property{KnownValues: []string{"a", "b", "c", "d", "e"}}, "5 values"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.ConstraintsLabel())
		})
	}
}

func TestFlatten_LaterWins(t *testing.T) {
	first, err := lexicon.Parse("a.json", []byte(`{"defs": {"main": {"properties": {"createdAt": {"type": "string", "format": "datetime"}}}}}`))
	require.NoError(t, err)
	second, err := lexicon.Parse("b.json", []byte(`{"defs": {"other": {"properties": {"createdAt": {"type": "string"}}}}}`))
	require.NoError(t, err)

	flat := lexicon.Flatten([]*lexicon.Source{first, second})

	require.Len(t, flat, 1)
	assert.Equal(t, "other", flat["createdAt"].Group, "the later source must overwrite")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "bio", "lexicons")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "occurrence.json"), []byte(sampleLexicon), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "identification.json"),
		[]byte(`{"id": "bio.lexicons.identification", "defs": {"main": {"properties": {"comment": {"type": "string"}}}}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a lexicon"), 0o644))

	sources, err := lexicon.LoadDir(dir)
	require.NoError(t, err)

	require.Len(t, sources, 2)
	assert.Equal(t, "bio/lexicons/identification.json", sources[0].Path)
	assert.Equal(t, "bio/lexicons/occurrence.json", sources[1].Path)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := lexicon.LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
