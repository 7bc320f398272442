package company

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]any
		want Record
	}{
		{
			name: "canonical keys",
			obj: map[string]any{
				"name":        "BioCo",
				"secteur":     "Bio Tech",
				"description": "diagnostics",
				"website":     "https://bioco.example",
			},
			want: Record{Secteur: "Bio Tech", Name: "BioCo", Description: "diagnostics", Website: "https://bioco.example"},
		},
		{
			name: "english and alternate keys",
			obj: map[string]any{
				"Title":    "AgriSoft",
				"Category": "AgriTech",
				"Desc":     "farm software",
				"Site":     "agrisoft.example",
			},
			want: Record{Secteur: "AgriTech", Name: "AgriSoft", Description: "farm software", Website: "agrisoft.example"},
		},
		{
			name: "french keys",
			obj: map[string]any{
				"nom":       "Santé Plus",
				"categorie": "e-santé",
				"resume":    "télémédecine",
			},
			want: Record{Secteur: "e-santé", Name: "Santé Plus", Description: "télémédecine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := Normalize(tt.obj)
			require.True(t, ok)
			assert.Equal(t, tt.want.Name, rec.Name)
			assert.Equal(t, tt.want.Secteur, rec.Secteur)
			assert.Equal(t, tt.want.Description, rec.Description)
			assert.Equal(t, tt.want.Website, rec.Website)
			assert.NotEmpty(t, rec.Raw)

			// Raw must round-trip back to the original object
			var back map[string]any
			require.NoError(t, json.Unmarshal([]byte(rec.Raw), &back))
			assert.Equal(t, tt.obj, back)
		})
	}
}

func TestNormalizeMissingName(t *testing.T) {
	rec, ok := Normalize(map[string]any{
		"secteur":     "FinTech",
		"description": "payments",
	})
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestFindList(t *testing.T) {
	payload := `{
		"status": "ok",
		"data": {
			"page": 1,
			"items": [
				{"name": "BioCo", "secteur": "Bio Tech"},
				{"name": "AgriSoft", "secteur": "AgriTech"}
			]
		}
	}`

	var v any
	require.NoError(t, json.Unmarshal([]byte(payload), &v))

	list := FindList(v)
	require.Len(t, list, 2)
	assert.Equal(t, "BioCo", StringValue(list[0]["name"]))
	assert.Equal(t, "AgriTech", StringValue(list[1]["secteur"]))
}

func TestFindListIgnoresScalarLists(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"tags": ["a", "b"], "count": 2}`), &v))
	assert.Nil(t, FindList(v))
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"  hello ", "hello"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
		{true, "true"},
		{nil, ""},
		{map[string]any{"nested": 1}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StringValue(tt.in))
	}
}
