package store

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"sitemap-urls/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"https://www.krasanamiru.cz/produkt/serum/":       "www.krasanamiru.cz_produkt_serum_.json",
		"https://example.com/p?id=1&x=2":                  "example.com_p_id_1_x_2.json",
		"https://www.krasanamiru.cz/produkt/pleťové-sérum": "www.krasanamiru.cz_produkt_pleťové-sérum.json",
		"no-scheme/page":                                  "no-scheme_page.json",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in, ".json"), in)
	}
}

func TestFileStore_SaveProduct(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pages")
	s := NewFileStore(dir)

	p := &domain.Product{
		URL:         "https://example.com/produkt/serum/",
		Category:    []string{"Péče o pleť", "Séra"},
		Volume:      float(30),
		Description: "Sérum <pro> pleť & tělo",
		Price:       float(459),
	}

	require.False(t, s.Has(p.URL))
	require.NoError(t, s.SaveProduct(p))
	assert.True(t, s.Has(p.URL))

	data, err := os.ReadFile(filepath.Join(dir, "example.com_produkt_serum_.json"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"url\": ")
	assert.Contains(t, string(data), "Sérum <pro> pleť & tělo", "no HTML escaping")
	assert.Contains(t, string(data), `"purpose": null`)

	var decoded domain.Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *p, decoded)
}

func TestFileStore_SaveMarkdown(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.SaveMarkdown("https://example.com/a", "# Title"))

	data, err := os.ReadFile(filepath.Join(dir, "example.com_a.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Title", string(data))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "df.csv")
	products := []*domain.Product{
		{URL: "https://example.com/a", Category: []string{"Séra"}, Volume: float(30), Price: float(459.5), Description: "line, with comma"},
		{URL: "https://example.com/b"},
	}

	require.NoError(t, WriteCSV(path, products))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"0", "https://example.com/a", `["Séra"]`, "30", "", "line, with comma", "", "", "", "459.5"}, rows[1])
	assert.Equal(t, []string{"1", "https://example.com/b", "", "", "", "", "", "", "", ""}, rows[2])
}
