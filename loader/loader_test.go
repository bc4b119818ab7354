package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker-search/catalog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuiltin(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, 72, cat.Len())
	assert.Equal(t, "AAPL", cat.All()[0].Symbol)

	inst, ok := cat.LookupAlias("coca cola")
	require.True(t, ok)
	assert.Equal(t, "KO", inst.Symbol)

	inst, ok = cat.BySymbol("MCD")
	require.True(t, ok)
	assert.Equal(t, "McDonald's Corporation", inst.Name)
}

func TestLoadInstruments(t *testing.T) {
	content := `Symbol,Name,Sector
AAPL,Apple Inc.,Technology
JPM,"JPMorgan Chase & Co.",Banking`
	path := writeFile(t, t.TempDir(), "instruments.csv", content)

	instruments, err := LoadInstruments(path)
	require.NoError(t, err)
	require.Len(t, instruments, 2)
	assert.Equal(t, "AAPL", instruments[0].Symbol)
	assert.Equal(t, "JPMorgan Chase & Co.", instruments[1].Name)
	assert.Equal(t, "Banking", instruments[1].Sector)
}

func TestLoadInstrumentsWithoutHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "instruments.csv", "TSLA,Tesla Inc.,Automotive\n")

	instruments, err := LoadInstruments(path)
	require.NoError(t, err)
	require.Len(t, instruments, 1)
	assert.Equal(t, "TSLA", instruments[0].Symbol)
}

func TestLoadInstrumentsShortRow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "instruments.csv", "TSLA,Tesla Inc.\n")

	_, err := LoadInstruments(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestLoadAliases(t *testing.T) {
	content := `{
		"apple": "AAPL",
		"coca cola": "KO"
	}`
	path := writeFile(t, t.TempDir(), "aliases.json", content)

	aliases, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"apple": "AAPL", "coca cola": "KO"}, aliases)
}

func TestLoadCatalogCSVWithAliases(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "instruments.csv", "Symbol,Name,Sector\nKO,Coca-Cola Company,Beverages\n")
	writeFile(t, dir, AliasFile, `{"Coca Cola": "KO"}`)

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	inst, ok := cat.LookupAlias("coca cola")
	require.True(t, ok)
	assert.Equal(t, "KO", inst.Symbol)
}

func TestLoadCatalogCSVWithoutAliases(t *testing.T) {
	path := writeFile(t, t.TempDir(), "instruments.csv", "KO,Coca-Cola Company,Beverages\n")

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
	assert.Empty(t, cat.Aliases())
}

func TestLoadCatalogReportsConfigError(t *testing.T) {
	content := `instruments:
  - {symbol: AAPL, name: Apple Inc., sector: Technology}
aliases:
  apple: AAPL
  tesla: TSLA
`
	path := writeFile(t, t.TempDir(), "catalog.yaml", content)

	cat, err := LoadCatalog(path)
	assert.Nil(t, cat)
	require.ErrorIs(t, err, catalog.ErrConfig)
}

func TestLoadCatalogUnsupportedExtension(t *testing.T) {
	_, err := LoadCatalog("catalog.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestYAMLRoundTrip(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCatalogYAML(&buf, cat))

	reloaded, err := DecodeCatalogYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, cat.All(), reloaded.All())
	assert.Equal(t, cat.Aliases(), reloaded.Aliases())
}

func TestCSVRoundTrip(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)

	dir := t.TempDir()
	var csvBuf, aliasBuf bytes.Buffer
	require.NoError(t, WriteInstrumentsCSV(&csvBuf, cat))
	require.NoError(t, WriteAliasesJSON(&aliasBuf, cat))
	path := writeFile(t, dir, "instruments.csv", csvBuf.String())
	writeFile(t, dir, AliasFile, aliasBuf.String())

	reloaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, cat.All(), reloaded.All())
	assert.Equal(t, cat.Aliases(), reloaded.Aliases())
}
