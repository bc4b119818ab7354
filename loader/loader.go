package loader

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"ticker-search/catalog"
	"ticker-search/models"
)

//go:embed catalog.yaml
var builtinYAML []byte

// AliasFile is the alias mapping expected next to a CSV instrument file.
const AliasFile = "aliases.json"

// Document is the persisted form of a catalog.
type Document struct {
	Instruments []models.Instrument `yaml:"instruments"`
	Aliases     map[string]string   `yaml:"aliases"`
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*catalog.Catalog, error) {
	return DecodeCatalogYAML(bytes.NewReader(builtinYAML))
}

// LoadCatalog picks the format from the file extension. A CSV instrument file
// reads its aliases from aliases.json in the same directory, if present.
func LoadCatalog(filePath string) (*catalog.Catalog, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return LoadCatalogYAML(filePath)
	case ".csv":
		instruments, err := LoadInstruments(filePath)
		if err != nil {
			return nil, err
		}
		aliases, err := LoadAliases(filepath.Join(filepath.Dir(filePath), AliasFile))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return catalog.New(instruments, aliases)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filePath)
	}
}

func LoadCatalogYAML(filePath string) (*catalog.Catalog, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeCatalogYAML(f)
}

func DecodeCatalogYAML(r io.Reader) (*catalog.Catalog, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog.New(doc.Instruments, doc.Aliases)
}

// LoadInstruments reads Symbol,Name,Sector rows. The header row is optional.
func LoadInstruments(filePath string) ([]models.Instrument, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadInstruments(f)
}

func ReadInstruments(r io.Reader) ([]models.Instrument, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	// Simple check: if the first cell is "Symbol", skip it
	if len(records) > 0 && len(records[0]) > 0 && strings.EqualFold(records[0][0], "Symbol") {
		records = records[1:]
	}

	instruments := make([]models.Instrument, 0, len(records))
	for i, record := range records {
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 fields, got %d", i+1, len(record))
		}
		instruments = append(instruments, models.Instrument{
			Symbol: record[0],
			Name:   record[1],
			Sector: record[2],
		})
	}

	return instruments, nil
}

func LoadAliases(filePath string) (map[string]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var aliases map[string]string
	if err := json.NewDecoder(file).Decode(&aliases); err != nil {
		return nil, fmt.Errorf("decode aliases: %w", err)
	}

	return aliases, nil
}

func WriteCatalogYAML(w io.Writer, cat *catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Instruments: cat.All(), Aliases: cat.Aliases()}); err != nil {
		return err
	}
	return enc.Close()
}

func WriteInstrumentsCSV(w io.Writer, cat *catalog.Catalog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Symbol", "Name", "Sector"}); err != nil {
		return err
	}
	for _, inst := range cat.All() {
		if err := cw.Write([]string{inst.Symbol, inst.Name, inst.Sector}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAliasesJSON writes the alias table as an indented JSON object.
func WriteAliasesJSON(w io.Writer, cat *catalog.Catalog) error {
	b, err := json.MarshalIndent(cat.Aliases(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
