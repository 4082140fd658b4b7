package babynames

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ColumnDoc documents one column of a bundled dataset.
type ColumnDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Doc  string `yaml:"doc"`
}

// DatasetDoc is the static human-readable documentation for one dataset.
// Docs are metadata keyed by dataset name; they never touch the table data.
type DatasetDoc struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Source      string      `yaml:"source,omitempty"`
	Columns     []ColumnDoc `yaml:"columns"`
}

// Catalog parses the embedded dataset documentation, keyed by dataset name.
func Catalog() (map[string]DatasetDoc, error) {
	var c map[string]DatasetDoc
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return c, nil
}
