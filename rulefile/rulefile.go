// Package rulefile loads a YAML ruleset document into []wfc.Rule. Rule
// file loading and parsing is an external collaborator — pkg/wfc never
// imports this package — but a runnable generator needs some way to load
// rules from disk, so this is that way. It only reads rule files; it does
// not write them.
package rulefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// Document is the on-disk YAML shape: a flat list of rules, each a 3x3
// row-major tile grid (center in the middle) plus a weight.
//
// tiles:
//   - grid: [0, 1, 0, 1, 0, 1, 0, 1, 0]
//     weight: 1
type Document struct {
	Tiles []TileRule `yaml:"tiles"`
}

// TileRule is one rule entry in a Document.
type TileRule struct {
	Grid   [9]uint32 `yaml:"grid"`
	Weight uint32    `yaml:"weight"`
}

// Load reads and parses a rule file at path into a []wfc.Rule suitable for
// wfc.NewWorld.
func Load(path string) ([]wfc.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulefile: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML rule document from data.
func Parse(data []byte) ([]wfc.Rule, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rulefile: parsing document: %w", err)
	}

	rules := make([]wfc.Rule, 0, len(doc.Tiles))
	for i, tr := range doc.Tiles {
		if tr.Weight == 0 {
			return nil, fmt.Errorf("rulefile: rule %d: weight must be > 0", i)
		}
		rules = append(rules, wfc.Rule{Tiles: tr.Grid, Weight: tr.Weight})
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rulefile: no rules found")
	}
	return rules, nil
}
