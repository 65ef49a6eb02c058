// SPDX-License-Identifier: MIT

// Package dataset: YAML dataset loading.
// A dataset file is a YAML sequence of configuration documents:
//
//	- symbols: [Ti, O, O]
//	  positions: [[0, 0, 0], [1.9, 0, 0], [0, 1.9, 0]]
//	  cell: [[4, 0, 0], [0, 4, 0], [0, 0, 4]]
//	  pbc: [true, true, true]
//	  info:
//	    energy: -123.4
//	    force: [[0.1, 0, 0], [0, 0, 0], [-0.1, 0, 0]]
//	    config_type: rutile
//
// The info mapping is decoded node-by-node so that key order in the file is
// preserved in the store; first-match resolution therefore behaves exactly
// like it does for programmatically built configurations.

package dataset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// configurationDoc mirrors one YAML configuration document.
type configurationDoc struct {
	Symbols   []string    `yaml:"symbols"`
	Positions [][]float64 `yaml:"positions"`
	Cell      [][]float64 `yaml:"cell"`
	PBC       []bool      `yaml:"pbc"`
	Info      yaml.Node   `yaml:"info"`
}

// Load reads a YAML dataset file from path. See Decode.
func Load(path string) ([]*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: %w", err)
	}
	defer f.Close()

	cfgs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load(%s): %w", path, err)
	}

	return cfgs, nil
}

// Decode reads a YAML sequence of configuration documents from r.
// Shape violations (positions not N×3, cell not 3×3, pbc not length 3,
// symbol/position count mismatch) fail loudly with ErrShape.
func Decode(r io.Reader) ([]*Configuration, error) {
	var docs []configurationDoc
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("dataset.Decode: %w", err)
	}

	cfgs := make([]*Configuration, 0, len(docs))
	for i, doc := range docs {
		cfg, err := doc.configuration()
		if err != nil {
			return nil, fmt.Errorf("dataset.Decode: configuration %d: %w", i, err)
		}
		cfgs = append(cfgs, cfg)
	}

	return cfgs, nil
}

// configuration converts one decoded document into a Configuration.
func (d *configurationDoc) configuration() (*Configuration, error) {
	positions := make([][3]float64, len(d.Positions))
	for i, p := range d.Positions {
		if len(p) != 3 {
			return nil, fmt.Errorf("position %d has %d components: %w", i, len(p), ErrShape)
		}
		positions[i] = [3]float64{p[0], p[1], p[2]}
	}

	cfg, err := NewConfiguration(d.Symbols, positions)
	if err != nil {
		return nil, err
	}

	if d.Cell != nil {
		if len(d.Cell) != 3 {
			return nil, fmt.Errorf("cell has %d rows: %w", len(d.Cell), ErrShape)
		}
		for i, row := range d.Cell {
			if len(row) != 3 {
				return nil, fmt.Errorf("cell row %d has %d entries: %w", i, len(row), ErrShape)
			}
			cfg.Cell[i] = [3]float64{row[0], row[1], row[2]}
		}
	}
	if d.PBC != nil {
		if len(d.PBC) != 3 {
			return nil, fmt.Errorf("pbc has %d entries: %w", len(d.PBC), ErrShape)
		}
		copy(cfg.PBC[:], d.PBC)
	}

	if err := d.decodeInfo(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeInfo walks the info mapping in document order and stores each
// value under its original key spelling.
func (d *configurationDoc) decodeInfo(cfg *Configuration) error {
	if d.Info.Kind == 0 || d.Info.Tag == "!!null" {
		return nil
	}
	if d.Info.Kind != yaml.MappingNode {
		return fmt.Errorf("info is not a mapping: %w", ErrValueType)
	}
	// Mapping content alternates key, value nodes.
	for i := 0; i+1 < len(d.Info.Content); i += 2 {
		keyNode, valNode := d.Info.Content[i], d.Info.Content[i+1]
		value, err := decodeInfoNode(valNode)
		if err != nil {
			return fmt.Errorf("info %q: %w", keyNode.Value, err)
		}
		if value == nil {
			continue // null entries carry no observable
		}
		if err := cfg.SetInfo(keyNode.Value, value); err != nil {
			return err
		}
	}

	return nil
}

// decodeInfoNode maps a YAML value node onto the canonical store types.
func decodeInfoNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, fmt.Errorf("%s: %w", n.Value, ErrValueType)
			}

			return f, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("%s: %w", n.Value, ErrValueType)
			}

			return b, nil
		case "!!str":
			return n.Value, nil
		case "!!null":
			return nil, nil
		default:
			return nil, fmt.Errorf("scalar tag %s: %w", n.Tag, ErrValueType)
		}
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return []float64{}, nil
		}
		switch first := n.Content[0]; {
		case first.Kind == yaml.SequenceNode:
			var rows [][]float64
			if err := n.Decode(&rows); err != nil {
				return nil, fmt.Errorf("nested sequence: %w", ErrValueType)
			}

			return rows, nil
		case first.Tag == "!!bool":
			var mask []bool
			if err := n.Decode(&mask); err != nil {
				return nil, fmt.Errorf("bool sequence: %w", ErrValueType)
			}

			return mask, nil
		default:
			var xs []float64
			if err := n.Decode(&xs); err != nil {
				return nil, fmt.Errorf("numeric sequence: %w", ErrValueType)
			}

			return xs, nil
		}
	default:
		return nil, fmt.Errorf("node kind %d: %w", n.Kind, ErrValueType)
	}
}
