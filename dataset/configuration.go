// SPDX-License-Identifier: MIT

// Package dataset: Configuration and its free-form data store.
// The store keeps entries in insertion order with the original key spelling
// and a lower-cased shadow computed once at ingestion, so case-insensitive
// resolution never re-folds keys on the hot path.

package dataset

import (
	"fmt"
	"strings"
)

// Configuration is one atomic structure with an attached free-form
// key-value store of auxiliary data (reference energy, forces, virial,
// per-atom energies, group label, mask). It is owned by the caller; the
// fitting core only reads it.
type Configuration struct {
	// Symbols holds one chemical symbol per atom.
	Symbols []string
	// Positions holds one Cartesian position per atom, same order as Symbols.
	Positions [][3]float64
	// Cell is the periodic cell, one lattice vector per row.
	Cell [3][3]float64
	// PBC flags periodicity along each lattice vector.
	PBC [3]bool

	info []infoEntry
}

// infoEntry is one stored key-value pair. lower is the fold of key,
// computed once at ingestion.
type infoEntry struct {
	key   string
	lower string
	value any
}

// NewConfiguration builds a Configuration over the given atoms.
// Returns ErrShape when symbols and positions disagree in length.
func NewConfiguration(symbols []string, positions [][3]float64) (*Configuration, error) {
	if len(symbols) != len(positions) {
		return nil, fmt.Errorf("NewConfiguration: %d symbols vs %d positions: %w",
			len(symbols), len(positions), ErrShape)
	}

	return &Configuration{Symbols: symbols, Positions: positions}, nil
}

// NumAtoms returns the number of atoms in the configuration.
func (c *Configuration) NumAtoms() int { return len(c.Positions) }

// SetInfo stores value under key, normalizing it to one of the canonical
// store types: float64, string, bool, []float64, [][]float64, []bool.
// An exact-spelling duplicate overwrites in place; a key differing only in
// case appends a new entry, and resolution keeps honoring the first one
// (first-match-wins).
// Returns ErrValueType for values outside the canonical set.
func (c *Configuration) SetInfo(key string, value any) error {
	v, err := normalizeInfoValue(value)
	if err != nil {
		return fmt.Errorf("SetInfo(%q): %w", key, err)
	}
	for i := range c.info {
		if c.info[i].key == key {
			c.info[i].value = v

			return nil
		}
	}
	c.info = append(c.info, infoEntry{key: key, lower: strings.ToLower(key), value: v})

	return nil
}

// InfoKeys returns the stored keys in insertion order, original spelling.
func (c *Configuration) InfoKeys() []string {
	keys := make([]string, len(c.info))
	for i := range c.info {
		keys[i] = c.info[i].key
	}

	return keys
}

// Resolve performs the case-insensitive first-match scan for name and
// returns the stored key's original spelling. ok is false when nothing
// matches; that is a resolution miss, not an error.
func (c *Configuration) Resolve(name string) (key string, ok bool) {
	fold := strings.ToLower(name)
	for i := range c.info {
		if c.info[i].lower == fold {
			return c.info[i].key, true
		}
	}

	return "", false
}

// InfoValue returns the value stored under the exact key spelling.
func (c *Configuration) InfoValue(key string) (any, bool) {
	for i := range c.info {
		if c.info[i].key == key {
			return c.info[i].value, true
		}
	}

	return nil, false
}

// Float returns the scalar stored under the exact key.
func (c *Configuration) Float(key string) (float64, error) {
	v, ok := c.InfoValue(key)
	if !ok {
		return 0, fmt.Errorf("Float(%q): %w", key, ErrAbsent)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("Float(%q): got %T: %w", key, v, ErrValueType)
	}

	return f, nil
}

// Label returns the string stored under the exact key.
func (c *Configuration) Label(key string) (string, error) {
	v, ok := c.InfoValue(key)
	if !ok {
		return "", fmt.Errorf("Label(%q): %w", key, ErrAbsent)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("Label(%q): got %T: %w", key, v, ErrValueType)
	}

	return s, nil
}

// Floats returns the numeric vector stored under the exact key.
func (c *Configuration) Floats(key string) ([]float64, error) {
	v, ok := c.InfoValue(key)
	if !ok {
		return nil, fmt.Errorf("Floats(%q): %w", key, ErrAbsent)
	}
	fs, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("Floats(%q): got %T: %w", key, v, ErrValueType)
	}

	return fs, nil
}

// FloatRows returns the nested numeric array stored under the exact key.
func (c *Configuration) FloatRows(key string) ([][]float64, error) {
	v, ok := c.InfoValue(key)
	if !ok {
		return nil, fmt.Errorf("FloatRows(%q): %w", key, ErrAbsent)
	}
	rows, ok := v.([][]float64)
	if !ok {
		return nil, fmt.Errorf("FloatRows(%q): got %T: %w", key, v, ErrValueType)
	}

	return rows, nil
}

// normalizeInfoValue coerces a caller-supplied value into the canonical
// store types. Numeric scalars and slices collapse to float64 forms so the
// typed accessors never branch on int/float spellings again.
func normalizeInfoValue(value any) (any, error) {
	switch v := value.(type) {
	case float64, string, bool, []float64, [][]float64, []bool:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}

		return out, nil
	case [][3]float64:
		out := make([][]float64, len(v))
		for i, row := range v {
			out[i] = []float64{row[0], row[1], row[2]}
		}

		return out, nil
	case [3][3]float64:
		out := make([][]float64, 3)
		for i, row := range v {
			out[i] = []float64{row[0], row[1], row[2]}
		}

		return out, nil
	case []any:
		return normalizeInfoSlice(v)
	default:
		return nil, fmt.Errorf("%T: %w", value, ErrValueType)
	}
}

// normalizeInfoSlice resolves a heterogeneous []any (the shape generic
// decoders produce) into []float64, []bool or [][]float64.
func normalizeInfoSlice(v []any) (any, error) {
	if len(v) == 0 {
		return []float64{}, nil
	}
	switch v[0].(type) {
	case bool:
		out := make([]bool, len(v))
		for i, e := range v {
			b, ok := e.(bool)
			if !ok {
				return nil, fmt.Errorf("mixed slice at %d: %w", i, ErrValueType)
			}
			out[i] = b
		}

		return out, nil
	case []any:
		out := make([][]float64, len(v))
		for i, e := range v {
			inner, ok := e.([]any)
			if !ok {
				return nil, fmt.Errorf("mixed slice at %d: %w", i, ErrValueType)
			}
			row := make([]float64, len(inner))
			for j, x := range inner {
				f, err := asFloat(x)
				if err != nil {
					return nil, err
				}
				row[j] = f
			}
			out[i] = row
		}

		return out, nil
	default:
		out := make([]float64, len(v))
		for i, e := range v {
			f, err := asFloat(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}

		return out, nil
	}
}

// asFloat accepts the numeric scalar spellings generic decoders emit.
func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%T: %w", v, ErrValueType)
	}
}
