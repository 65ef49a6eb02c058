// SPDX-License-Identifier: MIT

// Package dataset: Record construction and typed observable access.

package dataset

import "fmt"

// Record is the immutable view over one Configuration that the assembly and
// error-analysis passes consume. Exactly the observables whose keys resolved
// at construction contribute rows; all four are independent booleans, any
// subset may be active, including none.
type Record struct {
	cfg *Configuration

	// Resolved keys, original spelling as stored; "" means absent.
	energyKey     string
	forceKey      string
	virialKey     string
	siteEnergyKey string
	maskKey       string

	weights Weights
	eRef    float64
	group   string
}

// NewRecord derives a Record from cfg.
//
// Resolution: each requested key (see options.go defaults) is scanned
// case-insensitively against cfg's key set; the first match in insertion
// order becomes the resolved key, no match leaves the observable absent.
// Misses are silent by design.
//
// Weights: start from the table's "default" entry if present, else
// DefaultWeights; then, if cfg carries the group key and its value matches a
// table entry (both case-insensitive), that entry overrides.
//
// Reference energy: 0 without a reference model, else the model's energy on
// cfg. A reference evaluation failure is the only construction error; it is
// a capability failure and propagates.
func NewRecord(cfg *Configuration, opts ...Option) (*Record, error) {
	if cfg == nil {
		return nil, fmt.Errorf("NewRecord: %w", ErrNilConfiguration)
	}
	o := gatherOptions(opts...)

	r := &Record{
		cfg:           cfg,
		energyKey:     resolveRequested(cfg, o.energyKey),
		forceKey:      resolveRequested(cfg, o.forceKey),
		virialKey:     resolveRequested(cfg, o.virialKey),
		siteEnergyKey: resolveRequested(cfg, o.siteEnergyKey),
		maskKey:       resolveRequested(cfg, o.maskKey),
		group:         DefaultGroup,
	}

	// Group label: value of the group key when present and string-typed.
	if key, ok := cfg.Resolve(o.groupKey); ok {
		if label, err := cfg.Label(key); err == nil {
			r.group = label
		}
	}

	// Weight fallback chain: table["default"] -> hardcoded; group overrides.
	r.weights = DefaultWeights
	if w, ok := o.table.Lookup(DefaultGroup); ok {
		r.weights = w
	}
	if w, ok := o.table.Lookup(r.group); ok {
		r.weights = w
	}

	if o.ref != nil {
		e, err := o.ref.Energy(cfg)
		if err != nil {
			return nil, fmt.Errorf("NewRecord: reference energy: %w", err)
		}
		r.eRef = e
	}

	return r, nil
}

// resolveRequested maps a requested key name to the stored spelling, or ""
// when the name is disabled (empty) or nothing matches.
func resolveRequested(cfg *Configuration, name string) string {
	if name == "" {
		return ""
	}
	if key, ok := cfg.Resolve(name); ok {
		return key
	}

	return ""
}

// Configuration returns the underlying configuration.
func (r *Record) Configuration() *Configuration { return r.cfg }

// NumAtoms returns the atom count of the underlying configuration.
func (r *Record) NumAtoms() int { return r.cfg.NumAtoms() }

// Weights returns the resolved weight triple.
func (r *Record) Weights() Weights { return r.weights }

// EnergyReference returns the baseline subtracted from energy-like targets.
func (r *Record) EnergyReference() float64 { return r.eRef }

// Group returns the record's group label ("default" when the group key is
// absent).
func (r *Record) Group() string { return r.group }

// HasEnergy reports whether the energy key resolved.
func (r *Record) HasEnergy() bool { return r.energyKey != "" }

// HasForces reports whether the force key resolved.
func (r *Record) HasForces() bool { return r.forceKey != "" }

// HasVirial reports whether the virial key resolved.
func (r *Record) HasVirial() bool { return r.virialKey != "" }

// HasSiteEnergies reports whether the per-atom-energy key resolved.
func (r *Record) HasSiteEnergies() bool { return r.siteEnergyKey != "" }

// Energy returns the stored total energy (no reference subtraction; targets
// apply the baseline). Returns ErrAbsent when the key did not resolve.
func (r *Record) Energy() (float64, error) {
	if !r.HasEnergy() {
		return 0, fmt.Errorf("Record.Energy: %w", ErrAbsent)
	}

	return r.cfg.Float(r.energyKey)
}

// Forces returns the stored per-atom forces as one 3-vector per atom.
// A stored array whose shape is not NumAtoms×3 is a loud ErrShape.
func (r *Record) Forces() ([][3]float64, error) {
	if !r.HasForces() {
		return nil, fmt.Errorf("Record.Forces: %w", ErrAbsent)
	}
	rows, err := r.cfg.FloatRows(r.forceKey)
	if err != nil {
		return nil, fmt.Errorf("Record.Forces: %w", err)
	}
	n := r.NumAtoms()
	if len(rows) != n {
		return nil, fmt.Errorf("Record.Forces: %d rows for %d atoms: %w", len(rows), n, ErrShape)
	}
	out := make([][3]float64, n)
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("Record.Forces: row %d has %d components: %w", i, len(row), ErrShape)
		}
		out[i] = [3]float64{row[0], row[1], row[2]}
	}

	return out, nil
}

// Virial returns the stored virial as a full 3×3 tensor, normalizing the
// known storage variants (see virial.go). Returns ErrAbsent when the key
// did not resolve, ErrShape for any unrecognized storage.
func (r *Record) Virial() ([3][3]float64, error) {
	if !r.HasVirial() {
		return [3][3]float64{}, fmt.Errorf("Record.Virial: %w", ErrAbsent)
	}
	v, _ := r.cfg.InfoValue(r.virialKey)

	return virialTensor(v)
}

// SiteEnergies returns the stored per-atom energies, one value per atom.
func (r *Record) SiteEnergies() ([]float64, error) {
	if !r.HasSiteEnergies() {
		return nil, fmt.Errorf("Record.SiteEnergies: %w", ErrAbsent)
	}
	es, err := r.cfg.Floats(r.siteEnergyKey)
	if err != nil {
		return nil, fmt.Errorf("Record.SiteEnergies: %w", err)
	}
	if len(es) != r.NumAtoms() {
		return nil, fmt.Errorf("Record.SiteEnergies: %d values for %d atoms: %w",
			len(es), r.NumAtoms(), ErrShape)
	}

	return es, nil
}
