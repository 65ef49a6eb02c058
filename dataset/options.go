// SPDX-License-Identifier: MIT

// Package dataset: functional configuration for record construction.
// This file defines:
//   - Option / recordOptions (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal) that resolves setters over defaults.
//
// Design goals:
//   - Deterministic behavior: no global state; the weight table is threaded
//     through explicitly, never read from a package variable.
//   - Every flag impacts behavior and is covered by tests.

package dataset

// Default requested key names. A requested name is what the record asks the
// configuration for; resolution against stored keys is case-insensitive.
const (
	// DefaultEnergyKey is the requested name for the total-energy observable.
	DefaultEnergyKey = "energy"

	// DefaultForceKey is the requested name for per-atom forces.
	DefaultForceKey = "force"

	// DefaultVirialKey is the requested name for the virial tensor.
	DefaultVirialKey = "virial"

	// DefaultSiteEnergyKey is the requested name for per-atom site energies.
	DefaultSiteEnergyKey = "site_energy"

	// DefaultMaskKey is the requested name for the per-atom selection mask.
	DefaultMaskKey = "mask"

	// DefaultGroupKey is the configuration key whose value buckets records
	// for grouped weighting and grouped error statistics.
	DefaultGroupKey = "config_type"

	// DefaultGroup is the group label of records whose group key is absent,
	// and the distinguished weight-table entry consulted as fallback.
	DefaultGroup = "default"
)

// EnergyModel is the reference-energy capability: a baseline energy
// subtracted from all energy-like targets. model.Evaluator satisfies it.
type EnergyModel interface {
	Energy(c *Configuration) (float64, error)
}

// Option mutates record construction options. Safe to apply repeatedly.
type Option func(*recordOptions)

// recordOptions stores the effective configuration after applying setters.
// Unexported so records cannot be reconfigured after construction.
type recordOptions struct {
	energyKey     string
	forceKey      string
	virialKey     string
	siteEnergyKey string
	maskKey       string
	groupKey      string
	table         WeightTable
	ref           EnergyModel
}

// WithEnergyKey sets the requested energy key. An empty name disables the
// energy observable for this record regardless of the data present.
func WithEnergyKey(name string) Option {
	return func(o *recordOptions) { o.energyKey = name }
}

// WithForceKey sets the requested force key. Empty disables forces.
func WithForceKey(name string) Option {
	return func(o *recordOptions) { o.forceKey = name }
}

// WithVirialKey sets the requested virial key. Empty disables the virial.
func WithVirialKey(name string) Option {
	return func(o *recordOptions) { o.virialKey = name }
}

// WithSiteEnergyKey sets the requested per-atom-energy key. Empty disables
// site energies.
func WithSiteEnergyKey(name string) Option {
	return func(o *recordOptions) { o.siteEnergyKey = name }
}

// WithMaskKey sets the requested mask key. Empty means no stored mask is
// consulted and every atom is selected.
func WithMaskKey(name string) Option {
	return func(o *recordOptions) { o.maskKey = name }
}

// WithGroupKey sets the configuration key used for group bucketing.
func WithGroupKey(name string) Option {
	return func(o *recordOptions) { o.groupKey = name }
}

// WithWeightTable supplies the per-group weight table. A nil table leaves
// every record on DefaultWeights.
func WithWeightTable(t WeightTable) Option {
	return func(o *recordOptions) { o.table = t }
}

// WithReference supplies the reference-energy model whose prediction is
// subtracted from energy-like targets. Without it the baseline is zero.
func WithReference(m EnergyModel) Option {
	return func(o *recordOptions) { o.ref = m }
}

// gatherOptions applies setters over the documented defaults.
// Last-writer-wins; stable for a given setter sequence.
func gatherOptions(opts ...Option) recordOptions {
	o := recordOptions{
		energyKey:     DefaultEnergyKey,
		forceKey:      DefaultForceKey,
		virialKey:     DefaultVirialKey,
		siteEnergyKey: DefaultSiteEnergyKey,
		maskKey:       DefaultMaskKey,
		groupKey:      DefaultGroupKey,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}
