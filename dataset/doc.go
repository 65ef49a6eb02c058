// Package dataset turns raw atomic configurations into observation records:
// immutable views that know which observables (energy, forces, virial,
// per-atom site energies) a configuration actually carries, how heavily each
// should be weighted, and which atoms a mask selects.
//
// Key resolution against a configuration's free-form data store is
// case-insensitive and first-match-wins, in insertion order. This is
// intentional, not a bug: upstream datasets label the same observable as
// "Energy", "energy" or "ENERGY" depending on the tool that produced them,
// and a record must tolerate all of them. A key that resolves to nothing
// silently marks the observable absent; absence is a steady state, never an
// error.
//
// Records are created once per configuration on entry to the fitting
// pipeline and are read-only thereafter. Every accessor is a pure function
// of the record's construction-time state, so row layouts derived from a
// record are reproducible wherever they are recomputed.
package dataset
