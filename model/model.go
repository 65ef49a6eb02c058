// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"

	"github.com/aceforge/acefit/dataset"
)

// ErrCoefficientCount is returned when a linear model's coefficient vector
// and basis disagree in length.
var ErrCoefficientCount = errors.New("model: coefficient count mismatch")

// Evaluator is the basis/model evaluation capability. Implementations are
// assumed synchronous and side-effect-free from the pipeline's perspective;
// a failure from any method aborts the surrounding assembly or error pass.
type Evaluator interface {
	// Energy returns the scalar total energy of the configuration.
	Energy(c *dataset.Configuration) (float64, error)

	// Forces returns one Cartesian 3-vector per atom, in atom order.
	Forces(c *dataset.Configuration) ([][3]float64, error)

	// Virial returns the full 3×3 virial tensor.
	Virial(c *dataset.Configuration) ([3][3]float64, error)

	// SiteEnergy returns the scalar site energy of one atom.
	SiteEnergy(c *dataset.Configuration, atom int) (float64, error)
}

// Basis is a whole basis set: an indexed collection of candidate functions,
// queried one function at a time.
type Basis interface {
	// Len returns the number of basis functions (design-matrix columns).
	Len() int

	// Func returns the i-th basis function.
	Func(i int) Evaluator
}

// Funcs adapts a slice of evaluators into a Basis.
type Funcs []Evaluator

// Len returns the number of basis functions.
func (f Funcs) Len() int { return len(f) }

// Func returns the i-th basis function.
func (f Funcs) Func(i int) Evaluator { return f[i] }

// Linear is a fitted model: the coefficient-weighted sum of its basis
// functions. It satisfies Evaluator, so a freshly solved coefficient vector
// plugs straight into the error aggregator.
type Linear struct {
	basis  Basis
	coeffs []float64
}

// NewLinear binds coefficients to a basis.
// Returns ErrCoefficientCount when lengths disagree.
func NewLinear(basis Basis, coeffs []float64) (*Linear, error) {
	if basis.Len() != len(coeffs) {
		return nil, fmt.Errorf("NewLinear: %d coefficients for %d basis functions: %w",
			len(coeffs), basis.Len(), ErrCoefficientCount)
	}

	return &Linear{basis: basis, coeffs: coeffs}, nil
}

// Coefficients returns the fitted coefficient vector (not a copy).
func (l *Linear) Coefficients() []float64 { return l.coeffs }

// Energy returns Σ_i c_i · E_i(cfg).
func (l *Linear) Energy(c *dataset.Configuration) (float64, error) {
	var sum float64
	for i, ci := range l.coeffs {
		e, err := l.basis.Func(i).Energy(c)
		if err != nil {
			return 0, fmt.Errorf("Linear.Energy: basis %d: %w", i, err)
		}
		sum += ci * e
	}

	return sum, nil
}

// Forces returns Σ_i c_i · F_i(cfg), componentwise per atom.
func (l *Linear) Forces(c *dataset.Configuration) ([][3]float64, error) {
	sum := make([][3]float64, c.NumAtoms())
	for i, ci := range l.coeffs {
		fs, err := l.basis.Func(i).Forces(c)
		if err != nil {
			return nil, fmt.Errorf("Linear.Forces: basis %d: %w", i, err)
		}
		if len(fs) != len(sum) {
			return nil, fmt.Errorf("Linear.Forces: basis %d returned %d atoms, want %d: %w",
				i, len(fs), len(sum), dataset.ErrShape)
		}
		for a := range fs {
			sum[a][0] += ci * fs[a][0]
			sum[a][1] += ci * fs[a][1]
			sum[a][2] += ci * fs[a][2]
		}
	}

	return sum, nil
}

// Virial returns Σ_i c_i · V_i(cfg).
func (l *Linear) Virial(c *dataset.Configuration) ([3][3]float64, error) {
	var sum [3][3]float64
	for i, ci := range l.coeffs {
		v, err := l.basis.Func(i).Virial(c)
		if err != nil {
			return sum, fmt.Errorf("Linear.Virial: basis %d: %w", i, err)
		}
		for p := 0; p < 3; p++ {
			for q := 0; q < 3; q++ {
				sum[p][q] += ci * v[p][q]
			}
		}
	}

	return sum, nil
}

// SiteEnergy returns Σ_i c_i · ε_i(cfg, atom).
func (l *Linear) SiteEnergy(c *dataset.Configuration, atom int) (float64, error) {
	var sum float64
	for i, ci := range l.coeffs {
		e, err := l.basis.Func(i).SiteEnergy(c, atom)
		if err != nil {
			return 0, fmt.Errorf("Linear.SiteEnergy: basis %d: %w", i, err)
		}
		sum += ci * e
	}

	return sum, nil
}
