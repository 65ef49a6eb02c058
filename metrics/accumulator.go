// SPDX-License-Identifier: MIT

package metrics

import "math"

// Observable enumerates the four observation kinds. A fixed enum instead of
// stringly-typed keys: exhaustive switches are checkable at compile time.
type Observable int

const (
	// Energy is the total-energy observable (errors per atom).
	Energy Observable = iota
	// Forces is the per-atom force observable (errors per Cartesian
	// component, 3N values per configuration).
	Forces
	// Virial is the virial observable (errors per Voigt component,
	// normalized by atom count).
	Virial
	// SiteEnergy is the per-atom-energy observable (one value per masked
	// atom, no further normalization).
	SiteEnergy

	numObservables
)

// Observables lists the kinds in reporting order.
var Observables = [numObservables]Observable{Energy, Forces, Virial, SiteEnergy}

// String returns the conventional short label.
func (o Observable) String() string {
	switch o {
	case Energy:
		return "E"
	case Forces:
		return "F"
	case Virial:
		return "V"
	case SiteEnergy:
		return "PAE"
	default:
		return "?"
	}
}

// Accumulator carries the three merge-friendly sums of one observable in
// one group. The zero value is ready to use.
type Accumulator struct {
	SumAbs float64
	SumSq  float64
	Count  int
}

// Observe folds one deviation into the sums.
func (a *Accumulator) Observe(dev float64) {
	a.SumAbs += math.Abs(dev)
	a.SumSq += dev * dev
	a.Count++
}

// Merge folds another accumulator in. Addition of sums is associative and
// commutative, so partial accumulators reduce in any grouping or order.
func (a *Accumulator) Merge(b Accumulator) {
	a.SumAbs += b.SumAbs
	a.SumSq += b.SumSq
	a.Count += b.Count
}

// MAE finalizes the mean absolute error; zero-count accumulators stay 0.
func (a Accumulator) MAE() float64 {
	if a.Count == 0 {
		return 0
	}

	return a.SumAbs / float64(a.Count)
}

// RMSE finalizes the root-mean-square error; zero-count accumulators stay 0.
func (a Accumulator) RMSE() float64 {
	if a.Count == 0 {
		return 0
	}

	return math.Sqrt(a.SumSq / float64(a.Count))
}
