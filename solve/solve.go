// SPDX-License-Identifier: MIT

package solve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aceforge/acefit/matrix"
)

var (
	// ErrAlignment indicates that the design matrix, target vector and
	// weight vector disagree in row count.
	ErrAlignment = errors.New("solve: system rows are not aligned")

	// ErrEmptySystem indicates a system with no observation rows.
	ErrEmptySystem = errors.New("solve: system has no rows")

	// ErrUnderdetermined indicates fewer rows than columns without a ridge
	// term to regularize the deficiency.
	ErrUnderdetermined = errors.New("solve: fewer observations than basis functions")

	// ErrFactorization indicates that the QR solve failed (rank-deficient
	// system within working precision).
	ErrFactorization = errors.New("solve: factorization failed")
)

// DefaultRidge disables Tikhonov regularization.
const DefaultRidge = 0.0

const panicRidgeInvalid = "solve: WithRidge: lambda must be finite, non-negative"

// Option mutates solver options.
type Option func(*options)

type options struct {
	ridge float64
}

// WithRidge adds Tikhonov regularization with strength lambda: √λ·I rows
// appended to the scaled system, targets zero. Panics on nonsensical
// values (programmer error).
func WithRidge(lambda float64) Option {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		panic(panicRidgeInvalid)
	}

	return func(o *options) { o.ridge = lambda }
}

// LeastSquares solves min_x ‖diag(w)·(A·x − y)‖₂ (plus the optional ridge
// term) and returns the fitted coefficient vector.
//
// Implementation:
//   - Stage 1: validate alignment (A.Rows == len(y) == len(w), rows > 0)
//     and determinacy (rows ≥ cols unless ridge > 0).
//   - Stage 2: build the row-scaled copy; A is never mutated.
//   - Stage 3: factorize with Householder QR and back-substitute.
//
// Weights multiply rows as given — they are the weight-vector entries the
// assembler produced, not their squares.
func LeastSquares(a *matrix.Dense, y, w []float64, opts ...Option) ([]float64, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("LeastSquares: %w", err)
	}
	rows, cols := a.Rows(), a.Cols()
	if rows == 0 {
		return nil, fmt.Errorf("LeastSquares: %w", ErrEmptySystem)
	}
	if len(y) != rows || len(w) != rows {
		return nil, fmt.Errorf("LeastSquares: %d rows, %d targets, %d weights: %w",
			rows, len(y), len(w), ErrAlignment)
	}

	o := options{ridge: DefaultRidge}
	for _, set := range opts {
		set(&o)
	}
	if rows < cols && o.ridge == 0 {
		return nil, fmt.Errorf("LeastSquares: %d < %d: %w", rows, cols, ErrUnderdetermined)
	}

	// Row-scaled copy, with ridge rows appended when requested.
	extra := 0
	if o.ridge > 0 {
		extra = cols
	}
	scaled := mat.NewDense(rows+extra, cols, nil)
	rhs := mat.NewVecDense(rows+extra, nil)
	raw := a.Raw()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			scaled.Set(i, j, w[i]*raw[i*cols+j])
		}
		rhs.SetVec(i, w[i]*y[i])
	}
	if extra > 0 {
		sqrtLambda := math.Sqrt(o.ridge)
		for j := 0; j < cols; j++ {
			scaled.Set(rows+j, j, sqrtLambda)
		}
	}

	var qr mat.QR
	qr.Factorize(scaled)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, rhs); err != nil {
		return nil, fmt.Errorf("LeastSquares: %v: %w", err, ErrFactorization)
	}

	coeffs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		coeffs[j] = sol.AtVec(j)
	}

	return coeffs, nil
}
