// SPDX-License-Identifier: MIT

// Package matrix: Dense container.
// Dense is the one concrete matrix type in this module: a row-major flat
// buffer sized rows*cols. The assembly pipeline builds it row-block by
// row-block; the solver reads its raw buffer without copying semantics
// beyond an explicit Raw call.

package matrix

import "fmt"

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float64
}

// denseErrorf wraps an underlying sentinel with method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): cols must be positive; rows may be zero, because an
// assembly over records with no active observables legitimately yields an
// empty (0×c) system.
// Stage 2 (Allocate): one flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a Dense from a non-empty slice of equal-length rows.
// Stage 1 (Validate): at least one row, no ragged rows, cols > 0.
// Stage 2 (Copy): rows are copied; the input remains owned by the caller.
// Complexity: O(r*c).
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	d := &Dense{r: len(rows), c: c, data: make([]float64, len(rows)*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d: %w", i, ErrRaggedRows)
		}
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns the i-th row as a slice view into the backing buffer.
// The view MUST NOT be mutated unless the caller owns the matrix; it is a
// window, not a copy. Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c], nil
}

// Clone returns a deep copy of the matrix, independent of the original.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Raw exposes the row-major backing buffer without copying.
// Intended for handing the matrix to external numeric backends (the solver
// wraps it in a gonum mat.Dense). Mutating the slice mutates the matrix.
func (m *Dense) Raw() []float64 { return m.data }

// String implements fmt.Stringer for debugging: one bracketed row per line.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var s string
	for i := 0; i < m.r; i++ {
		s += "["
		for j := 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
