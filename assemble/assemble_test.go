// SPDX-License-Identifier: MIT

package assemble_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aceforge/acefit/assemble"
	"github.com/aceforge/acefit/dataset"
	"github.com/aceforge/acefit/matrix"
	"github.com/aceforge/acefit/model"
)

// stubFunc is a deterministic fake basis function: every observable is a
// formula of the function id, so matrix entries are predictable.
type stubFunc struct{ id int }

func (s stubFunc) Energy(*dataset.Configuration) (float64, error) {
	return float64(s.id), nil
}

func (s stubFunc) Forces(c *dataset.Configuration) ([][3]float64, error) {
	fs := make([][3]float64, c.NumAtoms())
	for a := range fs {
		fs[a] = [3]float64{
			float64(100*s.id + 3*a),
			float64(100*s.id + 3*a + 1),
			float64(100*s.id + 3*a + 2),
		}
	}

	return fs, nil
}

func (s stubFunc) Virial(*dataset.Configuration) ([3][3]float64, error) {
	var v [3][3]float64
	for p := 0; p < 3; p++ {
		for q := 0; q < 3; q++ {
			v[p][q] = float64(1000*s.id + 3*p + q)
		}
	}

	return v, nil
}

func (s stubFunc) SiteEnergy(_ *dataset.Configuration, atom int) (float64, error) {
	return float64(10*s.id + atom), nil
}

// failingFunc aborts on energy evaluation.
type failingFunc struct{}

var errEval = errors.New("evaluator down")

func (failingFunc) Energy(*dataset.Configuration) (float64, error) { return 0, errEval }
func (failingFunc) Forces(c *dataset.Configuration) ([][3]float64, error) {
	return make([][3]float64, c.NumAtoms()), nil
}
func (failingFunc) Virial(*dataset.Configuration) ([3][3]float64, error) {
	return [3][3]float64{}, nil
}
func (failingFunc) SiteEnergy(*dataset.Configuration, int) (float64, error) { return 0, nil }

func stubBasis(n int) model.Basis {
	funcs := make(model.Funcs, n)
	for i := range funcs {
		funcs[i] = stubFunc{id: i + 1}
	}

	return funcs
}

// newConfig builds an n-atom configuration with the given info pairs.
func newConfig(t *testing.T, n int, info map[string]any) *dataset.Configuration {
	t.Helper()
	symbols := make([]string, n)
	positions := make([][3]float64, n)
	for i := 0; i < n; i++ {
		symbols[i] = "Si"
		positions[i] = [3]float64{float64(i), 0, 0}
	}
	cfg, err := dataset.NewConfiguration(symbols, positions)
	require.NoError(t, err)
	for k, v := range info {
		require.NoError(t, cfg.SetInfo(k, v))
	}

	return cfg
}

func mustRecord(t *testing.T, cfg *dataset.Configuration, opts ...dataset.Option) *dataset.Record {
	t.Helper()
	r, err := dataset.NewRecord(cfg, opts...)
	require.NoError(t, err)

	return r
}

func TestCountObservations_AllBlocks(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 3, map[string]any{
		"energy":      -12.0,
		"force":       [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		"virial":      []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		"site_energy": []float64{-4, -4, -4},
		"mask":        []bool{true, false, true},
	})
	r := mustRecord(t, cfg)

	n, err := assemble.CountObservations(r)
	require.NoError(t, err)
	// 1 energy + 6 masked force components + 6 virial + 2 masked site rows.
	require.Equal(t, 1+6+6+2, n)
}

func TestCountObservations_MaskOnlyRecordIsEmpty(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 3, map[string]any{"mask": []bool{true, true, false}})
	r := mustRecord(t, cfg)

	n, err := assemble.CountObservations(r)
	require.NoError(t, err)
	require.Zero(t, n)

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Empty(t, y)
	w, err := assemble.WeightVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Empty(t, w)
	a, err := assemble.FeatureMatrix([]*dataset.Record{r}, stubBasis(2))
	require.NoError(t, err)
	require.Zero(t, a.Rows())
	require.Equal(t, 2, a.Cols())
}

func TestRowAlignment_AllOutputsAgree(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 2, map[string]any{
		"energy": -8.0,
		"force":  [][]float64{{1, 2, 3}, {4, 5, 6}},
		"virial": []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
	})
	r := mustRecord(t, cfg)
	records := []*dataset.Record{r}

	n, err := assemble.CountObservations(r)
	require.NoError(t, err)
	y, err := assemble.TargetVector(records)
	require.NoError(t, err)
	w, err := assemble.WeightVector(records)
	require.NoError(t, err)
	a, err := assemble.FeatureMatrix(records, stubBasis(3))
	require.NoError(t, err)

	require.Len(t, y, n)
	require.Len(t, w, n)
	require.Equal(t, n, a.Rows())
	require.Equal(t, 3, a.Cols())
}

func TestVoigtOrder_FixedExtraction(t *testing.T) {
	t.Parallel()

	// Stored flat tensor 1..9; Voigt order [xx yy zz yz xz xy] picks the
	// row-major linear positions 0,4,8,5,2,1.
	cfg := newConfig(t, 2, map[string]any{"virial": []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}})
	r := mustRecord(t, cfg)

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5, 9, 6, 3, 2}, y)
}

func TestFeatureMatrix_BlockContent(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 1, map[string]any{
		"energy":      -1.0,
		"site_energy": []float64{-1.0},
	})
	r := mustRecord(t, cfg)

	a, err := assemble.FeatureMatrix([]*dataset.Record{r}, stubBasis(2))
	require.NoError(t, err)
	require.Equal(t, 2, a.Rows())

	// Row 0: basis energies [1, 2]; row 1: site energies of atom 0 [10, 20].
	row, err := a.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, row)
	row, err = a.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20}, row)
}

func TestFeatureMatrix_MaskedForceRows(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 2, map[string]any{
		"force": [][]float64{{1, 2, 3}, {4, 5, 6}},
		"mask":  []bool{false, true},
	})
	r := mustRecord(t, cfg, dataset.WithEnergyKey(""))

	a, err := assemble.FeatureMatrix([]*dataset.Record{r}, stubBasis(1))
	require.NoError(t, err)
	// Only atom 1's three components survive the mask.
	require.Equal(t, 3, a.Rows())
	// stubFunc id=1 on atom 1 emits components 103, 104, 105.
	for k := 0; k < 3; k++ {
		v, errAt := a.At(k, 0)
		require.NoError(t, errAt)
		require.Equal(t, float64(103+k), v)
	}

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, y)
}

func TestConcatenationAssociativity(t *testing.T) {
	t.Parallel()

	ra := mustRecord(t, newConfig(t, 2, map[string]any{
		"energy": -8.0,
		"force":  [][]float64{{1, 2, 3}, {4, 5, 6}},
	}))
	rb := mustRecord(t, newConfig(t, 1, map[string]any{
		"energy": -3.0,
		"virial": []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}))
	basis := stubBasis(2)

	both, err := assemble.FeatureMatrix([]*dataset.Record{ra, rb}, basis)
	require.NoError(t, err)
	first, err := assemble.FeatureMatrix([]*dataset.Record{ra}, basis)
	require.NoError(t, err)
	second, err := assemble.FeatureMatrix([]*dataset.Record{rb}, basis)
	require.NoError(t, err)
	stacked, err := matrix.Stack(first, second)
	require.NoError(t, err)
	require.Equal(t, both.Raw(), stacked.Raw())

	yBoth, err := assemble.TargetVector([]*dataset.Record{ra, rb})
	require.NoError(t, err)
	yA, err := assemble.TargetVector([]*dataset.Record{ra})
	require.NoError(t, err)
	yB, err := assemble.TargetVector([]*dataset.Record{rb})
	require.NoError(t, err)
	require.Equal(t, yBoth, append(append([]float64{}, yA...), yB...))

	wBoth, err := assemble.WeightVector([]*dataset.Record{ra, rb})
	require.NoError(t, err)
	wA, err := assemble.WeightVector([]*dataset.Record{ra})
	require.NoError(t, err)
	wB, err := assemble.WeightVector([]*dataset.Record{rb})
	require.NoError(t, err)
	require.Equal(t, wBoth, append(append([]float64{}, wA...), wB...))
}

// End-to-end scenario: one 2-atom configuration carrying only an energy,
// weight table default {E:30, F:1, V:1}.
func TestScenario_EnergyOnly(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 2, map[string]any{"energy": -10.0})
	r := mustRecord(t, cfg, dataset.WithWeightTable(dataset.WeightTable{
		"default": {E: 30, F: 1, V: 1},
	}))

	n, err := assemble.CountObservations(r)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Equal(t, []float64{-10.0}, y)

	w, err := assemble.WeightVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Len(t, w, 1)
	require.InDelta(t, 30.0/math.Sqrt(2.0), w[0], 1e-12)
}

// End-to-end scenario: one 3-atom configuration carrying only forces, zeros
// except atom 0 = [1,0,0].
func TestScenario_ForcesOnly(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 3, map[string]any{
		"force": [][]float64{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	})
	r := mustRecord(t, cfg)

	n, err := assemble.CountObservations(r)
	require.NoError(t, err)
	require.Equal(t, 9, n)

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0, 0, 0}, y)

	w, err := assemble.WeightVector([]*dataset.Record{r})
	require.NoError(t, err)
	require.Len(t, w, 9)
	for _, wi := range w {
		require.Equal(t, r.Weights().F, wi)
	}
}

func TestTargetVector_SiteEnergyBaseline(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, 2, map[string]any{"site_energy": []float64{-3.0, -5.0}})
	r := mustRecord(t, cfg, dataset.WithReference(constRef{e: -4.0}))

	y, err := assemble.TargetVector([]*dataset.Record{r})
	require.NoError(t, err)
	// Per-atom baseline: reference / atoms = -2 subtracted from each row.
	require.Equal(t, []float64{-1.0, -3.0}, y)
}

func TestFeatureMatrix_EvaluationFailureAborts(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, newConfig(t, 1, map[string]any{"energy": -1.0}))

	_, err := assemble.FeatureMatrix([]*dataset.Record{r}, model.Funcs{failingFunc{}})
	require.ErrorIs(t, err, errEval)
}

func TestFeatureMatrix_EmptyBasis(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, newConfig(t, 1, map[string]any{"energy": -1.0}))

	_, err := assemble.FeatureMatrix([]*dataset.Record{r}, model.Funcs{})
	require.ErrorIs(t, err, assemble.ErrEmptyBasis)
}

// constRef is a fixed-baseline reference model.
type constRef struct{ e float64 }

func (c constRef) Energy(*dataset.Configuration) (float64, error) { return c.e, nil }
