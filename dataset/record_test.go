// SPDX-License-Identifier: MIT

package dataset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/aceforge/acefit/dataset"
)

// newConfig builds an n-atom configuration with the given info pairs.
func newConfig(t require.TestingT, n int, info map[string]any) *dataset.Configuration {
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

// constRef is a reference-energy model returning a fixed baseline.
type constRef struct{ e float64 }

func (c constRef) Energy(*dataset.Configuration) (float64, error) { return c.e, nil }

// failingRef simulates a broken evaluation capability.
type failingRef struct{}

var errBoom = errors.New("boom")

func (failingRef) Energy(*dataset.Configuration) (float64, error) { return 0, errBoom }

// RecordSuite exercises record construction under various data labelings.
type RecordSuite struct {
	suite.Suite
}

// TestCaseInsensitiveResolution verifies that a stored "Energy" satisfies a
// requested "ENERGY".
func (s *RecordSuite) TestCaseInsensitiveResolution() {
	cfg := newConfig(s.T(), 2, map[string]any{"Energy": -10.0})

	r, err := dataset.NewRecord(cfg, dataset.WithEnergyKey("ENERGY"))
	require.NoError(s.T(), err)
	require.True(s.T(), r.HasEnergy())
	e, err := r.Energy()
	require.NoError(s.T(), err)
	require.Equal(s.T(), -10.0, e)
	require.False(s.T(), r.HasForces(), "no force data stored")
	require.False(s.T(), r.HasVirial())
	require.False(s.T(), r.HasSiteEnergies())
}

// TestFirstMatchWins verifies that two spellings of the same key resolve to
// the earlier insertion.
func (s *RecordSuite) TestFirstMatchWins() {
	cfg := newConfig(s.T(), 1, nil)
	require.NoError(s.T(), cfg.SetInfo("Energy", -1.0))
	require.NoError(s.T(), cfg.SetInfo("ENERGY", -2.0))

	r, err := dataset.NewRecord(cfg)
	require.NoError(s.T(), err)
	e, err := r.Energy()
	require.NoError(s.T(), err)
	require.Equal(s.T(), -1.0, e)
}

// TestDisabledKeyIgnoresData verifies that an empty requested name disables
// the observable regardless of stored data.
func (s *RecordSuite) TestDisabledKeyIgnoresData() {
	cfg := newConfig(s.T(), 1, map[string]any{"energy": -3.0})

	r, err := dataset.NewRecord(cfg, dataset.WithEnergyKey(""))
	require.NoError(s.T(), err)
	require.False(s.T(), r.HasEnergy())
	_, err = r.Energy()
	require.ErrorIs(s.T(), err, dataset.ErrAbsent)
}

// TestWeightFallbackHardcoded: no matching group, no "default" entry.
func (s *RecordSuite) TestWeightFallbackHardcoded() {
	cfg := newConfig(s.T(), 1, map[string]any{"config_type": "bulk"})
	table := dataset.WeightTable{"liquid": {E: 5, F: 2, V: 1}}

	r, err := dataset.NewRecord(cfg, dataset.WithWeightTable(table))
	require.NoError(s.T(), err)
	require.Equal(s.T(), dataset.Weights{E: 1, F: 1, V: 1}, r.Weights())
	require.Equal(s.T(), "bulk", r.Group())
}

// TestWeightDefaultEntry: the "default" table entry replaces the hardcoded
// fallback.
func (s *RecordSuite) TestWeightDefaultEntry() {
	cfg := newConfig(s.T(), 1, nil)
	table := dataset.WeightTable{"default": {E: 30, F: 1, V: 1}}

	r, err := dataset.NewRecord(cfg, dataset.WithWeightTable(table))
	require.NoError(s.T(), err)
	require.Equal(s.T(), dataset.Weights{E: 30, F: 1, V: 1}, r.Weights())
	require.Equal(s.T(), dataset.DefaultGroup, r.Group())
}

// TestWeightGroupOverride: group entry wins over "default", matched
// case-insensitively on both sides.
func (s *RecordSuite) TestWeightGroupOverride() {
	cfg := newConfig(s.T(), 1, map[string]any{"Config_Type": "Liquid"})
	table := dataset.WeightTable{
		"default": {E: 30, F: 1, V: 1},
		"liquid":  {E: 10, F: 0.5, V: 0.25},
	}

	r, err := dataset.NewRecord(cfg, dataset.WithWeightTable(table))
	require.NoError(s.T(), err)
	require.Equal(s.T(), dataset.Weights{E: 10, F: 0.5, V: 0.25}, r.Weights())
	require.Equal(s.T(), "Liquid", r.Group())
}

// TestCustomGroupKey buckets on a non-default grouping field.
func (s *RecordSuite) TestCustomGroupKey() {
	cfg := newConfig(s.T(), 1, map[string]any{"source": "md"})

	r, err := dataset.NewRecord(cfg, dataset.WithGroupKey("SOURCE"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), "md", r.Group())
}

// TestReferenceEnergy: baseline from the reference model, zero without one.
func (s *RecordSuite) TestReferenceEnergy() {
	cfg := newConfig(s.T(), 2, map[string]any{"energy": -10.0})

	bare, err := dataset.NewRecord(cfg)
	require.NoError(s.T(), err)
	require.Zero(s.T(), bare.EnergyReference())

	ref, err := dataset.NewRecord(cfg, dataset.WithReference(constRef{e: -4.0}))
	require.NoError(s.T(), err)
	require.Equal(s.T(), -4.0, ref.EnergyReference())
}

// TestReferenceFailurePropagates: capability failures abort construction.
func (s *RecordSuite) TestReferenceFailurePropagates() {
	cfg := newConfig(s.T(), 1, nil)

	_, err := dataset.NewRecord(cfg, dataset.WithReference(failingRef{}))
	require.ErrorIs(s.T(), err, errBoom)
}

// TestForceShapeLoud: malformed stored forces are a contract violation.
func (s *RecordSuite) TestForceShapeLoud() {
	cfg := newConfig(s.T(), 3, map[string]any{
		"force": [][]float64{{1, 0, 0}, {0, 0, 0}}, // 2 rows for 3 atoms
	})

	r, err := dataset.NewRecord(cfg)
	require.NoError(s.T(), err)
	_, err = r.Forces()
	require.ErrorIs(s.T(), err, dataset.ErrShape)
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordSuite))
}

func TestNewRecord_NilConfiguration(t *testing.T) {
	t.Parallel()

	_, err := dataset.NewRecord(nil)
	require.ErrorIs(t, err, dataset.ErrNilConfiguration)
}
