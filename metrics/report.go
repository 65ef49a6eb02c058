// SPDX-License-Identifier: MIT

package metrics

// SetGroup is the synthetic group holding the aggregate over all records.
const SetGroup = "set"

// groupAcc is one group's accumulators, indexed by Observable.
type groupAcc [numObservables]Accumulator

// Report holds per-group error accumulators. Groups are discovered in
// first-seen order; the synthetic SetGroup aggregates everything and is
// always present.
type Report struct {
	groups map[string]*groupAcc
	order  []string
}

// NewReport returns an empty report containing only the synthetic group.
func NewReport() *Report {
	return &Report{groups: map[string]*groupAcc{SetGroup: {}}}
}

// acc returns (creating on first sight) the accumulator block of a group.
func (r *Report) acc(group string) *groupAcc {
	g, ok := r.groups[group]
	if !ok {
		g = &groupAcc{}
		r.groups[group] = g
		r.order = append(r.order, group)
	}

	return g
}

// observe folds one deviation into a group and into the synthetic group.
func (r *Report) observe(group string, obs Observable, dev float64) {
	r.acc(group)[obs].Observe(dev)
	r.groups[SetGroup][obs].Observe(dev)
}

// Groups returns the group labels in first-seen order, SetGroup last.
func (r *Report) Groups() []string {
	out := make([]string, 0, len(r.order)+1)
	out = append(out, r.order...)

	return append(out, SetGroup)
}

// MAE returns the finalized mean absolute error of one observable in one
// group; unknown groups and empty accumulators report 0.
func (r *Report) MAE(group string, obs Observable) float64 {
	if g, ok := r.groups[group]; ok {
		return g[obs].MAE()
	}

	return 0
}

// RMSE returns the finalized root-mean-square error; unknown groups and
// empty accumulators report 0.
func (r *Report) RMSE(group string, obs Observable) float64 {
	if g, ok := r.groups[group]; ok {
		return g[obs].RMSE()
	}

	return 0
}

// Count returns the number of observations folded into one accumulator.
func (r *Report) Count(group string, obs Observable) int {
	if g, ok := r.groups[group]; ok {
		return g[obs].Count
	}

	return 0
}

// Merge folds another report in, group by group, preserving this report's
// first-seen order and appending groups it had not seen. Merging partial
// reports over dataset slices reproduces the whole-dataset report exactly.
func (r *Report) Merge(other *Report) {
	// Walk other's first-seen order (which never contains SetGroup) so the
	// merged order is deterministic; the synthetic group is rebuilt from the
	// per-group contributions rather than merged twice.
	for _, group := range other.order {
		g := other.groups[group]
		dst := r.acc(group)
		for i := range g {
			dst[i].Merge(g[i])
			r.groups[SetGroup][i].Merge(g[i])
		}
	}
}
