// Package metrics aggregates residual statistics of a fitted model against
// a dataset of observation records, and summarizes a dataset's observable
// coverage before fitting.
//
// Errors are accumulated as {sum of absolute deviations, sum of squared
// deviations, observation count} per observable kind per group, plus the
// synthetic group "set" holding the aggregate over all records. The three
// accumulated quantities are sums, so partial reports computed over slices
// of a dataset merge associatively and commutatively into exactly the
// report of the whole dataset — the basis for embarrassing parallelism over
// records.
//
// An accumulator that never saw an observation finalizes to MAE = RMSE = 0,
// not NaN. That is a defined policy, not a division guard: a group with no
// energy data has nothing to report, and zero is the reportable steady
// state.
package metrics
