// Package acefit turns heterogeneous atomistic reference data into one
// consistent linear regression problem, and measures how well a fitted
// interatomic potential reproduces that data.
//
// 🚀 What is acefit?
//
//	A deterministic, synchronous library that brings together:
//		• dataset/  — observation records over atomic configurations: key
//		  resolution, per-group weighting, masks, grouping
//		• assemble/ — row layout and assembly of the design matrix, target
//		  vector and weight vector across a whole dataset
//		• metrics/  — MAE/RMSE error aggregation per configuration group,
//		  plus pre-fit dataset assessment
//		• report/   — aligned text tables for error and assessment reports
//		• solve/    — weighted least-squares collaborator (QR, optional ridge)
//		• model/    — the evaluation-capability contracts everything consumes
//
// The physics stays outside: basis functions, radial expansions and export
// formats are external collaborators reached through the model.Evaluator
// interface. acefit owns the bookkeeping that is easy to get subtly wrong —
// variable-length per-record row layouts, masking, Voigt-ordered virial
// extraction, weight fallback rules and grouped residual statistics.
//
// Typical pipeline:
//
//	configs → dataset.NewRecord (keys, weights, mask) → assemble.FeatureMatrix /
//	TargetVector / WeightVector → solve.LeastSquares → model.Linear →
//	metrics.Compute → report.Errors
//
// Every operation is a pure function over immutable inputs; records may be
// processed independently and metric accumulators merge associatively.
//
//	go get github.com/aceforge/acefit
package acefit
