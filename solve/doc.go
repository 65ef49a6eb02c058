// Package solve is the linear-solver collaborator downstream of assembly:
// it accepts a design matrix, target vector and weight vector and returns
// fitted coefficients. The assembly core never calls it — the boundary runs
// the other way — but having one concrete solver makes the module usable
// end-to-end and lets tests close the assemble → solve → evaluate loop.
//
// The system is row-scaled by the weight vector and solved by Householder
// QR (gonum). An optional ridge term appends √λ·I rows, which also makes
// underdetermined systems solvable.
package solve
