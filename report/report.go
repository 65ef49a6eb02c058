// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aceforge/acefit/metrics"
)

// Errors renders the per-group MAE/RMSE table. Columns come in pairs per
// observable kind; the synthetic "set" group closes the table.
//
//	group    E_mae  E_rmse  F_mae  F_rmse  V_mae  V_rmse  PAE_mae  PAE_rmse
func Errors(r *metrics.Report) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "group")
	for _, obs := range metrics.Observables {
		fmt.Fprintf(w, "\t%s_mae\t%s_rmse", obs, obs)
	}
	fmt.Fprintln(w)

	for _, group := range r.Groups() {
		fmt.Fprint(w, group)
		for _, obs := range metrics.Observables {
			fmt.Fprintf(w, "\t%.6f\t%.6f", r.MAE(group, obs), r.RMSE(group, obs))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	return b.String()
}

// Counts renders the per-group observation-count table of an error report.
func Counts(r *metrics.Report) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "group")
	for _, obs := range metrics.Observables {
		fmt.Fprintf(w, "\t%s", obs)
	}
	fmt.Fprintln(w)

	for _, group := range r.Groups() {
		fmt.Fprint(w, group)
		for _, obs := range metrics.Observables {
			fmt.Fprintf(w, "\t%d", r.Count(group, obs))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	return b.String()
}

// Dataset renders the assessment table: one row per group, a totals row and
// the missing row (expected − available observation counts).
func Dataset(a *metrics.Assessment) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "group\tconfigs\tenvironments\tE\tF\tV")
	for _, group := range a.Groups() {
		row, _ := a.Row(group)
		writeAssessRow(w, group, row)
	}
	writeAssessRow(w, "total", a.Total)
	fmt.Fprintf(w, "missing\t\t\t%d\t%d\t%d\n",
		a.Missing.EnergyObs, a.Missing.ForceObs, a.Missing.VirialObs)
	w.Flush()

	return b.String()
}

func writeAssessRow(w *tabwriter.Writer, label string, row metrics.AssessRow) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
		label, row.Configurations, row.Environments,
		row.EnergyObs, row.ForceObs, row.VirialObs)
}
