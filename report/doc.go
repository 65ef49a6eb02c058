// Package report renders the aggregated error and dataset-assessment
// reports as aligned text tables, one group per row. It is a thin consumer
// of the metrics package: all numbers are computed there, this package only
// formats.
package report
