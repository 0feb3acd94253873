// Package efficiency computes the TRMNS (Total Revenue per Minute per Sales)
// metric: a group's total revenue divided by its estimated total time cost,
// where the time cost is a fixed per-method minute constant times the number
// of interactions. The minute constants are configuration inputs, never
// derived from data.
//
// The package ranks sales methods overall and within each state, and persists
// the results as CSV, JSON, and a plain-text summary report.
package efficiency
