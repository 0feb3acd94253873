// Package exporter writes report-ready tabular output: plain CSV files for
// each summary table and a single Excel workbook collecting every table of a
// run. It knows nothing about how the tables were computed; it only formats
// and writes what it is given.
package exporter
