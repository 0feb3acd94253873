// Package dataprocessing implements the first three stages of the sales
// analysis pipeline: loading the raw interaction table, cleaning it into the
// invariant-satisfying form, and computing grouped summary aggregates.
//
// Data flows strictly forward: Load -> Clean -> Aggregate. Each stage
// consumes its input by value and produces new output; no stage mutates what
// it was given, so re-running any stage on the same input yields the same
// result.
package dataprocessing
