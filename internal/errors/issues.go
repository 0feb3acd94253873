package errors

import "fmt"

// Issue records a business-rule violation that was corrected (or flagged)
// automatically during cleaning. Issues are collected, not raised: they never
// abort the run.
type Issue struct {
	Row       int    `json:"row"`
	Field     string `json:"field"`
	Rule      string `json:"rule"`
	Original  string `json:"original"`
	Corrected string `json:"corrected,omitempty"`
}

// String renders the issue for log and report output
func (i Issue) String() string {
	if i.Corrected != "" {
		return fmt.Sprintf("row %d: %s violated %s (%s -> %s)", i.Row, i.Field, i.Rule, i.Original, i.Corrected)
	}
	return fmt.Sprintf("row %d: %s violated %s (%s)", i.Row, i.Field, i.Rule, i.Original)
}
