package stats

import "fmt"

// DegenerateInputError reports a metric whose baseline is zero or missing.
type DegenerateInputError struct {
	Metric string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s", e.Metric, e.Reason)
}

// EmptyTroughWindowError reports that no records remain after the
// warm-up window, so there is no trough to find.
type EmptyTroughWindowError struct {
	Records int
	Warmup  int
}

func (e *EmptyTroughWindowError) Error() string {
	return fmt.Sprintf("trough window empty: %d records, warm-up offset %d", e.Records, e.Warmup)
}
