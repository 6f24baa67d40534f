package wallet

import "fmt"

// MissingInputError reports that the wallet export does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("wallet history %q not found", e.Path)
}

// Hint is shown to the user next to the error.
func (e *MissingInputError) Hint() string {
	return "export the wallet history to CSV first (BitMEX /user/walletHistory)"
}

// MalformedRecordError reports a row that could not be parsed. Line is
// 1-based and counts the header.
type MalformedRecordError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: bad %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// OrderError reports the first record whose timestamp is earlier than
// its predecessor.
type OrderError struct {
	Index int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("record %d is earlier than record %d", e.Index, e.Index-1)
}
