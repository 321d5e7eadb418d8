package deckcode

import "fmt"

// FormatError reports a deck code whose shape is invalid: a missing
// marker, an empty payload, a symbol outside the alphabet, or a digit
// string that cannot be split into chunks. Format errors abort the
// whole decode; malformed data inside a well-formed code never raises
// one.
type FormatError struct {
	Reason    string
	Offending string // the offending fragment, when one exists
}

func (e *FormatError) Error() string {
	if e.Offending != "" {
		return fmt.Sprintf("invalid deck code: %s: %q", e.Reason, e.Offending)
	}
	return fmt.Sprintf("invalid deck code: %s", e.Reason)
}

func formatErr(reason string) error {
	return &FormatError{Reason: reason}
}

func formatErrf(reason, offending string) error {
	return &FormatError{Reason: reason, Offending: offending}
}
