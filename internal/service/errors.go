package service

import "strings"

// ValidationError carries every violation found in a payload. It is
// raised before any store call, so a failed request has no observable
// effect.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
