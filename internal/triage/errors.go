package triage

import (
	"fmt"
	"strings"
)

// FieldError names one offending input field. Validation reports every
// problem at once so a caller can surface them all in a single round trip.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is recoverable by the caller re-submitting.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid assessment input: " + strings.Join(msgs, "; ")
}

// ConfigurationError marks a startup problem that must not be swallowed,
// such as an empty crisis phrase catalog.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "triage configuration error: " + e.Reason
}
