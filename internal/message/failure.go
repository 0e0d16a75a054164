package message

import "fmt"

// FailureKind classifies a failure returned to callers.
type FailureKind string

const (
	FailureValidation         FailureKind = "validation"
	FailureServiceUnreachable FailureKind = "service-unreachable"
	FailureMalformedResponse  FailureKind = "malformed-response"
	FailureInternal           FailureKind = "internal"
)

// Failure is the structured error every boundary operation returns.
// Message is safe to show to end users; Detail is diagnostic.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"`
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", f.Kind, f.Message, f.Detail)
}

// Validation builds a validation failure.
func Validation(msg string) *Failure {
	return &Failure{Kind: FailureValidation, Message: msg}
}
