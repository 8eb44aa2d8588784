package services

import "fmt"

// InvalidInputError reports malformed or out-of-range caller-supplied values.
// Nothing is computed once one is detected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// RateNotFoundError reports a price lookup with no match. The key names the
// lookup that was attempted so the caller can correct it.
type RateNotFoundError struct {
	Kind string
	Key  string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("rate not found: %s (%s)", e.Kind, e.Key)
}

// AmbiguousRateError reports a rate lookup matched by more than one row.
// The resolver refuses to pick one arbitrarily.
type AmbiguousRateError struct {
	Kind    string
	Key     string
	Matches int
}

func (e *AmbiguousRateError) Error() string {
	return fmt.Sprintf("ambiguous rate: %s (%s) matched %d rate cards", e.Kind, e.Key, e.Matches)
}

// InvalidDiscountError reports a discount code that is unknown or outside
// its validity window. Kept distinct from RateNotFoundError so the caller
// can offer to retry without the code.
type InvalidDiscountError struct {
	Code   string
	Reason string
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount %q: %s", e.Code, e.Reason)
}

// RetrievalUnavailableError reports that embedding or vector retrieval
// failed. Recoverable: the drafting pipeline degrades to ungrounded
// generation.
type RetrievalUnavailableError struct {
	Cause error
}

func (e *RetrievalUnavailableError) Error() string {
	return fmt.Sprintf("retrieval unavailable: %v", e.Cause)
}

func (e *RetrievalUnavailableError) Unwrap() error {
	return e.Cause
}

// GenerationParseError reports model output that could not be coerced into
// the draft schema after all extraction attempts. Terminal for the request.
type GenerationParseError struct {
	Reason string
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("could not parse generated draft: %s", e.Reason)
}

// ExternalServiceTimeoutError reports an external call exceeding its deadline.
// Terminal but retryable by the caller.
type ExternalServiceTimeoutError struct {
	Op string
}

func (e *ExternalServiceTimeoutError) Error() string {
	return fmt.Sprintf("external service timeout during %s", e.Op)
}
