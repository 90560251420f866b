package errx

// Type represents the category of error
type Type string

const (
	// TypeInternal represents internal errors
	TypeInternal Type = "INTERNAL"

	// TypeValidation represents argument and input validation errors
	TypeValidation Type = "VALIDATION"

	// TypeRejected represents reasons propagated from a failed
	// asynchronous operation
	TypeRejected Type = "REJECTED"

	// TypeTimeout represents deadline errors
	TypeTimeout Type = "TIMEOUT"

	// TypeExternal represents errors from external collaborators
	TypeExternal Type = "EXTERNAL"
)

// String returns the string representation of the error type
func (t Type) String() string {
	return string(t)
}
