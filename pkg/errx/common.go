package errx

// Common error constructors for convenience

// Internal creates an internal error
func Internal(message string) *Error {
	return New(message, TypeInternal)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(message, TypeValidation)
}

// Rejected wraps a propagated rejection reason
func Rejected(err error) *Error {
	return Wrap(err, "operation rejected", TypeRejected)
}

// Timeout creates a timeout error
func Timeout(message string) *Error {
	return New(message, TypeTimeout)
}

// External creates an external collaborator error
func External(message string) *Error {
	return New(message, TypeExternal)
}
