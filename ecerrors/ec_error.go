package ecerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ECError identifies a class of failure in the elliptic-curve signature
// subsystem. Every error returned by this module wraps one of the sentinel
// values below, so callers can classify failures with errors.Is.
type ECError struct {
	message string
	inner   error
}

// These constants are used to identify a specific ECError.
var (
	// ErrUnsupportedCurve indicates an unknown curve name, or a feature
	// that was requested on an incompatible curve family.
	ErrUnsupportedCurve = newECError("ErrUnsupportedCurve")

	// ErrUnsupportedAlgorithm indicates a hash/curve mismatch, e.g. binding
	// a non-canonical hash to a twisted Edwards curve.
	ErrUnsupportedAlgorithm = newECError("ErrUnsupportedAlgorithm")

	// ErrInvalidKeyMaterial indicates a malformed or incomplete key
	// container, or key components that violate curve invariants.
	ErrInvalidKeyMaterial = newECError("ErrInvalidKeyMaterial")

	// ErrDecryption indicates a wrong password for an encrypted key
	// container.
	ErrDecryption = newECError("ErrDecryption")

	// ErrInvalidSignatureFormat indicates a structurally malformed signature
	// blob or out-of-range signature components.
	ErrInvalidSignatureFormat = newECError("ErrInvalidSignatureFormat")

	// ErrInvalidContext indicates a domain-separation context that is used
	// on the wrong curve family or exceeds 255 bytes.
	ErrInvalidContext = newECError("ErrInvalidContext")
)

func (e ECError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e ECError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e ECError) Cause() error {
	return e.inner
}

// Is lets errors.Is match any wrapped ECError against its sentinel value.
func (e ECError) Is(target error) bool {
	if other, ok := target.(ECError); ok {
		return e.message == other.message
	}
	return false
}

func newECError(message string) ECError {
	return ECError{message: message, inner: nil}
}

// Errorf formats a message and wraps it in the given sentinel, attaching a
// stack trace at the call site.
func Errorf(sentinel ECError, format string, args ...interface{}) error {
	return errors.WithStack(ECError{
		message: sentinel.message,
		inner:   fmt.Errorf(format, args...),
	})
}

// Wrapf wraps an existing error in the given sentinel, attaching a stack
// trace at the call site.
func Wrapf(sentinel ECError, err error, format string, args ...interface{}) error {
	return errors.WithStack(ECError{
		message: sentinel.message,
		inner:   errors.Wrapf(err, format, args...),
	})
}
