package provisioning

import "errors"

// Error is a provisioning failure reported to the host. Submission and polling
// failures as well as unresolvable requests are all of this kind.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) *Error {
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// IsProvisionError reports whether err is, or wraps, a provisioning error.
func IsProvisionError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
