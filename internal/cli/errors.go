package cli

import "errors"

// ErrUsage is the sentinel matched by errors.Is for any user-facing usage
// problem: bad flags, missing required options, unwritable output targets.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
