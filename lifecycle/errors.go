package lifecycle

import (
	"errors"
	"fmt"
)

var ErrIllegalState = errors.New("lifecycle: illegal state")

// IllegalStateError reports a Start or Stop call made from a state that does
// not allow it.
type IllegalStateError struct {
	Component string
	Op        string
	State     State
}

func (e *IllegalStateError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("lifecycle: cannot %s from state %s", e.Op, e.State)
	}
	return fmt.Sprintf("lifecycle: cannot %s %s from state %s", e.Op, e.Component, e.State)
}

func (e *IllegalStateError) Is(target error) bool {
	return target == ErrIllegalState
}
