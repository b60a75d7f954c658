package scheduler

import (
	"errors"
	"fmt"
)

// ErrEmptyQueue is returned when there is nothing to schedule.
var ErrEmptyQueue = errors.New("no jobs to schedule")

// ErrTimeOverflow is returned when a completion time does not fit in an int64.
var ErrTimeOverflow = errors.New("completion time overflows int64")

// UnknownPolicyError reports a policy outside the supported set, either a
// name that does not parse or an out-of-range Policy value.
type UnknownPolicyError struct {
	Name   string
	Policy Policy
}

func (e *UnknownPolicyError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown policy %q (want fcfs, sjf or priority)", e.Name)
	}
	return fmt.Sprintf("unknown policy %d", int(e.Policy))
}
