package job

import "fmt"

// InvalidJobError reports a job rejected at add time. The registry is left
// unchanged when it is returned.
type InvalidJobError struct {
	ID     string
	Field  string
	Reason string
	Err    error
}

func (e *InvalidJobError) Error() string {
	subject := "invalid job"
	if e.ID != "" {
		subject = fmt.Sprintf("invalid job %q", e.ID)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", subject, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", subject, e.Field, e.Reason)
}

func (e *InvalidJobError) Unwrap() error { return e.Err }
