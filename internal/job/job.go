package job

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Job is a single print job waiting for the printer.
type Job struct {
	ID          string `json:"id"`
	ArrivalTime int64  `json:"arrival_time" validate:"gte=0"`
	BurstTime   int64  `json:"burst_time" validate:"gt=0"`
	Priority    int64  `json:"priority"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps validation tags to the reason shown to the user.
var messages = map[string]string{
	"gt":  "must be greater than %s",
	"gte": "must be greater than or equal to %s",
}

func reason(e validator.FieldError) string {
	if msg, ok := messages[e.Tag()]; ok {
		return fmt.Sprintf(msg, e.Param())
	}
	return "is invalid"
}

// Validate checks the job's range invariants and returns an *InvalidJobError
// naming the first offending field.
func (j Job) Validate() error {
	err := validate.Struct(j)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &InvalidJobError{ID: j.ID, Field: verrs[0].Field(), Reason: reason(verrs[0])}
	}
	return &InvalidJobError{ID: j.ID, Reason: "is invalid", Err: err}
}

// Parse builds a job from its textual fields. Arrival and burst are required;
// an empty priority means 0. Parse does not check ranges, see Validate.
func Parse(id, arrival, burst, priority string) (Job, error) {
	j := Job{ID: strings.TrimSpace(id)}
	var err error
	if j.ArrivalTime, err = parseInt(j.ID, "arrival_time", arrival, true); err != nil {
		return Job{}, err
	}
	if j.BurstTime, err = parseInt(j.ID, "burst_time", burst, true); err != nil {
		return Job{}, err
	}
	if j.Priority, err = parseInt(j.ID, "priority", priority, false); err != nil {
		return Job{}, err
	}
	return j, nil
}

func parseInt(id, field, s string, required bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return 0, &InvalidJobError{ID: id, Field: field, Reason: "is required"}
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidJobError{ID: id, Field: field, Reason: fmt.Sprintf("must be an integer, got %q", s), Err: err}
	}
	return n, nil
}
