package job

import (
	"errors"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry is the ordered collection of jobs submitted during a session.
// It is not safe for concurrent use.
type Registry struct {
	jobs   []Job
	unique bool
	newID  func() string
	log    logrus.FieldLogger
}

// Option configures a Registry.
type Option func(*Registry)

// WithUniqueIDs rejects a job whose id is already registered.
func WithUniqueIDs() Option {
	return func(r *Registry) { r.unique = true }
}

// WithLogger sets the logger used for add events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithIDGenerator overrides how ids are assigned to jobs submitted without one.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	r := &Registry{
		newID: ShortID,
		log:   discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ShortID returns an 8 character random job id.
func ShortID() string {
	return uuid.NewString()[:8]
}

// Add validates j and appends it, assigning an id when j.ID is blank.
// It returns the job as stored.
func (r *Registry) Add(j Job) (Job, error) {
	if j.ID == "" {
		j.ID = r.newID()
	}
	if err := j.Validate(); err != nil {
		r.reject(err)
		return Job{}, err
	}
	if r.unique && r.indexOf(j.ID) >= 0 {
		err := &InvalidJobError{ID: j.ID, Field: "id", Reason: "already exists"}
		r.reject(err)
		return Job{}, err
	}

	r.jobs = append(r.jobs, j)
	r.log.WithFields(logrus.Fields{
		"job_id":       j.ID,
		"arrival_time": j.ArrivalTime,
		"burst_time":   j.BurstTime,
		"priority":     j.Priority,
	}).Debug("job added")
	return j, nil
}

// AddFields parses the textual form of a job and adds it. A blank or "-" id
// is assigned by the registry.
func (r *Registry) AddFields(id, arrival, burst, priority string) (Job, error) {
	if id == "-" {
		id = ""
	}
	j, err := Parse(id, arrival, burst, priority)
	if err != nil {
		r.reject(err)
		return Job{}, err
	}
	return r.Add(j)
}

func (r *Registry) reject(err error) {
	fields := logrus.Fields{}
	var e *InvalidJobError
	if errors.As(err, &e) {
		fields["job_id"] = e.ID
		fields["field"] = e.Field
	}
	r.log.WithFields(fields).WithError(err).Warn("job rejected")
}

// List returns a copy of the registered jobs in submission order.
func (r *Registry) List() []Job {
	return slices.Clone(r.jobs)
}

// Len returns the number of registered jobs.
func (r *Registry) Len() int { return len(r.jobs) }

// Clear removes every job.
func (r *Registry) Clear() {
	r.jobs = nil
	r.log.Debug("registry cleared")
}

// Remove deletes the first job with the given id and reports whether one
// was found.
func (r *Registry) Remove(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.jobs = slices.Delete(r.jobs, i, i+1)
	r.log.WithField("job_id", id).Debug("job removed")
	return true
}

func (r *Registry) indexOf(id string) int {
	return slices.IndexFunc(r.jobs, func(j Job) bool { return j.ID == id })
}
