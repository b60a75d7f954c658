// Package session is the call boundary between a front end and the
// scheduling core. A Session owns one job registry and renders every run to
// its writer.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bbajagain1/printsched/internal/config"
	"github.com/bbajagain1/printsched/internal/job"
	"github.com/bbajagain1/printsched/internal/loader"
	"github.com/bbajagain1/printsched/internal/render"
	"github.com/bbajagain1/printsched/internal/scheduler"
)

// AutoPolicy is the policy name resolved by scheduler.Recommend.
const AutoPolicy = "auto"

// Session holds the jobs of one interactive or batch run.
type Session struct {
	cfg      *config.Config
	registry *job.Registry
	out      io.Writer
	log      logrus.FieldLogger
	prompt   string
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	log     logrus.FieldLogger
	prompt  string
	jobOpts []job.Option
}

// WithLogger sets the logger for the session and its registry.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *sessionOptions) { o.log = l }
}

// WithPrompt sets the prompt Serve prints before every line.
func WithPrompt(p string) Option {
	return func(o *sessionOptions) { o.prompt = p }
}

// WithRegistryOptions passes extra options to the underlying registry.
func WithRegistryOptions(opts ...job.Option) Option {
	return func(o *sessionOptions) { o.jobOpts = append(o.jobOpts, opts...) }
}

// New returns a session writing rendered output to out. A nil cfg uses the
// built-in defaults.
func New(cfg *config.Config, out io.Writer, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.log = discard
	}

	jobOpts := []job.Option{job.WithLogger(o.log)}
	if cfg.Registry != nil && cfg.Registry.UniqueIDs {
		jobOpts = append(jobOpts, job.WithUniqueIDs())
	}
	jobOpts = append(jobOpts, o.jobOpts...)

	return &Session{
		cfg:      cfg,
		registry: job.NewRegistry(jobOpts...),
		out:      out,
		log:      o.log,
		prompt:   o.prompt,
	}
}

// Registry returns the session's registry.
func (s *Session) Registry() *job.Registry { return s.registry }

// Add registers one job from its textual fields.
func (s *Session) Add(id, arrival, burst, priority string) (job.Job, error) {
	return s.registry.AddFields(id, arrival, burst, priority)
}

// Load adds every CSV row from r. Invalid rows are skipped and reported
// together in the returned error; valid rows are kept.
func (s *Session) Load(r io.Reader) (int, error) {
	rows, err := loader.LoadJobs(r)
	if err != nil {
		return 0, err
	}

	var (
		added int
		errs  []error
	)
	for _, row := range rows {
		if _, err := s.registry.AddFields(row.ID, row.Arrival, row.Burst, row.Priority); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", row.Line, err))
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

// ResolvePolicy turns a policy name into a Policy for the given jobs. An
// empty name uses the configured policy; "auto" asks scheduler.Recommend.
func (s *Session) ResolvePolicy(name string, jobs []job.Job) (scheduler.Policy, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.Policy
	}
	if strings.EqualFold(strings.TrimSpace(name), AutoPolicy) {
		threshold := scheduler.DefaultRecommendThreshold
		if s.cfg.Auto != nil {
			threshold = s.cfg.Auto.Threshold
		}
		p := scheduler.Recommend(jobs, threshold)
		s.log.WithFields(logrus.Fields{"policy": p.String(), "jobs": len(jobs)}).Debug("policy selected automatically")
		return p, nil
	}
	return scheduler.ParsePolicy(name)
}

// Run schedules the current registry snapshot and renders the report.
func (s *Session) Run(policyName string) (*scheduler.Report, error) {
	jobs := s.registry.List()
	policy, err := s.ResolvePolicy(policyName, jobs)
	if err != nil {
		return nil, err
	}
	return s.run(jobs, policy)
}

// RunAll schedules the snapshot under every policy in turn.
func (s *Session) RunAll() ([]*scheduler.Report, error) {
	jobs := s.registry.List()
	reports := make([]*scheduler.Report, 0, len(scheduler.Policies()))
	for _, p := range scheduler.Policies() {
		r, err := s.run(jobs, p)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (s *Session) run(jobs []job.Job, policy scheduler.Policy) (*scheduler.Report, error) {
	report, err := scheduler.Schedule(jobs, policy)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", policy, err)
	}
	s.log.WithFields(logrus.Fields{
		"policy":         policy.String(),
		"jobs":           len(report.Results),
		"avg_turnaround": report.AverageTurnaround,
		"avg_waiting":    report.AverageWaiting,
	}).Info("schedule computed")

	if err := render.Write(s.out, policy.Title(), report, s.cfg.Output); err != nil {
		return report, err
	}
	return report, nil
}

// List renders the registered jobs.
func (s *Session) List() {
	render.Jobs(s.out, s.registry.List())
}

// Clear empties the registry.
func (s *Session) Clear() { s.registry.Clear() }

// Remove deletes the job with the given id.
func (s *Session) Remove(id string) bool { return s.registry.Remove(id) }
