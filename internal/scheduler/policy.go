package scheduler

import (
	"fmt"
	"strings"

	"github.com/bbajagain1/printsched/internal/job"
)

// Policy selects which eligible job runs next at a decision point.
type Policy int

const (
	// FCFS runs jobs in arrival order.
	FCFS Policy = iota + 1
	// SJF runs the eligible job with the shortest burst.
	SJF
	// Priority runs the eligible job with the smallest priority value.
	Priority
)

// DefaultRecommendThreshold is the queue length up to which Recommend keeps FCFS.
const DefaultRecommendThreshold = 3

// Policies lists every supported policy in display order.
func Policies() []Policy {
	return []Policy{FCFS, SJF, Priority}
}

func (p Policy) String() string {
	switch p {
	case FCFS:
		return "FCFS"
	case SJF:
		return "SJF"
	case Priority:
		return "Priority"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Title is the long display name of the policy.
func (p Policy) Title() string {
	switch p {
	case FCFS:
		return "First-come, first-served"
	case SJF:
		return "Shortest-job-first"
	case Priority:
		return "Priority"
	default:
		return p.String()
	}
}

// Valid reports whether p is one of the supported policies.
func (p Policy) Valid() bool {
	return p >= FCFS && p <= Priority
}

// ParsePolicy maps a case-insensitive policy name to its Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs":
		return FCFS, nil
	case "sjf":
		return SJF, nil
	case "priority", "prio":
		return Priority, nil
	default:
		return 0, &UnknownPolicyError{Name: s}
	}
}

// MarshalText encodes p by name and rejects unsupported values.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &UnknownPolicyError{Policy: p}
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name accepted by ParsePolicy.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// key returns the value the policy minimises at a decision point.
func (p Policy) key() (func(job.Job) int64, error) {
	switch p {
	case FCFS:
		return func(j job.Job) int64 { return j.ArrivalTime }, nil
	case SJF:
		return func(j job.Job) int64 { return j.BurstTime }, nil
	case Priority:
		return func(j job.Job) int64 { return j.Priority }, nil
	default:
		return nil, &UnknownPolicyError{Policy: p}
	}
}

// Recommend picks a policy for the queue the way the print manager switches
// algorithms: FCFS while the queue holds at most threshold jobs, SJF beyond
// that. A threshold below zero uses DefaultRecommendThreshold.
func Recommend(jobs []job.Job, threshold int) Policy {
	if threshold < 0 {
		threshold = DefaultRecommendThreshold
	}
	if len(jobs) <= threshold {
		return FCFS
	}
	return SJF
}
