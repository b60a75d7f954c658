package scheduler

import (
	"fmt"
	"math"
	"sort"

	"github.com/bbajagain1/printsched/internal/job"
)

type (
	// Result is the computed timing of one job.
	Result struct {
		job.Job
		StartTime      int64 `json:"start_time"`
		CompletionTime int64 `json:"completion_time"`
		TurnaroundTime int64 `json:"turnaround_time"`
		WaitingTime    int64 `json:"waiting_time"`
	}

	// Report is the outcome of one scheduling run. Results are in execution
	// order.
	Report struct {
		Policy            Policy   `json:"policy"`
		Results           []Result `json:"results"`
		AverageTurnaround float64  `json:"average_turnaround_time"`
		AverageWaiting    float64  `json:"average_waiting_time"`
		TotalTime         int64    `json:"total_time"`
		IdleTime          int64    `json:"idle_time"`
		Throughput        float64  `json:"throughput"`
	}
)

// Schedule computes the non-preemptive schedule of jobs under policy. At
// every point the processor is free, the eligible job with the smallest
// policy key runs next; ties go to the earliest arrival, then to submission
// order. jobs is not modified.
func Schedule(jobs []job.Job, policy Policy) (*Report, error) {
	key, err := policy.key()
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrEmptyQueue
	}
	for i := range jobs {
		if err := jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
	}

	// pending holds submission indexes ordered by arrival, so the eligible
	// jobs are always a prefix of it.
	pending := make([]int, len(jobs))
	for i := range pending {
		pending[i] = i
	}
	sort.SliceStable(pending, func(a, b int) bool {
		return jobs[pending[a]].ArrivalTime < jobs[pending[b]].ArrivalTime
	})

	var (
		currentTime     int64
		idleTime        int64
		totalWait       float64
		totalTurnaround float64
		results         = make([]Result, 0, len(jobs))
	)
	for len(pending) > 0 {
		if first := jobs[pending[0]]; first.ArrivalTime > currentTime {
			idleTime += first.ArrivalTime - currentTime
			currentTime = first.ArrivalTime
			continue
		}

		next := 0
		for i := 1; i < len(pending) && jobs[pending[i]].ArrivalTime <= currentTime; i++ {
			if key(jobs[pending[i]]) < key(jobs[pending[next]]) {
				next = i
			}
		}

		j := jobs[pending[next]]
		pending = append(pending[:next], pending[next+1:]...)

		if j.BurstTime > math.MaxInt64-currentTime {
			return nil, fmt.Errorf("job %q at %d: %w", j.ID, currentTime, ErrTimeOverflow)
		}
		completion := currentTime + j.BurstTime
		turnaround := completion - j.ArrivalTime
		waiting := turnaround - j.BurstTime
		results = append(results, Result{
			Job:            j,
			StartTime:      currentTime,
			CompletionTime: completion,
			TurnaroundTime: turnaround,
			WaitingTime:    waiting,
		})
		totalTurnaround += float64(turnaround)
		totalWait += float64(waiting)
		currentTime = completion
	}

	count := float64(len(results))
	return &Report{
		Policy:            policy,
		Results:           results,
		AverageTurnaround: totalTurnaround / count,
		AverageWaiting:    totalWait / count,
		TotalTime:         currentTime,
		IdleTime:          idleTime,
		Throughput:        count / float64(currentTime),
	}, nil
}
