package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bbajagain1/printsched/internal/config"
	"github.com/bbajagain1/printsched/internal/job"
	"github.com/bbajagain1/printsched/internal/scheduler"
)

func newSession(t *testing.T, mutate func(*config.Config)) (*Session, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	var out bytes.Buffer
	return New(cfg, &out), &out
}

func ids(r *scheduler.Report) []string {
	var out []string
	for _, res := range r.Results {
		out = append(out, res.ID)
	}
	return out
}

func TestRunEmptyQueue(t *testing.T) {
	s, _ := newSession(t, nil)
	_, err := s.Run("fcfs")
	if !errors.Is(err, scheduler.ErrEmptyQueue) {
		t.Fatalf("err = %v, want ErrEmptyQueue", err)
	}
}

func TestRunDefaultPolicy(t *testing.T) {
	s, out := newSession(t, func(c *config.Config) { c.Policy = "sjf" })
	for _, row := range [][]string{{"P1", "0", "7"}, {"P2", "2", "4"}, {"P3", "4", "1"}} {
		if _, err := s.Add(row[0], row[1], row[2], ""); err != nil {
			t.Fatal(err)
		}
	}

	r, err := s.Run("")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Policy != scheduler.SJF {
		t.Errorf("policy = %s, want SJF", r.Policy)
	}
	if diff := cmp.Diff([]string{"P1", "P3", "P2"}, ids(r)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Shortest-job-first") {
		t.Errorf("output missing title:\n%s", out.String())
	}
}

func TestRunAuto(t *testing.T) {
	s, _ := newSession(t, func(c *config.Config) { c.Auto.Threshold = 2 })
	add := func(id, burst string) {
		t.Helper()
		if _, err := s.Add(id, "0", burst, ""); err != nil {
			t.Fatal(err)
		}
	}
	add("long", "9")
	add("short", "1")

	r, err := s.Run("auto")
	if err != nil {
		t.Fatal(err)
	}
	if r.Policy != scheduler.FCFS {
		t.Errorf("policy with 2 jobs = %s, want FCFS", r.Policy)
	}

	add("tiny", "1")
	r, err = s.Run("AUTO")
	if err != nil {
		t.Fatal(err)
	}
	if r.Policy != scheduler.SJF {
		t.Errorf("policy with 3 jobs = %s, want SJF", r.Policy)
	}
}

func TestRunUnknownPolicy(t *testing.T) {
	s, _ := newSession(t, nil)
	if _, err := s.Add("P1", "0", "1", ""); err != nil {
		t.Fatal(err)
	}
	_, err := s.Run("lottery")
	var upe *scheduler.UnknownPolicyError
	if !errors.As(err, &upe) {
		t.Fatalf("err = %v, want *UnknownPolicyError", err)
	}
}

func TestRunAllJSON(t *testing.T) {
	s, out := newSession(t, func(c *config.Config) { c.Output = "json" })
	if _, err := s.Add("P1", "0", "3", "2"); err != nil {
		t.Fatal(err)
	}
	reports, err := s.RunAll()
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for _, name := range []string{`"FCFS"`, `"SJF"`, `"Priority"`} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("output missing %s", name)
		}
	}
}

func TestLoad(t *testing.T) {
	s, _ := newSession(t, nil)
	n, err := s.Load(strings.NewReader("id,arrival,burst\nP1,0,5\nP2,1,0\nP3,x,2\nP4,2,8\n"))
	if n != 2 {
		t.Errorf("added %d rows, want 2", n)
	}
	if err == nil {
		t.Fatal("Load returned no error for invalid rows")
	}
	var ije *job.InvalidJobError
	if !errors.As(err, &ije) {
		t.Errorf("err = %v, want *job.InvalidJobError inside", err)
	}
	for _, want := range []string{"line 3", "line 4"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %v, want mention of %s", err, want)
		}
	}

	var got []string
	for _, j := range s.Registry().List() {
		got = append(got, j.ID)
	}
	if diff := cmp.Diff([]string{"P1", "P4"}, got); diff != "" {
		t.Errorf("registry mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueIDsFromConfig(t *testing.T) {
	s, _ := newSession(t, func(c *config.Config) { c.Registry.UniqueIDs = true })
	if _, err := s.Add("P1", "0", "1", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("P1", "1", "1", ""); err == nil {
		t.Error("duplicate id accepted with unique_ids enabled")
	}
}

func TestServe(t *testing.T) {
	var out bytes.Buffer
	n := 0
	s := New(config.Default(), &out, WithRegistryOptions(job.WithIDGenerator(func() string {
		n++
		return "auto-1"
	})))

	script := strings.Join([]string{
		"help",
		"run",
		"add P1 0 5",
		"add P2 1 3 1",
		"add P3 2 -8",
		"add - 2 8",
		"bogus",
		"list",
		"run fcfs",
		"remove P2",
		"remove P2",
		"clear",
		"quit",
		"add never 0 1",
	}, "\n")

	if err := s.Serve(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"commands:",
		"error: schedule FCFS: no jobs to schedule",
		"added P1 (arrival 0, burst 5, priority 0)",
		"added P2 (arrival 1, burst 3, priority 1)",
		`error: invalid job "P3": burst_time must be greater than 0`,
		"added auto-1 (arrival 2, burst 8, priority 0)",
		`error: unknown command "bogus", try help`,
		"8.67",
		"removed P2",
		`error: no job "P2"`,
		"registry cleared",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never") {
		t.Error("commands after quit were executed")
	}
	if s.Registry().Len() != 0 {
		t.Errorf("registry has %d jobs after clear", s.Registry().Len())
	}
	if n != 1 {
		t.Errorf("id generator called %d times, want 1", n)
	}
}

func TestServeCancelled(t *testing.T) {
	s, _ := newSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Serve(ctx, strings.NewReader("add P1 0 1\n")); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s.Registry().Len() != 0 {
		t.Error("command ran after cancellation")
	}
}
