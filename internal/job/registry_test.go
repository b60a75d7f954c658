package job

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
}

func TestRegistryAddList(t *testing.T) {
	r := NewRegistry(WithIDGenerator(sequentialIDs()))

	if _, err := r.Add(Job{ID: "P1", ArrivalTime: 0, BurstTime: 5, Priority: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := r.Add(Job{ArrivalTime: 1, BurstTime: 3})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID != "job-1" {
		t.Errorf("assigned id = %q, want job-1", got.ID)
	}

	want := []Job{
		{ID: "P1", ArrivalTime: 0, BurstTime: 5, Priority: 2},
		{ID: "job-1", ArrivalTime: 1, BurstTime: 3},
	}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryAddLongID(t *testing.T) {
	r := NewRegistry()
	id := strings.Repeat("x", 200)
	got, err := r.Add(Job{ID: id, BurstTime: 1})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID != id {
		t.Errorf("id = %q, want the 200 character id unchanged", got.ID)
	}
}

func TestRegistryListIsSnapshot(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add(Job{ID: "P1", BurstTime: 1}); err != nil {
		t.Fatal(err)
	}
	snap := r.List()
	snap[0].BurstTime = 99
	if _, err := r.Add(Job{ID: "P2", BurstTime: 2}); err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1 {
		t.Errorf("snapshot grew to %d", len(snap))
	}
	if r.List()[0].BurstTime != 1 {
		t.Error("modifying snapshot changed registry")
	}
}

func TestRegistryAddInvalid(t *testing.T) {
	tests := []struct {
		name  string
		job   Job
		field string
	}{
		{"zero burst", Job{ID: "a", BurstTime: 0}, "burst_time"},
		{"negative burst", Job{ID: "b", BurstTime: -2}, "burst_time"},
		{"negative arrival", Job{ID: "c", ArrivalTime: -1, BurstTime: 1}, "arrival_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if _, err := r.Add(Job{ID: "keep", BurstTime: 1}); err != nil {
				t.Fatal(err)
			}

			_, err := r.Add(tt.job)
			var ije *InvalidJobError
			if !errors.As(err, &ije) {
				t.Fatalf("err = %v, want *InvalidJobError", err)
			}
			if ije.Field != tt.field {
				t.Errorf("field = %q, want %q", ije.Field, tt.field)
			}
			if r.Len() != 1 {
				t.Errorf("registry has %d jobs after failed add, want 1", r.Len())
			}
		})
	}
}

func TestRegistryAddFields(t *testing.T) {
	r := NewRegistry(WithIDGenerator(sequentialIDs()))

	got, err := r.AddFields("P1", "2", " 4 ", "")
	if err != nil {
		t.Fatalf("AddFields: %v", err)
	}
	if diff := cmp.Diff(Job{ID: "P1", ArrivalTime: 2, BurstTime: 4}, got); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}

	got, err = r.AddFields("-", "0", "1", "3")
	if err != nil {
		t.Fatalf("AddFields: %v", err)
	}
	if got.ID != "job-1" {
		t.Errorf("id = %q, want job-1", got.ID)
	}

	tests := []struct {
		arrival, burst, priority string
		field                    string
	}{
		{"", "1", "0", "arrival_time"},
		{"0", "", "0", "burst_time"},
		{"x", "1", "0", "arrival_time"},
		{"0", "1.5", "0", "burst_time"},
		{"0", "1", "high", "priority"},
		{"0", "0", "0", "burst_time"},
	}
	for _, tt := range tests {
		_, err := r.AddFields("bad", tt.arrival, tt.burst, tt.priority)
		var ije *InvalidJobError
		if !errors.As(err, &ije) || ije.Field != tt.field {
			t.Errorf("AddFields(%q, %q, %q) err = %v, want field %s", tt.arrival, tt.burst, tt.priority, err, tt.field)
		}
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestInvalidJobErrorUnwrap(t *testing.T) {
	_, err := Parse("P1", "soon", "1", "")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("err = %v, want wrapped *strconv.NumError", err)
	}
	want := `invalid job "P1": arrival_time must be an integer, got "soon"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRegistryUniqueIDs(t *testing.T) {
	loose := NewRegistry()
	for i := 0; i < 2; i++ {
		if _, err := loose.Add(Job{ID: "dup", BurstTime: 1}); err != nil {
			t.Fatalf("Add without uniqueness: %v", err)
		}
	}

	strict := NewRegistry(WithUniqueIDs())
	if _, err := strict.Add(Job{ID: "dup", BurstTime: 1}); err != nil {
		t.Fatal(err)
	}
	_, err := strict.Add(Job{ID: "dup", BurstTime: 2})
	var ije *InvalidJobError
	if !errors.As(err, &ije) || ije.Field != "id" {
		t.Fatalf("err = %v, want id conflict", err)
	}
	if strict.Len() != 1 {
		t.Errorf("Len = %d, want 1", strict.Len())
	}
}

func TestRegistryRemoveClear(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := r.Add(Job{ID: id, BurstTime: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if !r.Remove("b") {
		t.Error("Remove(b) = false")
	}
	if r.Remove("missing") {
		t.Error("Remove(missing) = true")
	}
	want := []Job{{ID: "a", BurstTime: 1}, {ID: "c", BurstTime: 1}}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	r.Clear()
	if r.Len() != 0 || len(r.List()) != 0 {
		t.Errorf("registry not empty after Clear")
	}
}

func TestShortID(t *testing.T) {
	a, b := ShortID(), ShortID()
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("ShortID lengths %d, %d, want 8", len(a), len(b))
	}
	if a == b {
		t.Errorf("ShortID returned %q twice", a)
	}
}
