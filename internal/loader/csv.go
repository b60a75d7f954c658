// Package loader reads job rows from CSV.
//
// Each record is id, arrival_time, burst_time and an optional priority. A
// header row naming the columns may come first, in which case the columns
// can appear in any order.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a header row lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Row is one job record as read from the file. Fields are not validated.
type Row struct {
	Line     int
	ID       string
	Arrival  string
	Burst    string
	Priority string
}

type columns struct {
	id, arrival, burst, priority int
}

var defaultColumns = columns{id: 0, arrival: 1, burst: 2, priority: 3}

var aliases = map[string]string{
	"id":           "id",
	"pid":          "id",
	"process_id":   "id",
	"job_id":       "id",
	"arrival":      "arrival",
	"arrival_time": "arrival",
	"burst":        "burst",
	"burst_time":   "burst",
	"priority":     "priority",
}

// LoadJobs reads every row from r.
func LoadJobs(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows   []Row
		cols   = defaultColumns
		header = true
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if header {
			header = false
			if isHeader(rec) {
				if cols, err = parseHeader(rec); err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				continue
			}
		}

		rows = append(rows, Row{
			Line:     line,
			ID:       field(rec, cols.id),
			Arrival:  field(rec, cols.arrival),
			Burst:    field(rec, cols.burst),
			Priority: field(rec, cols.priority),
		})
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// isHeader reports whether rec names columns instead of holding a job.
func isHeader(rec []string) bool {
	v := field(rec, defaultColumns.arrival)
	if v == "" {
		return false
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return false
	}
	for _, name := range rec {
		if aliases[strings.ToLower(strings.TrimSpace(name))] != "" {
			return true
		}
	}
	return false
}

func parseHeader(rec []string) (columns, error) {
	cols := columns{id: -1, arrival: -1, burst: -1, priority: -1}
	for i, name := range rec {
		switch aliases[strings.ToLower(strings.TrimSpace(name))] {
		case "id":
			cols.id = i
		case "arrival":
			cols.arrival = i
		case "burst":
			cols.burst = i
		case "priority":
			cols.priority = i
		}
	}
	switch {
	case cols.arrival < 0:
		return cols, fmt.Errorf("%w: arrival_time", ErrMissingColumn)
	case cols.burst < 0:
		return cols, fmt.Errorf("%w: burst_time", ErrMissingColumn)
	}
	return cols, nil
}
