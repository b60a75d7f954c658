package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/bbajagain1/printsched/internal/job"
	"github.com/bbajagain1/printsched/internal/scheduler"
)

// Output formats accepted by Write.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Write outputs the report in the given format. The table format prints a
// title banner, a Gantt chart and the schedule table.
func Write(w io.Writer, title string, r *scheduler.Report, format string) error {
	switch strings.ToLower(format) {
	case FormatTable, "":
		Title(w, title)
		Gantt(w, r)
		Table(w, r)
		return nil
	case FormatJSON:
		return JSON(w, r)
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatTable, FormatJSON)
	}
}

// Title prints title between two dashed rules.
func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

type slice struct {
	label       string
	start, stop int64
}

func timeline(r *scheduler.Report) []slice {
	var (
		slices []slice
		clock  int64
	)
	for _, res := range r.Results {
		if res.StartTime > clock {
			slices = append(slices, slice{label: "idle", start: clock, stop: res.StartTime})
		}
		slices = append(slices, slice{label: res.ID, start: res.StartTime, stop: res.CompletionTime})
		clock = res.CompletionTime
	}
	return slices
}

// Gantt prints a one line chart of the execution order with start times
// beneath each cell.
func Gantt(w io.Writer, r *scheduler.Report) {
	gantt := timeline(r)

	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for i := range gantt {
		padding := strings.Repeat(" ", max(0, 8-len(gantt[i].label))/2)
		_, _ = fmt.Fprint(w, padding, gantt[i].label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i := range gantt {
		_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].start), "\t")
		if len(gantt)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].stop))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// Table prints the per-job timings with averages in the footer.
func Table(w io.Writer, r *scheduler.Report) {
	rows := make([][]string, len(r.Results))
	for i, res := range r.Results {
		rows[i] = []string{
			res.ID,
			fmt.Sprint(res.ArrivalTime),
			fmt.Sprint(res.BurstTime),
			fmt.Sprint(res.Priority),
			fmt.Sprint(res.StartTime),
			fmt.Sprint(res.CompletionTime),
			fmt.Sprint(res.TurnaroundTime),
			fmt.Sprint(res.WaitingTime),
		}
	}

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Start", "Completion", "Turnaround", "Wait"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Throughput\n%.2f/t", r.Throughput),
		fmt.Sprintf("Average\n%.2f", r.AverageTurnaround),
		fmt.Sprintf("Average\n%.2f", r.AverageWaiting)})
	table.Render()
}

// Jobs prints the registered jobs in submission order.
func Jobs(w io.Writer, jobs []job.Job) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "ID", "Arrival", "Burst", "Priority"})
	for i, j := range jobs {
		table.Append([]string{
			fmt.Sprint(i + 1),
			j.ID,
			fmt.Sprint(j.ArrivalTime),
			fmt.Sprint(j.BurstTime),
			fmt.Sprint(j.Priority),
		})
	}
	table.Render()
}

// JSON prints the report as indented JSON.
func JSON(w io.Writer, r *scheduler.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
