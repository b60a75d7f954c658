package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbajagain1/printsched/internal/session"
)

type inputFlags struct {
	file string
	jobs []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "CSV file of jobs (id,arrival,burst[,priority]); - reads stdin")
	cmd.Flags().StringArrayVarP(&f.jobs, "job", "j", nil, "job as id,arrival,burst[,priority]; repeatable")
}

// load fills the session from the file and job flags. Rejected jobs are
// reported to errOut and skipped.
func (f *inputFlags) load(s *session.Session, in io.Reader, errOut io.Writer) error {
	if f.file != "" {
		r := in
		if f.file != "-" {
			file, err := os.Open(f.file)
			if err != nil {
				return fmt.Errorf("open job file: %w", err)
			}
			defer file.Close()
			r = file
		}
		if _, err := s.Load(r); err != nil {
			var joined interface{ Unwrap() []error }
			if !errors.As(err, &joined) {
				return err
			}
			for _, e := range joined.Unwrap() {
				_, _ = fmt.Fprintf(errOut, "skipped: %v\n", e)
			}
		}
	}

	for _, raw := range f.jobs {
		parts := strings.Split(raw, ",")
		if len(parts) < 3 || len(parts) > 4 {
			_, _ = fmt.Fprintf(errOut, "skipped: job %q: want id,arrival,burst[,priority]\n", raw)
			continue
		}
		parts = append(parts, "")
		if _, err := s.Add(parts[0], parts[1], parts[2], parts[3]); err != nil {
			_, _ = fmt.Fprintf(errOut, "skipped: %v\n", err)
		}
	}
	return nil
}

func newRunCommand(a *app) *cobra.Command {
	var (
		input inputFlags
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Schedule a batch of jobs and print the result",
		Example: `  printsched run -f jobs.csv -p sjf
  printsched run -j P1,0,5 -j P2,1,3 -j P3,2,8
  printsched run -f jobs.csv --all -o json`,
		Args: cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			s := a.newSession(cmd.OutOrStdout())
			if err := input.load(s, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if all {
				_, err := s.RunAll()
				return err
			}
			_, err := s.Run("")
			return err
		}),
	}
	input.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "run every policy")
	return cmd
}
