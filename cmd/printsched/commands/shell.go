package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bbajagain1/printsched/internal/session"
)

// errShellStdin rejects "-f -": the shell reads its commands from stdin.
var errShellStdin = errors.New("shell cannot preload jobs from stdin, use run -f - instead")

func newShellCommand(a *app) *cobra.Command {
	var (
		file   string
		prompt string
	)
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Add jobs and run schedules interactively",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			if file == "-" {
				return errShellStdin
			}
			s := a.newSession(cmd.OutOrStdout(), session.WithPrompt(prompt))
			if file != "" {
				input := inputFlags{file: file}
				if err := input.load(s, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			return s.Serve(cmd.Context(), cmd.InOrStdin())
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file of jobs to preload")
	cmd.Flags().StringVar(&prompt, "prompt", "printsched> ", "prompt printed before each command")
	return cmd
}
