package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/bbajagain1/printsched/internal/config"
	"github.com/bbajagain1/printsched/internal/logging"
	"github.com/bbajagain1/printsched/internal/session"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	cleanup func()
}

func (a *app) newSession(out io.Writer, opts ...session.Option) *session.Session {
	opts = append([]session.Option{session.WithLogger(a.log.Entry())}, opts...)
	return session.New(a.cfg, out, opts...)
}

// runE wraps a subcommand so the logger is released whether or not fn fails.
// cobra skips PersistentPostRun after an error.
func (a *app) runE(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.cleanup()
		return fn(cmd, args)
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{cleanup: func() {}}
	var confPath string

	// Define root command
	rootCmd := &cobra.Command{
		Use:           "printsched",
		Short:         "Visualize FCFS, SJF and priority scheduling of a print queue",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(confPath, cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.StdLogger()
			log.SetVersion(Version)
			cleanup, err := log.Init(cfg.Logger)
			if err != nil {
				return err
			}
			a.cfg, a.log, a.cleanup = cfg, log, cleanup
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&confPath, "conf", "", "config file (default: printsched.yaml in ., $HOME/.printsched or /etc/printsched)")
	flags.StringP("policy", "p", "fcfs", "scheduling policy: fcfs, sjf, priority or auto")
	flags.StringP("output", "o", "table", "output format: table or json")
	flags.Int("log-level", 3, "log level, 0 (panic) to 6 (trace)")
	flags.Bool("unique", false, "reject jobs whose id is already registered")

	// Add subcommands
	rootCmd.AddCommand(
		newRunCommand(a),
		newShellCommand(a),
		NewVersionCommand(),
	)

	return rootCmd
}
