package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrQuit is returned by Exec when the user ends the session.
var ErrQuit = errors.New("quit")

const usage = `commands:
  add <id> <arrival> <burst> [priority]   register a job ("-" as id assigns one)
  run [fcfs|sjf|priority|auto]            schedule the registered jobs
  all                                     schedule under every policy
  list                                    show registered jobs
  remove <id>                             drop a job
  clear                                   drop every job
  help                                    show this help
  quit                                    leave the shell
`

// Exec runs one shell line.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "add":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("usage: add <id> <arrival> <burst> [priority]")
		}
		var priority string
		if len(args) == 4 {
			priority = args[3]
		}
		j, err := s.Add(args[0], args[1], args[2], priority)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "added %s (arrival %d, burst %d, priority %d)\n", j.ID, j.ArrivalTime, j.BurstTime, j.Priority)
	case "run":
		if len(args) > 1 {
			return fmt.Errorf("usage: run [policy]")
		}
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		_, err := s.Run(name)
		return err
	case "all":
		_, err := s.RunAll()
		return err
	case "list", "ls":
		s.List()
	case "remove", "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <id>")
		}
		if !s.Remove(args[0]) {
			return fmt.Errorf("no job %q", args[0])
		}
		_, _ = fmt.Fprintf(s.out, "removed %s\n", args[0])
	case "clear":
		s.Clear()
		_, _ = fmt.Fprintln(s.out, "registry cleared")
	case "help", "?":
		_, _ = fmt.Fprint(s.out, usage)
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

// Serve reads commands from in until EOF, quit, or ctx is done. Command
// errors are printed and the loop goes on.
func (s *Session) Serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			_, _ = fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		err := s.Exec(scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			s.log.WithError(err).Debug("command failed")
			_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}
