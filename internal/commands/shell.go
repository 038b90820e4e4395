package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

// ShellPrompt is printed before each line unless quiet.
const ShellPrompt = "taskdash> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the shell command: one session controller kept for
// the lifetime of the shell, fed one command per input line. The shell
// ends on quit, at end of input, or when ctx is cancelled (an interrupt);
// the latter two return the exit code of the last command.
type ShellCmd struct {
	registry *Registry
	in       io.Reader
}

// SetInput sets the line source (for testing). Defaults to stdin.
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

// SetRegistry sets the registry commands are looked up in (for testing).
// Defaults to DefaultRegistry.
func (c *ShellCmd) SetRegistry(r *Registry) {
	c.registry = r
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Run commands against one live session" }
func (c *ShellCmd) Usage() string     { return "taskdash shell" }
func (c *ShellCmd) NeedsAuth() bool   { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	ctl := session.New(svc, session.WithLogger(cfg.Log()), session.WithSequencing())

	res := ctl.Refresh(ctx)
	if !notifier(cfg, out, errOut).Report(res) {
		if service.KindOf(res.Err) == service.AuthenticationRejected {
			return exitcode.AuthError
		}
	} else {
		output.FormatTasks(out, ctl.Tasks(), cfg.Quiet)
	}

	last := exitcode.Success
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)
	for {
		if !cfg.Quiet {
			fmt.Fprint(out, ShellPrompt)
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			if !cfg.Quiet {
				fmt.Fprintln(out)
			}
			return last
		case line, ok = <-lines:
		}
		if !ok {
			break
		}

		fields, err := splitLine(line)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			last = exitcode.UserError
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return exitcode.Success
		case "help", "?":
			shellHelp(registry, out)
			last = exitcode.Success
			continue
		}

		last = c.dispatch(ctx, cfg, registry, ctl, fields, out, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out)
	}
	if err := <-readErr; err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return last
}

// readLines scans r on its own goroutine so a blocked read never holds up
// cancellation. lines is closed at end of input, after which readErr
// yields the scan error, if any. Closing done stops delivery; a read
// still blocked at that point is abandoned.
func readLines(r io.Reader, done <-chan struct{}) (lines <-chan string, readErr <-chan error) {
	lc := make(chan string)
	ec := make(chan error, 1)
	go func() {
		defer close(lc)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lc <- scanner.Text():
			case <-done:
				return
			}
		}
		ec <- scanner.Err()
	}()
	return lc, ec
}

// dispatch runs one shell line and returns its exit code.
func (c *ShellCmd) dispatch(ctx context.Context, cfg *config.Config, registry *Registry, ctl *session.Controller, fields []string, out, errOut io.Writer) int {
	cmd, ok := registry.FindSession(fields[0])
	if !ok {
		if _, exists := registry.Find(fields[0]); exists {
			fmt.Fprintf(errOut, "error: %s is not available in the shell\n", fields[0])
		} else {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", fields[0])
		}
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(fields[1:]); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	return cmd.RunSession(ctx, cfg, ctl, fs.Args(), out, errOut)
}

func shellHelp(registry *Registry, out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range registry.Sessions() {
		fmt.Fprintf(out, "  %-8s %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprintf(out, "  %-8s %s\n", "quit", "Leave the shell")
}

var errUnterminatedQuote = errors.New("unterminated quote or escape")

// splitLine splits a shell line into words. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitLine(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
