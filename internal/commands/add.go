package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// addFlags are the fields of a new task given as flags.
type addFlags struct {
	description string
	status      string
	due         string
}

func (f *addFlags) register(fs *flag.FlagSet) {
	*f = addFlags{}
	fs.StringVar(&f.description, "description", "", "")
	fs.StringVar(&f.description, "d", "", "")
	fs.StringVar(&f.status, "status", "", "")
	fs.StringVar(&f.due, "due", "", "")
}

// AddCmd implements the add command.
type AddCmd struct {
	flags addFlags
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdash add [--description <text>] [--status <s>] [--due <date>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) { c.flags.register(fs) }

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return c.RunSession(ctx, cfg, newController(cfg, svc), args, out, errOut)
}

func (c *AddCmd) RunSession(ctx context.Context, cfg *config.Config, ctl *session.Controller, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, ctl, c.flags, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	flags addFlags
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return nil }
func (c *CreateCmd) Synopsis() string  { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string {
	return "taskdash create [--description <text>] [--status <s>] [--due <date>] <title...>"
}
func (c *CreateCmd) NeedsAuth() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) { c.flags.register(fs) }

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return c.RunSession(ctx, cfg, newController(cfg, svc), args, out, errOut)
}

func (c *CreateCmd) RunSession(ctx context.Context, cfg *config.Config, ctl *session.Controller, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, ctl, c.flags, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, cfg *config.Config, ctl *session.Controller, f addFlags, args []string, out, errOut io.Writer) int {
	draft := service.Draft{
		Title:       strings.TrimSpace(strings.Join(args, " ")),
		Description: f.description,
	}

	if f.status != "" {
		st, err := service.ParseStatus(f.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Status = st
	}

	due, err := parseDue(f.due)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	draft.DueDate = due

	if err := draft.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	res := ctl.Create(ctx, draft)
	if !notifier(cfg, out, errOut).Report(res) {
		return resultCode(res)
	}
	return exitcode.Success
}
