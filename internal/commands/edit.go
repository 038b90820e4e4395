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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The task's current fields are
// submitted with the flagged ones replaced, since the backend expects a
// full draft.
type EditCmd struct {
	title       optionalString
	description optionalString
	status      optionalString
	due         optionalString
	clearDue    bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskdash edit [--title <t>] [--description <text>] [--status <s>] [--due <date>] [--clear-due] <ref> [title...]"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.due, "due", "")
	fs.BoolVar(&c.clearDue, "clear-due", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return c.RunSession(ctx, cfg, newController(cfg, svc), args, out, errOut)
}

func (c *EditCmd) RunSession(ctx context.Context, cfg *config.Config, ctl *session.Controller, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.title.set && len(rest) > 0 {
		fmt.Fprintln(errOut, "error: cannot use both --title and a positional title")
		return exitcode.UserError
	}
	if c.due.set && c.clearDue {
		fmt.Fprintln(errOut, "error: cannot use both --due and --clear-due")
		return exitcode.UserError
	}

	var status service.Status
	if c.status.set {
		if status, err = service.ParseStatus(c.status.value); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	task, failed, err := lookupTask(ctx, ctl, ref)
	if code, done := lookupFailed(cfg, failed, err, out, errOut); done {
		return code
	}

	draft := task.Draft()
	changed := false
	if c.title.set {
		draft.Title = c.title.value
		changed = true
	}
	if len(rest) > 0 {
		draft.Title = strings.Join(rest, " ")
		changed = true
	}
	if c.description.set {
		draft.Description = c.description.value
		changed = true
	}
	if c.status.set {
		draft.Status = status
		changed = true
	}
	if c.due.set {
		due, err := parseDue(c.due.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = due
		changed = true
	}
	if c.clearDue {
		draft.DueDate = nil
		changed = true
	}

	if !changed {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	if err := draft.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	res := ctl.Update(ctx, task.ID, draft)
	if !notifier(cfg, out, errOut).Report(res) {
		return resultCode(res)
	}
	return exitcode.Success
}
