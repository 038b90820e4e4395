package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskdash done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return c.RunSession(ctx, cfg, newController(cfg, svc), args, out, errOut)
}

func (c *DoneCmd) RunSession(ctx context.Context, cfg *config.Config, ctl *session.Controller, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	task, failed, err := lookupTask(ctx, ctl, ref)
	if code, done := lookupFailed(cfg, failed, err, out, errOut); done {
		return code
	}

	if task.Status == service.StatusCompleted {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already completed")
		}
		return exitcode.Success
	}

	draft := task.Draft()
	draft.Status = service.StatusCompleted

	res := ctl.Update(ctx, task.ID, draft)
	if !notifier(cfg, out, errOut).Report(res) {
		return resultCode(res)
	}
	return exitcode.Success
}
