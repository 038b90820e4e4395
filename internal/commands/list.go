package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	local bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskdash list [--local]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.local = false
	fs.BoolVar(&c.local, "local", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return c.RunSession(ctx, cfg, newController(cfg, svc), args, out, errOut)
}

func (c *ListCmd) RunSession(ctx context.Context, cfg *config.Config, ctl *session.Controller, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if !c.local {
		res := ctl.Refresh(ctx)
		if !notifier(cfg, out, errOut).Report(res) {
			return resultCode(res)
		}
	}

	output.FormatTasks(out, ctl.Tasks(), cfg.Quiet)
	return exitcode.Success
}
