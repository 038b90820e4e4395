package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdash help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdash                                      List tasks
  taskdash list [common flags] [--local]
  taskdash add [common flags] [--description <text>] [--status <s>] [--due <date>] <title...>
  taskdash create [common flags] [--description <text>] [--status <s>] [--due <date>] <title...>
  taskdash edit [common flags] [--title <t>] [--description <text>] [--status <s>]
                [--due <date>] [--clear-due] <ref> [title...]
  taskdash done [common flags] <ref>
  taskdash rm [common flags] <ref>
  taskdash show [common flags] <ref>
  taskdash login [common flags] [--email <e>] [--password <p>] [email]
  taskdash register [common flags] --name <name> --email <e> [--password <p>]
  taskdash logout [common flags]
  taskdash status [common flags]
  taskdash shell [common flags]
  taskdash help
  taskdash version

Task references:
  <n>        Position in the list as last printed (1-based)
  <id>       Task id; use id:<id> for an all-digit id

Statuses: pending, in_progress, completed
Dates: YYYY-MM-DD, YYYY-MM-DDTHH:MM (local time) or RFC 3339

Common flags:
  --config <dir>    Override config directory
  --api <url>       REST API base URL (env TASKDASH_API_URL)
  --backend <name>  rest or google (env TASKDASH_BACKEND)
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr

Password may also be given in TASKDASH_PASSWORD.
`
