package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"taskdash/internal/config"
	"taskdash/internal/credential"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command. It reads the stored credential
// only and never contacts the server.
type StatusCmd struct {
	now func() time.Time
}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"whoami"} }
func (c *StatusCmd) Synopsis() string  { return "Show login state" }
func (c *StatusCmd) Usage() string     { return "taskdash status" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

// SetClock sets the time source (for testing).
func (c *StatusCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	now := time.Now
	if c.now != nil {
		now = c.now
	}

	fmt.Fprintf(out, "backend:     %s\n", cfg.Backend)
	if cfg.Backend == config.BackendREST {
		fmt.Fprintf(out, "api:         %s\n", cfg.APIURL)
	}

	token, err := credentialStore(cfg).Get()
	if errors.Is(err, credential.ErrNoCredential) {
		fmt.Fprintln(out, "logged in:   no")
		return exitcode.Success
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	fmt.Fprintln(out, "logged in:   yes")
	info := credential.Inspect(token)
	if !info.JWT {
		fmt.Fprintln(out, "credential:  opaque")
		return exitcode.Success
	}
	if info.Subject != "" {
		fmt.Fprintf(out, "user:        %s\n", info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintln(out, "expires:     never")
	case info.Expired(now()):
		fmt.Fprintf(out, "expires:     %s (expired)\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	default:
		fmt.Fprintf(out, "expires:     %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return exitcode.Success
}
