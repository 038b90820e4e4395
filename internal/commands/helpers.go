package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdash/internal/config"
	"taskdash/internal/credential"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

// newController creates the session controller for one-shot commands.
func newController(cfg *config.Config, svc service.Service) *session.Controller {
	return session.New(svc, session.WithLogger(cfg.Log()))
}

func notifier(cfg *config.Config, out, errOut io.Writer) output.Notifier {
	return output.Notifier{Out: out, ErrOut: errOut, Quiet: cfg.Quiet}
}

func credentialStore(cfg *config.Config) *credential.FileStore {
	return credential.NewFileStore(cfg.TokenPath())
}

// exitCodeFor maps a backend failure to an exit code.
func exitCodeFor(err error) int {
	switch service.KindOf(err) {
	case service.AuthenticationRejected:
		return exitcode.AuthError
	case service.ValidationRejected:
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// resultCode is the exit code of a reported session result.
func resultCode(r session.Result) int {
	if !r.OK() {
		return exitCodeFor(r.Err)
	}
	if r.Refresh != nil && !r.Refresh.OK() {
		return exitCodeFor(r.Refresh.Err)
	}
	return exitcode.Success
}

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDue parses a due date given on the command line. Values without a
// zone are local time.
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	for _, layout := range dueLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date: %s (use YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
}

// optionalString is a string flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}
