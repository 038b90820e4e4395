package commands

import (
	"context"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

// errTaskNotFound reports a reference that matched nothing, even after a refresh.
type errTaskNotFound struct{ ref TaskRef }

func (e errTaskNotFound) Error() string {
	if e.ref.IsNum() {
		return fmt.Sprintf("task number out of range: %d", e.ref.Num)
	}
	return fmt.Sprintf("task not found: %s", e.ref.ID)
}

// lookupTask resolves ref against the controller's list. A miss triggers
// one refresh before giving up, so a fresh controller (one-shot commands)
// or a stale one (shell) both resolve against server state.
// A failed refresh is returned as a session result error.
func lookupTask(ctx context.Context, ctl *session.Controller, ref TaskRef) (service.Task, *session.Result, error) {
	if task, ok := find(ctl, ref); ok {
		return task, nil, nil
	}

	res := ctl.Refresh(ctx)
	if !res.OK() {
		return service.Task{}, &res, nil
	}

	if task, ok := find(ctl, ref); ok {
		return task, nil, nil
	}
	return service.Task{}, nil, errTaskNotFound{ref: ref}
}

func find(ctl *session.Controller, ref TaskRef) (service.Task, bool) {
	if ref.IsNum() {
		return ctl.At(ref.Num)
	}
	return ctl.Find(ref.ID)
}

// lookupFailed reports a failed lookupTask and returns its exit code.
// done is false when the lookup succeeded.
func lookupFailed(cfg *config.Config, failed *session.Result, err error, out, errOut io.Writer) (code int, done bool) {
	if failed != nil {
		notifier(cfg, out, errOut).Report(*failed)
		return resultCode(*failed), true
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError, true
	}
	return exitcode.Success, false
}
