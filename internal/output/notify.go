package output

import (
	"fmt"
	"io"

	"taskdash/internal/session"
)

// SuccessMessages are shown after a successful operation.
var SuccessMessages = map[session.Op]string{
	session.OpCreate: "Task added!",
	session.OpUpdate: "Task updated!",
	session.OpDelete: "Task deleted successfully!",
}

// Notifier turns operation results into user-facing lines.
// Success goes to Out and is dropped when Quiet; failures go to ErrOut.
type Notifier struct {
	Out    io.Writer
	ErrOut io.Writer
	Quiet  bool
}

// Success prints msg unless quiet.
func (n Notifier) Success(msg string) {
	if n.Quiet || msg == "" {
		return
	}
	fmt.Fprintln(n.Out, msg)
}

// Failure prints "error: msg".
func (n Notifier) Failure(msg string) {
	fmt.Fprintf(n.ErrOut, "error: %s\n", msg)
}

// Report emits the messages for r and reports whether everything,
// including a delete's follow-up refresh, succeeded.
func (n Notifier) Report(r session.Result) bool {
	if !r.OK() {
		n.Failure(r.Message())
		return false
	}
	n.Success(SuccessMessages[r.Op])
	if r.Refresh != nil && !r.Refresh.OK() {
		n.Failure(r.Refresh.Message())
		return false
	}
	return true
}
