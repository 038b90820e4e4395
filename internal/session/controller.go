// Package session keeps the in-memory task list of one logged-in user in
// step with the backend.
//
// Each operation reconciles the local list according to a fixed policy:
//
//	refresh  ReplaceAll    list := server sequence
//	create   AppendServer  list += server-returned task
//	update   EchoDraft     matching entry := submitted draft
//	delete   Refetch       list := fresh refresh
//
// Update echoes what was sent instead of what the server
// stored, while create and delete take the server's word. Failed calls
// never touch the list.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"taskdash/internal/logging"
	"taskdash/internal/service"
)

// Op names a controller operation.
type Op string

const (
	OpRefresh Op = "refresh"
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

// Reconcile is the way an operation folds its result into the local list.
type Reconcile int

const (
	// ReplaceAll swaps the list for the server's sequence.
	ReplaceAll Reconcile = iota
	// AppendServer appends the task the server returned.
	AppendServer
	// EchoDraft replaces the entry in place with the submitted draft.
	EchoDraft
	// Refetch discards local state and refreshes.
	Refetch
)

func (r Reconcile) String() string {
	switch r {
	case ReplaceAll:
		return "replace-all"
	case AppendServer:
		return "append-server"
	case EchoDraft:
		return "echo-draft"
	case Refetch:
		return "refetch"
	default:
		return "unknown"
	}
}

// Policies is the reconciliation policy of each operation.
var Policies = map[Op]Reconcile{
	OpRefresh: ReplaceAll,
	OpCreate:  AppendServer,
	OpUpdate:  EchoDraft,
	OpDelete:  Refetch,
}

// DefaultMessages are reported when a failure carries no server message.
var DefaultMessages = map[Op]string{
	OpRefresh: "Failed to load tasks",
	OpCreate:  "Task save failed",
	OpUpdate:  "Task save failed",
	OpDelete:  "Delete failed",
}

// Result is the outcome of one operation.
type Result struct {
	Op     Op
	TaskID string

	// Task is the created task (create) or the echoed draft (update).
	Task *service.Task

	// Err is nil on success.
	Err error

	// Refresh is the follow-up refresh of a successful delete.
	Refresh *Result
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Message returns the failure message: the server's, or the operation's
// default. Empty on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return service.MessageOf(r.Err, DefaultMessages[r.Op])
}

// Controller owns the local task list.
//
// Operations may be called concurrently. The lock is held only while a
// result is applied, never across the backend call, so when calls overlap
// the last response to arrive wins.
type Controller struct {
	svc service.Service
	log *logrus.Entry
	seq *keyedMutex

	mu    sync.Mutex
	tasks []service.Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Controller) { c.log = logging.Component(l, "session") }
}

// WithSequencing serializes update and delete calls that target the same
// task id. Calls for different ids still run in parallel.
func WithSequencing() Option {
	return func(c *Controller) { c.seq = newKeyedMutex() }
}

// New creates a controller with an empty list.
func New(svc service.Service, opts ...Option) *Controller {
	c := &Controller{
		svc: svc,
		log: logging.Component(nil, "session"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tasks returns a copy of the local list.
func (c *Controller) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Len returns the number of local tasks.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// At returns the task at 1-based position n.
func (c *Controller) At(n int) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.tasks) {
		return service.Task{}, false
	}
	return c.tasks[n-1], true
}

// Find returns the local task with the given id.
func (c *Controller) Find(id string) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Refresh replaces the local list with the backend's.
func (c *Controller) Refresh(ctx context.Context) Result {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.log.WithError(err).Debug("refresh failed")
		return Result{Op: OpRefresh, Err: err}
	}

	fresh := make([]service.Task, len(tasks))
	copy(fresh, tasks)

	c.mu.Lock()
	c.tasks = fresh
	c.mu.Unlock()

	c.log.WithField("count", len(fresh)).Debug("refreshed")
	return Result{Op: OpRefresh}
}

// Create submits draft and appends the task the backend returns.
func (c *Controller) Create(ctx context.Context, draft service.Draft) Result {
	task, err := c.svc.CreateTask(ctx, draft)
	if err != nil {
		c.log.WithError(err).Debug("create failed")
		return Result{Op: OpCreate, Err: err}
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, task)
	c.mu.Unlock()

	c.log.WithField("task_id", task.ID).Debug("created")
	return Result{Op: OpCreate, TaskID: task.ID, Task: &task}
}

// Update submits the full draft for id. On success the local entry with
// that id becomes the draft itself; the backend's copy is not consulted.
func (c *Controller) Update(ctx context.Context, id string, draft service.Draft) Result {
	if c.seq != nil {
		defer c.seq.lock(id)()
	}

	if err := c.svc.UpdateTask(ctx, id, draft); err != nil {
		c.log.WithError(err).WithField("task_id", id).Debug("update failed")
		return Result{Op: OpUpdate, TaskID: id, Err: err}
	}

	echoed := draft.WithID(id)

	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = echoed
		}
	}
	c.mu.Unlock()

	c.log.WithField("task_id", id).Debug("updated")
	return Result{Op: OpUpdate, TaskID: id, Task: &echoed}
}

// Delete removes id on the backend and then refreshes the whole list.
func (c *Controller) Delete(ctx context.Context, id string) Result {
	if c.seq != nil {
		defer c.seq.lock(id)()
	}

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.log.WithError(err).WithField("task_id", id).Debug("delete failed")
		return Result{Op: OpDelete, TaskID: id, Err: err}
	}

	c.log.WithField("task_id", id).Debug("deleted")
	refresh := c.Refresh(ctx)
	return Result{Op: OpDelete, TaskID: id, Refresh: &refresh}
}
