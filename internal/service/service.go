// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Commands and the session controller only talk to a backend through it.
type Service interface {
	// ListTasks returns all of the user's tasks in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it as stored by the backend,
	// including its assigned ID.
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// UpdateTask replaces the editable fields of the task with the given ID.
	// Any task echoed back by the backend is ignored.
	UpdateTask(ctx context.Context, id string, draft Draft) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}

// Authenticator exchanges user credentials for a bearer token.
// Implementations never persist the token; callers do.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
}
