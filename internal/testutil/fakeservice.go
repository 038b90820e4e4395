// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskdash/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = &service.Error{Kind: service.ValidationRejected, Status: 404, Message: "Task not found"}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Store, when set, rewrites a draft before the fake persists it,
	// standing in for server-side normalization.
	Store func(service.Draft) service.Draft

	// BeforeReturn, when set, runs after the fake has applied a call but
	// before it returns. op is "list", "create", "update" or "delete".
	BeforeReturn func(op, id string)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task with the given id and title.
func (f *FakeService) AddTask(id, title string) {
	f.Seed(service.Task{ID: id, Title: title, Status: service.StatusPending})
}

// Seed appends tasks as stored server-side.
func (f *FakeService) Seed(tasks ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// Stored returns a copy of the server-side tasks.
func (f *FakeService) Stored() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns the calls received so far, e.g. "update:42".
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(op, id string) {
	if id == "" {
		f.calls = append(f.calls, op)
		return
	}
	f.calls = append(f.calls, op+":"+id)
}

func (f *FakeService) done(op, id string) {
	if f.BeforeReturn != nil {
		f.BeforeReturn(op, id)
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.record("list", "")
	if f.ListTasksErr != nil {
		f.mu.Unlock()
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	f.mu.Unlock()

	f.done("list", "")
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	f.mu.Lock()
	f.record("create", "")
	if f.CreateTaskErr != nil {
		f.mu.Unlock()
		return service.Task{}, f.CreateTaskErr
	}
	if f.Store != nil {
		draft = f.Store(draft)
	}
	f.nextID++
	task := draft.WithID(fmt.Sprintf("task-%d", f.nextID))
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	f.done("create", task.ID)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, draft service.Draft) error {
	f.mu.Lock()
	f.record("update", id)
	if f.UpdateTaskErr != nil {
		f.mu.Unlock()
		return f.UpdateTaskErr
	}
	if f.Store != nil {
		draft = f.Store(draft)
	}
	found := false
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = draft.WithID(id)
			found = true
		}
	}
	f.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	f.done("update", id)
	return nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	f.record("delete", id)
	if f.DeleteTaskErr != nil {
		f.mu.Unlock()
		return f.DeleteTaskErr
	}
	idx := -1
	for i, t := range f.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		f.tasks = append(f.tasks[:idx], f.tasks[idx+1:]...)
	}
	f.mu.Unlock()

	if idx < 0 {
		return ErrNotFound
	}
	f.done("delete", id)
	return nil
}
