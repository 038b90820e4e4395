// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus parses a status name. Accepts "in-progress" as a spelling of
// in_progress. Case-insensitive.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Task represents a single task item.
// ID is assigned by the backend on creation and is never invented locally.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
}

// Draft returns the editable fields of t.
func (t Task) Draft() Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

// Draft holds the user-editable task fields submitted on create and update.
type Draft struct {
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
}

// WithID returns the task the draft describes under the given id.
func (d Draft) WithID(id string) Task {
	return Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		DueDate:     d.DueDate,
	}
}

// Validate checks the required fields. An empty status defaults to pending.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title required")
	}
	if d.Status == "" {
		d.Status = StatusPending
		return nil
	}
	if _, err := ParseStatus(string(d.Status)); err != nil {
		return err
	}
	return nil
}
