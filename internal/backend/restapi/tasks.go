package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskdash/internal/service"
)

// wireTask is a task as sent by the API. Documents are keyed by "_id";
// "id" is accepted as well.
type wireTask struct {
	MongoID     string   `json:"_id,omitempty"`
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     wireDate `json:"dueDate"`
}

func (w wireTask) toTask() service.Task {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	status := service.Status(w.Status)
	if st, err := service.ParseStatus(w.Status); err == nil {
		status = st
	}
	return service.Task{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		Status:      status,
		DueDate:     w.DueDate.Time,
	}
}

// taskPayload is the request body for create and update.
type taskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	DueDate     wireDate `json:"dueDate"`
}

func payloadFromDraft(d service.Draft) taskPayload {
	return taskPayload{
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		DueDate:     wireDate{Time: d.DueDate},
	}
}

// wireDate accepts RFC 3339 timestamps, HTML datetime-local values, plain
// dates, empty strings and null. Any other string reads as no due date, so
// one bad value cannot make the whole list unreadable.
type wireDate struct {
	Time *time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	if d.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

func (d *wireDate) UnmarshalJSON(b []byte) error {
	d.Time = nil
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid dueDate: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = &t
			return nil
		}
	}
	return nil
}

type listResponse struct {
	Tasks []wireTask `json:"tasks"`
}

type createResponse struct {
	Task *wireTask `json:"task"`
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var resp listResponse
	if err := c.Request(ctx, http.MethodGet, "/tasks", nil, &resp); err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(resp.Tasks))
	for _, w := range resp.Tasks {
		result = append(result, w.toTask())
	}
	return result, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	var resp createResponse
	if err := c.Request(ctx, http.MethodPost, "/tasks", payloadFromDraft(draft), &resp); err != nil {
		return service.Task{}, err
	}

	if resp.Task == nil {
		return service.Task{}, &service.Error{
			Kind:   service.ServerFailure,
			Status: http.StatusOK,
			Err:    fmt.Errorf("response missing task"),
		}
	}
	task := resp.Task.toTask()
	if task.ID == "" {
		return service.Task{}, &service.Error{
			Kind:   service.ServerFailure,
			Status: http.StatusOK,
			Err:    fmt.Errorf("response task has no id"),
		}
	}
	return task, nil
}

// UpdateTask implements service.Service. The response body is ignored.
func (c *Client) UpdateTask(ctx context.Context, id string, draft service.Draft) error {
	return c.Request(ctx, http.MethodPut, taskPath(id), payloadFromDraft(draft), nil)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}
