// Package googletasks implements the service.Service interface using Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskdash/internal/config"
	"taskdash/internal/credential"
	"taskdash/internal/logging"
	"taskdash/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope

	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

// Client implements service.Service on the user's default Google Tasks list.
type Client struct {
	svc    *tasks.Service
	listID string
	log    *logrus.Entry
}

// OAuthConfig reads the OAuth client credentials from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and a stored token.
func New(ctx context.Context, cfg *config.Config, store *credential.FileStore) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, &service.Error{Kind: service.AuthenticationRejected, Err: err}
	}

	token, err := store.Load()
	if err != nil {
		if errors.Is(err, credential.ErrNoCredential) {
			return nil, &service.Error{
				Kind:    service.AuthenticationRejected,
				Message: "not logged in (run: taskdash login)",
				Err:     err,
			}
		}
		return nil, &service.Error{Kind: service.AuthenticationRejected, Err: err}
	}

	// Create token source that auto-refreshes
	tokenSource := oauthConfig.TokenSource(ctx, token)
	httpClient := oauth2.NewClient(ctx, tokenSource)

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{
		svc:    svc,
		listID: DefaultListID,
		log:    logging.Component(cfg.Log(), "googletasks"),
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and API
// endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, listID: DefaultListID, log: logging.Component(nil, "googletasks")}, nil
}

// ListTasks implements service.Service. Returns every task of the default
// list, completed ones included, in API order. Calls carry no deadline of
// their own; cancellation comes from ctx.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	result := []service.Task{}
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, fromAPI(item))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	c.log.WithField("count", len(result)).Debug("listed tasks")
	return result, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	created, err := c.svc.Tasks.Insert(c.listID, toAPI(draft)).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return fromAPI(created), nil
}

// UpdateTask implements service.Service. The whole resource is replaced,
// so fields missing from the draft are cleared.
func (c *Client) UpdateTask(ctx context.Context, id string, draft service.Draft) error {
	body := toAPI(draft)
	body.Id = id
	if _, err := c.svc.Tasks.Update(c.listID, id, body).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// fromAPI maps a Google task. Google has no in-progress state, so every
// open task reads back as pending.
func fromAPI(t *tasks.Task) service.Task {
	task := service.Task{
		ID:          t.Id,
		Title:       t.Title,
		Description: t.Notes,
		Status:      service.StatusPending,
	}
	if t.Status == statusCompleted {
		task.Status = service.StatusCompleted
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			task.DueDate = &due
		}
	}
	return task
}

func toAPI(d service.Draft) *tasks.Task {
	t := &tasks.Task{
		Title:  d.Title,
		Notes:  d.Description,
		Status: statusNeedsAction,
	}
	if d.Status == service.StatusCompleted {
		t.Status = statusCompleted
	}
	if d.DueDate != nil {
		t.Due = d.DueDate.UTC().Format(time.RFC3339)
	}
	return t
}

// wrapError maps API errors onto service.Error.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &service.Error{
			Kind:    service.KindForStatus(gerr.Code),
			Status:  gerr.Code,
			Message: gerr.Message,
			Err:     err,
		}
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return &service.Error{Kind: service.NetworkFailure, Message: "request timed out", Err: err}
	}

	return &service.Error{Kind: service.NetworkFailure, Err: err}
}

var _ service.Service = (*Client)(nil)
