package restapi

import (
	"context"
	"fmt"
	"net/http"

	"taskdash/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login implements service.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.Request(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return checkToken(resp)
}

// Register implements service.Authenticator.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.Request(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return "", err
	}
	return checkToken(resp)
}

func checkToken(resp tokenResponse) (string, error) {
	if resp.Token == "" {
		return "", &service.Error{
			Kind:   service.ServerFailure,
			Status: http.StatusOK,
			Err:    fmt.Errorf("response missing token"),
		}
	}
	return resp.Token, nil
}
