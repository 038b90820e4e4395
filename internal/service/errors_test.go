package service_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"taskdash/internal/service"
)

func TestError_StringIncludesCause(t *testing.T) {
	cause := errors.New("invalid response body: unexpected EOF")
	err := &service.Error{Kind: service.ServerFailure, Status: 200, Err: cause}

	got := err.Error()
	if !strings.HasPrefix(got, "server failure (200 OK)") {
		t.Errorf("expected kind and status first, got %q", got)
	}
	if !strings.Contains(got, cause.Error()) {
		t.Errorf("expected cause in %q", got)
	}
}

func TestError_String(t *testing.T) {
	cases := []struct {
		err  *service.Error
		want string
	}{
		{&service.Error{Kind: service.ValidationRejected, Status: 400, Message: "Title required"}, "validation rejected (400): Title required"},
		{&service.Error{Kind: service.AuthenticationRejected, Message: "no token"}, "authentication rejected: no token"},
		{&service.Error{Kind: service.ServerFailure, Status: 502}, "server failure (502 Bad Gateway)"},
		{&service.Error{Kind: service.NetworkFailure, Err: errors.New("dial tcp: refused")}, "network failure: dial tcp: refused"},
		{&service.Error{Kind: service.NetworkFailure}, "network failure"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestMessageOfAndKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("refresh: %w", &service.Error{Kind: service.AuthenticationRejected, Status: 401, Message: "expired"})

	if got := service.MessageOf(err, "fallback"); got != "expired" {
		t.Errorf("expected server message, got %q", got)
	}
	if got := service.KindOf(err); got != service.AuthenticationRejected {
		t.Errorf("expected authentication rejected, got %v", got)
	}
	if got := service.MessageOf(errors.New("boom"), "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := service.KindOf(errors.New("boom")); got != service.NetworkFailure {
		t.Errorf("expected network failure, got %v", got)
	}
}
