package cli_test

import (
	"context"
	"testing"

	"taskdash/internal/backend/restapi"
	"taskdash/internal/cli"
	"taskdash/internal/config"
	"taskdash/internal/service"
)

func TestBackendFactory_REST(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), APIURL: "http://localhost:1/api", Backend: config.BackendREST}

	svc, err := cli.BackendFactory(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*restapi.Client); !ok {
		t.Errorf("expected *restapi.Client, got %T", svc)
	}
}

func TestBackendFactory_GoogleWithoutOAuthClient(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Backend: config.BackendGoogle}

	_, err := cli.BackendFactory(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error without oauth_client.json")
	}
	if service.KindOf(err) != service.AuthenticationRejected {
		t.Errorf("expected authentication error, got %v", service.KindOf(err))
	}
}
