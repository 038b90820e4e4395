package cli

import (
	"context"

	"taskdash/internal/backend/googletasks"
	"taskdash/internal/backend/restapi"
	"taskdash/internal/config"
	"taskdash/internal/credential"
	"taskdash/internal/service"
)

// BackendFactory creates the backend selected by cfg.Backend, reading the
// credential from the config directory.
func BackendFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	store := credential.NewFileStore(cfg.TokenPath())
	switch cfg.Backend {
	case config.BackendGoogle:
		return googletasks.New(ctx, cfg, store)
	default:
		return restapi.New(cfg.APIURL, store, restapi.WithLogger(cfg.Log())), nil
	}
}
