package main

import (
	"fmt"
	"os"

	"github.com/inkbridge-labs/inkbridge/internal/adapters/driven/config/file"
	"github.com/inkbridge-labs/inkbridge/internal/adapters/driven/storage/sqlite"
	"github.com/inkbridge-labs/inkbridge/internal/adapters/driving/cli"
	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/core/services"
	"github.com/inkbridge-labs/inkbridge/internal/uploaders"
	"github.com/inkbridge-labs/inkbridge/internal/uploaders/wechat"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	store, closeStore, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	var hostSvc *services.ImageHostService

	// Refreshed WeChat tokens are written back so a still-valid token
	// survives restarts.
	factory := uploaders.NewFactory(
		wechat.NewHTTPExchanger(nil, ""),
		uploaders.WithTokenCallback(func(tok domain.AccessToken) {
			cfg, ok := hostSvc.WeChat()
			if !ok {
				return
			}
			cfg.AccessToken = tok.Token
			cfg.TokenExpiry = tok.ExpiresAt
			_ = hostSvc.SaveWeChat(cfg) //nolint:errcheck // best-effort cache
		}),
	)

	orchestrator := services.NewUploadOrchestrator(store, factory, 0)
	hostSvc = services.NewImageHostService(store, orchestrator)
	contentSvc := services.NewContentService(store, "")

	cli.SetVersion(version)
	cli.SetServices(contentSvc, hostSvc)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore selects the state backend. INKBRIDGE_STORAGE=file picks the
// plain TOML config file, anything else the SQLite database.
func openStore() (driven.KeyValueStore, func(), error) {
	if os.Getenv("INKBRIDGE_STORAGE") == "file" {
		store, err := file.NewStore("")
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}
