package driving

import (
	"context"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

// ImageHostService manages stored image host configurations and the
// active-host selector.
type ImageHostService interface {
	// SaveGitHub persists the GitHub host configuration.
	SaveGitHub(cfg domain.GitHubHost) error

	// SaveWeChat persists the WeChat host configuration.
	SaveWeChat(cfg domain.WeChatHost) error

	// GitHub returns the stored GitHub configuration, if any.
	GitHub() (domain.GitHubHost, bool)

	// WeChat returns the stored WeChat configuration, if any.
	WeChat() (domain.WeChatHost, bool)

	// Enable selects kind as the active host. The config must exist and
	// validate first.
	Enable(kind domain.HostKind) error

	// Disable clears the active-host selector; uploads become disabled.
	Disable() error

	// Active returns the currently selected host kind, if any.
	Active() (domain.HostKind, bool)

	// Verify runs a small test upload through the normal orchestrator path
	// and returns the resulting URL.
	Verify(ctx context.Context) (string, error)
}
