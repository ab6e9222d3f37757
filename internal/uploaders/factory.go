package uploaders

import (
	"fmt"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/uploaders/github"
	"github.com/inkbridge-labs/inkbridge/internal/uploaders/wechat"
)

// Ensure Factory implements the interface.
var _ driven.UploaderFactory = (*Factory)(nil)

// Factory builds uploaders from host configurations. Selection is a pure
// mapping over the closed variant set; unknown kinds are rejected.
type Factory struct {
	exchanger driven.TokenExchanger

	// onWeChatToken receives refreshed access tokens so callers can write
	// them back next to the host configuration.
	onWeChatToken func(domain.AccessToken)
}

// FactoryOption customises the factory.
type FactoryOption func(*Factory)

// WithTokenCallback registers a callback for refreshed WeChat tokens.
func WithTokenCallback(fn func(domain.AccessToken)) FactoryOption {
	return func(f *Factory) { f.onWeChatToken = fn }
}

// NewFactory creates a factory. A nil exchanger selects the production
// WeChat token endpoint.
func NewFactory(exchanger driven.TokenExchanger, opts ...FactoryOption) *Factory {
	if exchanger == nil {
		exchanger = wechat.NewHTTPExchanger(nil, "")
	}
	f := &Factory{exchanger: exchanger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the uploader for the host's variant.
func (f *Factory) Create(host domain.ImageHost) (driven.Uploader, error) {
	switch cfg := host.(type) {
	case domain.GitHubHost:
		return github.New(cfg)
	case domain.WeChatHost:
		var opts []wechat.Option
		if f.onWeChatToken != nil {
			opts = append(opts, wechat.WithTokenCallback(f.onWeChatToken))
		}
		return wechat.New(cfg, f.exchanger, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedHost, host.Kind())
	}
}
