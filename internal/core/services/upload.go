package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driving"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// Ensure UploadOrchestrator implements the interface.
var _ driving.UploadOrchestrator = (*UploadOrchestrator)(nil)

// DefaultUploadTimeout is the wall-clock budget for one upload attempt.
// The budget applies uniformly to every backend.
const DefaultUploadTimeout = 20 * time.Second

// UploadOrchestrator resolves the active image host, invokes the selected
// backend under a hard deadline, and classifies the result. All failures
// are converted to domain.Outcome at this boundary.
type UploadOrchestrator struct {
	store   driven.KeyValueStore
	factory driven.UploaderFactory
	timeout time.Duration
}

// NewUploadOrchestrator creates an orchestrator. A non-positive timeout
// selects DefaultUploadTimeout.
func NewUploadOrchestrator(
	store driven.KeyValueStore,
	factory driven.UploaderFactory,
	timeout time.Duration,
) *UploadOrchestrator {
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	return &UploadOrchestrator{
		store:   store,
		factory: factory,
		timeout: timeout,
	}
}

// Upload performs one orchestrated attempt.
//
// The configuration is read once at the start: changes made mid-flight do
// not affect an in-progress attempt. The backend call runs under a context
// deadline; when the budget elapses the in-flight request is cancelled, not
// orphaned.
func (o *UploadOrchestrator) Upload(ctx context.Context, req domain.UploadRequest) domain.Outcome {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	host, outcome := o.activeHost()
	if host == nil {
		return *outcome
	}

	uploader, err := o.factory.Create(host)
	if err != nil {
		logger.Warn("upload %s: create uploader: %v", req.ID, err)
		return domain.FailureOutcome(domain.FailureNotConfigured,
			"image host configuration is invalid, check settings")
	}

	logger.Debug("upload %s: %s (%d bytes) via %s", req.ID, req.FileName, len(req.Data), host.Kind())

	uploadCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	rawURL, err := uploader.Upload(uploadCtx, req)
	if err != nil {
		out := o.classify(err)
		logger.Warn("upload %s failed: %s: %s", req.ID, out.Kind, out.Message)
		return out
	}
	if rawURL == "" {
		logger.Warn("upload %s: backend returned no URL", req.ID)
		return domain.FailureOutcome(domain.FailureMalformedResponse,
			"upload finished but the backend returned no URL")
	}

	logger.Info("upload %s complete: %s", req.ID, rawURL)
	return domain.SuccessOutcome(rawURL)
}

// activeHost resolves the selected host variant and its stored config.
// On any configuration problem it returns a nil host and the outcome to
// report.
func (o *UploadOrchestrator) activeHost() (domain.ImageHost, *domain.Outcome) {
	raw, ok := o.store.Get(keyActiveHost)
	if !ok || len(raw) == 0 {
		out := domain.FailureOutcome(domain.FailureNotConfigured, "no image host is enabled")
		return nil, &out
	}

	kind := domain.HostKind(raw)
	host, err := loadHost(o.store, kind)
	if err != nil {
		out := domain.FailureOutcome(domain.FailureNotConfigured,
			fmt.Sprintf("image host %q is not configured, check settings", kind))
		return nil, &out
	}
	return host, nil
}

// loadHost decodes the stored configuration for kind.
func loadHost(store driven.KeyValueStore, kind domain.HostKind) (domain.ImageHost, error) {
	switch kind {
	case domain.HostKindGitHub:
		var cfg domain.GitHubHost
		if err := loadConfig(store, keyGitHubHost, &cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	case domain.HostKindWeChat:
		var cfg domain.WeChatHost
		if err := loadConfig(store, keyWeChatHost, &cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedHost, kind)
	}
}

// loadConfig reads and decodes one host config key.
func loadConfig(store driven.KeyValueStore, key string, dst any) error {
	raw, ok := store.Get(key)
	if !ok {
		return domain.ErrHostNotConfigured
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrHostNotConfigured, key, err)
	}
	return nil
}

// classify maps a backend error to the outcome taxonomy.
func (o *UploadOrchestrator) classify(err error) domain.Outcome {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.FailureOutcome(domain.FailureTimeout,
			fmt.Sprintf("upload timed out after %s, check your network or host settings", o.timeout))
	case errors.Is(err, context.Canceled):
		return domain.FailureOutcome(domain.FailureNetwork, "upload was cancelled")
	case errors.Is(err, domain.ErrMalformedResponse):
		return domain.FailureOutcome(domain.FailureMalformedResponse, err.Error())
	}

	if be, ok := domain.IsBackendError(err); ok {
		out := domain.FailureOutcome(domain.FailureBackend, be.Message)
		out.StatusCode = be.StatusCode
		if out.Message == "" {
			out.Message = fmt.Sprintf("backend rejected the upload (status %d)", be.StatusCode)
		}
		return out
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FailureOutcome(domain.FailureTimeout,
			"upload timed out, check your network connection")
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.FailureOutcome(domain.FailureNetwork, urlErr.Error())
	}

	return domain.FailureOutcome(domain.FailureBackend, err.Error())
}
