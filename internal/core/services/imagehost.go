package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driving"
)

// Ensure ImageHostService implements the interface.
var _ driving.ImageHostService = (*ImageHostService)(nil)

// verifyPNG is a 1x1 transparent PNG used by Verify. Small enough to be a
// harmless test object in the target host.
var verifyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

// ImageHostService manages stored image host configurations and the
// active-host selector.
type ImageHostService struct {
	store   driven.KeyValueStore
	uploads driving.UploadOrchestrator
}

// NewImageHostService creates an image host service. uploads is only needed
// for Verify and may be nil otherwise.
func NewImageHostService(store driven.KeyValueStore, uploads driving.UploadOrchestrator) *ImageHostService {
	return &ImageHostService{
		store:   store,
		uploads: uploads,
	}
}

// SaveGitHub persists the GitHub host configuration.
func (s *ImageHostService) SaveGitHub(cfg domain.GitHubHost) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("github host: %w", err)
	}
	return s.save(keyGitHubHost, cfg)
}

// SaveWeChat persists the WeChat host configuration.
func (s *ImageHostService) SaveWeChat(cfg domain.WeChatHost) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("wechat host: %w", err)
	}
	return s.save(keyWeChatHost, cfg)
}

// GitHub returns the stored GitHub configuration, if any.
func (s *ImageHostService) GitHub() (domain.GitHubHost, bool) {
	var cfg domain.GitHubHost
	return cfg, s.loadInto(keyGitHubHost, &cfg)
}

// WeChat returns the stored WeChat configuration, if any.
func (s *ImageHostService) WeChat() (domain.WeChatHost, bool) {
	var cfg domain.WeChatHost
	return cfg, s.loadInto(keyWeChatHost, &cfg)
}

// Enable selects kind as the active host. The corresponding configuration
// must already be stored and valid.
func (s *ImageHostService) Enable(kind domain.HostKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedHost, kind)
	}
	if _, err := loadHost(s.store, kind); err != nil {
		return fmt.Errorf("enable %s: %w", kind, err)
	}
	if err := s.store.Set(keyActiveHost, []byte(kind)); err != nil {
		return fmt.Errorf("enable %s: %w", kind, err)
	}
	return nil
}

// Disable clears the active-host selector. Uploads become disabled.
func (s *ImageHostService) Disable() error {
	if err := s.store.Delete(keyActiveHost); err != nil {
		return fmt.Errorf("disable image host: %w", err)
	}
	return nil
}

// Active returns the currently selected host kind, if any.
func (s *ImageHostService) Active() (domain.HostKind, bool) {
	raw, ok := s.store.Get(keyActiveHost)
	if !ok || len(raw) == 0 {
		return "", false
	}
	kind := domain.HostKind(raw)
	if !kind.IsValid() {
		return "", false
	}
	return kind, true
}

// Verify uploads a small test image through the normal orchestrator path
// and returns the resulting URL.
func (s *ImageHostService) Verify(ctx context.Context) (string, error) {
	if s.uploads == nil {
		return "", errors.New("upload orchestrator not configured")
	}

	outcome := s.uploads.Upload(ctx, domain.UploadRequest{
		FileName: "inkbridge-verify.png",
		MimeType: "image/png",
		Data:     verifyPNG,
	})
	if !outcome.Success() {
		return "", fmt.Errorf("verification upload failed: %s", outcome.Message)
	}
	return outcome.URL, nil
}

func (s *ImageHostService) save(key string, cfg any) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *ImageHostService) loadInto(key string, dst any) bool {
	raw, ok := s.store.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
