package services

import (
	"context"
	"sync"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
)

// recordingSurface captures outbound editor commands.
type recordingSurface struct {
	mu        sync.Mutex
	contents  []string
	scrolls   []float64
	completes []string
	failed    int
}

func (s *recordingSurface) SetContent(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = append(s.contents, text)
}

func (s *recordingSurface) ScrollTo(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolls = append(s.scrolls, factor)
}

func (s *recordingSurface) UploadComplete(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completes = append(s.completes, url)
}

func (s *recordingSurface) UploadFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

func (s *recordingSurface) snapshot() (contents []string, completes []string, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.contents...), append([]string(nil), s.completes...), s.failed
}

// recordingSink captures reported errors.
type recordingSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *recordingSink) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordingSink) errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// fakeUploader delegates to a function.
type fakeUploader struct {
	uploadFn func(ctx context.Context, req domain.UploadRequest) (string, error)
}

func (f *fakeUploader) Upload(ctx context.Context, req domain.UploadRequest) (string, error) {
	return f.uploadFn(ctx, req)
}

// fakeFactory returns a fixed uploader and counts invocations.
type fakeFactory struct {
	uploader driven.Uploader
	err      error

	mu    sync.Mutex
	calls int
	hosts []domain.ImageHost
}

func (f *fakeFactory) Create(host domain.ImageHost) (driven.Uploader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.hosts = append(f.hosts, host)
	if f.err != nil {
		return nil, f.err
	}
	return f.uploader, nil
}

func (f *fakeFactory) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeOrchestrator returns a fixed outcome and records requests.
type fakeOrchestrator struct {
	outcome domain.Outcome

	mu   sync.Mutex
	reqs []domain.UploadRequest
}

func (f *fakeOrchestrator) Upload(_ context.Context, req domain.UploadRequest) domain.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.outcome
}

func (f *fakeOrchestrator) requests() []domain.UploadRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.UploadRequest(nil), f.reqs...)
}
