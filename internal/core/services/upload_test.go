package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkbridge-labs/inkbridge/internal/adapters/driven/storage/memory"
	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

func seedGitHubHost(t *testing.T, store *memory.KeyValueStore) {
	t.Helper()
	raw, err := json.Marshal(domain.GitHubHost{Token: "t", Repo: "u/r", Branch: "main"})
	require.NoError(t, err)
	require.NoError(t, store.Set(keyGitHubHost, raw))
	require.NoError(t, store.Set(keyActiveHost, []byte(domain.HostKindGitHub)))
}

func uploadReq() domain.UploadRequest {
	return domain.UploadRequest{FileName: "x.png", MimeType: "image/png", Data: []byte{1, 2, 3}}
}

func TestUpload_NoActiveHost(t *testing.T) {
	store := memory.NewKeyValueStore()
	factory := &fakeFactory{}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.False(t, out.Success())
	assert.Equal(t, domain.FailureNotConfigured, out.Kind)
	assert.Zero(t, factory.created(), "no backend may be constructed without an active host")
}

func TestUpload_ActiveHostWithoutConfig(t *testing.T) {
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(keyActiveHost, []byte(domain.HostKindGitHub)))
	factory := &fakeFactory{}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureNotConfigured, out.Kind)
	assert.Zero(t, factory.created())
}

func TestUpload_CorruptConfig(t *testing.T) {
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(keyGitHubHost, []byte("{not json")))
	require.NoError(t, store.Set(keyActiveHost, []byte(domain.HostKindGitHub)))
	orch := NewUploadOrchestrator(store, &fakeFactory{}, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureNotConfigured, out.Kind)
}

func TestUpload_UnknownActiveHost(t *testing.T) {
	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(keyActiveHost, []byte("imgur")))
	orch := NewUploadOrchestrator(store, &fakeFactory{}, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureNotConfigured, out.Kind)
}

func TestUpload_FactoryRejectsConfig(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{err: domain.ErrInvalidInput}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureNotConfigured, out.Kind)
}

func TestUpload_SuccessUpgradesScheme(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)

	var seen domain.UploadRequest
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(_ context.Context, req domain.UploadRequest) (string, error) {
			seen = req
			return "http://x/x.png", nil
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())

	require.True(t, out.Success())
	assert.Equal(t, "https://x/x.png", out.URL)
	assert.NotEmpty(t, seen.ID, "orchestrator assigns a correlation ID")
	assert.Equal(t, "x.png", seen.FileName)
}

func TestUpload_SecureURLPassesThrough(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(context.Context, domain.UploadRequest) (string, error) {
			return "https://cdn/x.png", nil
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())
	require.True(t, out.Success())
	assert.Equal(t, "https://cdn/x.png", out.URL)
}

func TestUpload_TimeoutCancelsBackend(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)

	cancelled := make(chan struct{})
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(ctx context.Context, _ domain.UploadRequest) (string, error) {
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 50*time.Millisecond)

	start := time.Now()
	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureTimeout, out.Kind)
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("backend never observed cancellation")
	}
}

func TestUpload_CallerCancellation(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(ctx context.Context, _ domain.UploadRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}}
	orch := NewUploadOrchestrator(store, factory, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	out := orch.Upload(ctx, uploadReq())
	assert.Equal(t, domain.FailureNetwork, out.Kind)
	assert.Contains(t, out.Message, "cancelled")
}

func TestUpload_ClassifiesBackendError(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(context.Context, domain.UploadRequest) (string, error) {
			return "", &domain.BackendError{StatusCode: 403, Message: "Bad credentials"}
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())

	assert.Equal(t, domain.FailureBackend, out.Kind)
	assert.Equal(t, 403, out.StatusCode)
	assert.Contains(t, out.Message, "Bad credentials")
}

func TestUpload_ClassifiesMalformedResponse(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(context.Context, domain.UploadRequest) (string, error) {
			return "", domain.ErrMalformedResponse
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())
	assert.Equal(t, domain.FailureMalformedResponse, out.Kind)
}

func TestUpload_UnknownErrorIsBackend(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(context.Context, domain.UploadRequest) (string, error) {
			return "", errors.New("boom")
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())
	assert.Equal(t, domain.FailureBackend, out.Kind)
	assert.Contains(t, out.Message, "boom")
}

func TestUpload_EmptyURLIsMalformed(t *testing.T) {
	store := memory.NewKeyValueStore()
	seedGitHubHost(t, store)
	factory := &fakeFactory{uploader: &fakeUploader{
		uploadFn: func(context.Context, domain.UploadRequest) (string, error) {
			return "", nil
		},
	}}
	orch := NewUploadOrchestrator(store, factory, 0)

	out := orch.Upload(context.Background(), uploadReq())
	assert.Equal(t, domain.FailureMalformedResponse, out.Kind)
}
