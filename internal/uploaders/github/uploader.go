// Package github implements the Uploader capability on top of the GitHub
// repository contents API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// commitMessage is recorded on every upload commit.
const commitMessage = "Upload image via inkbridge"

// Ensure Uploader implements the interface.
var _ driven.Uploader = (*Uploader)(nil)

// Uploader uploads files as repository contents and returns the raw
// download URL GitHub reports for the created file.
type Uploader struct {
	gh          *gh.Client
	owner       string
	repo        string
	branch      string
	pathPrefix  string
	rateLimiter *RateLimiter
}

// Option customises the uploader.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at a different API root. Useful for testing
// against a local server. The URL must end with a slash.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient substitutes the HTTP client, bypassing the default
// token-injecting client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New creates a GitHub uploader from a host configuration.
func New(cfg domain.GitHubHost, opts ...Option) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	owner, repo, ok := strings.Cut(cfg.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: repo must be \"owner/name\", got %q", domain.ErrInvalidInput, cfg.Repo)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)
	if o.baseURL != "" {
		parsed, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		client.BaseURL = parsed
	}

	return &Uploader{
		gh:          client,
		owner:       owner,
		repo:        repo,
		branch:      cfg.Branch,
		pathPrefix:  strings.Trim(cfg.Path, "/"),
		rateLimiter: NewRateLimiter(),
	}, nil
}

// Upload PUTs the file as a new repository content and returns its download
// URL. Any 2xx status is a success; the response must carry a nested
// download URL, and its absence is a malformed response, not a crash.
func (u *Uploader) Upload(ctx context.Context, req domain.UploadRequest) (string, error) {
	if err := u.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	path := req.FileName
	if u.pathPrefix != "" {
		path = u.pathPrefix + "/" + req.FileName
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(commitMessage),
		Branch:  gh.Ptr(u.branch),
		Content: req.Data,
	}

	content, _, err := u.gh.Repositories.CreateFile(ctx, u.owner, u.repo, path, opts)
	if err != nil {
		return "", u.wrapError(err)
	}

	if content == nil {
		return "", fmt.Errorf("%w: empty response for %s", domain.ErrMalformedResponse, path)
	}
	downloadURL := content.GetContent().GetDownloadURL()
	if downloadURL == "" {
		return "", fmt.Errorf("%w: no download URL for %s", domain.ErrMalformedResponse, path)
	}
	return downloadURL, nil
}

// wrapError converts go-github errors to domain error types. Remote
// rejections surface the remote-provided message when present.
func (u *Uploader) wrapError(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		return &domain.BackendError{
			StatusCode: status,
			Message:    ghErr.Message,
		}
	}
	return err
}
