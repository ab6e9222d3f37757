package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
)

// materialRate throttles permanent-material uploads. The platform caps the
// daily quota; one request per second keeps bursts polite.
const materialRate = 1.0

// Ensure Uploader implements the interface.
var _ driven.Uploader = (*Uploader)(nil)

// Uploader uploads permanent image material and returns its public URL.
// The access token is cached until shortly before expiry; a fresh token is
// exchanged through the injected TokenExchanger when needed.
type Uploader struct {
	appID     string
	appSecret string
	exchanger driven.TokenExchanger

	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter

	// onToken is invoked after a successful exchange so the caller can
	// persist the refreshed token alongside the host config.
	onToken func(domain.AccessToken)

	mu    sync.Mutex
	token domain.AccessToken
}

// Option customises the uploader.
type Option func(*Uploader)

// WithBaseURL points the uploader at a different API root. Useful for
// testing against a local server.
func WithBaseURL(u string) Option {
	return func(up *Uploader) { up.baseURL = u }
}

// WithHTTPClient substitutes the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(up *Uploader) { up.httpClient = c }
}

// WithTokenCallback registers a callback for refreshed tokens.
func WithTokenCallback(fn func(domain.AccessToken)) Option {
	return func(up *Uploader) { up.onToken = fn }
}

// New creates a WeChat uploader from a host configuration. A token cached
// in the configuration seeds the in-memory cache.
func New(cfg domain.WeChatHost, exchanger driven.TokenExchanger, opts ...Option) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u := &Uploader{
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		exchanger:  exchanger,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(materialRate), 1),
		token: domain.AccessToken{
			Token:     cfg.AccessToken,
			ExpiresAt: cfg.TokenExpiry,
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Upload posts the file as permanent image material. The two legs (token
// resolution and the material POST) share ctx, so cancelling the attempt
// aborts whichever is in flight.
func (u *Uploader) Upload(ctx context.Context, req domain.UploadRequest) (string, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	token, err := u.accessToken(ctx)
	if err != nil {
		return "", err
	}

	body, contentType, err := encodeMultipart(req)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("access_token", token)
	query.Set("type", "image")
	reqURL := u.baseURL + "/cgi-bin/material/add_material?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.BackendError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(raw),
		}
	}

	var result struct {
		URL     string `json:"url"`
		MediaID string `json:"media_id"`
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	if result.ErrCode != 0 {
		// The platform reports failures inside a 200 body.
		return "", &domain.BackendError{
			StatusCode: result.ErrCode,
			Message:    result.ErrMsg,
		}
	}
	if result.URL == "" {
		return "", fmt.Errorf("%w: response missing material URL", domain.ErrMalformedResponse)
	}
	return result.URL, nil
}

// accessToken returns a valid token, exchanging a fresh one when the cached
// token is absent or expired.
func (u *Uploader) accessToken(ctx context.Context) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.token.Token != "" && time.Now().Add(30*time.Second).Before(u.token.ExpiresAt) {
		return u.token.Token, nil
	}

	token, err := u.exchanger.Exchange(ctx, u.appID, u.appSecret)
	if err != nil {
		return "", err
	}

	u.token = token
	if u.onToken != nil {
		u.onToken(token)
	}
	return token.Token, nil
}

// encodeMultipart builds the media form body.
func encodeMultipart(req domain.UploadRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="media"; filename=%q`, req.FileName))
	header.Set("Content-Type", req.MimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	if _, err := part.Write(req.Data); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// remoteMessage extracts errmsg from an error body, falling back to a
// truncated copy of the raw payload.
func remoteMessage(raw []byte) string {
	var body struct {
		ErrMsg string `json:"errmsg"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.ErrMsg != "" {
		return body.ErrMsg
	}
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return string(raw)
}
