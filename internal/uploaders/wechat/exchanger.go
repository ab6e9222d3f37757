// Package wechat implements the Uploader capability on top of the WeChat
// official-account material API, including access token exchange.
package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
)

// DefaultBaseURL is the WeChat API root.
const DefaultBaseURL = "https://api.weixin.qq.com"

// Ensure HTTPExchanger implements the interface.
var _ driven.TokenExchanger = (*HTTPExchanger)(nil)

// HTTPExchanger resolves access tokens through the client_credential grant:
// given appId+secret, the remote returns a token and its lifetime.
type HTTPExchanger struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPExchanger creates a token exchanger. Empty arguments select the
// default HTTP client and API root.
func NewHTTPExchanger(httpClient *http.Client, baseURL string) *HTTPExchanger {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPExchanger{httpClient: httpClient, baseURL: baseURL}
}

// Exchange fetches a fresh access token for the credential pair.
func (e *HTTPExchanger) Exchange(ctx context.Context, appID, secret string) (domain.AccessToken, error) {
	query := url.Values{}
	query.Set("grant_type", "client_credential")
	query.Set("appid", appID)
	query.Set("secret", secret)

	reqURL := e.baseURL + "/cgi-bin/token?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: %w", domain.ErrTokenExchangeFailed, err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: %w", domain.ErrTokenExchangeFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: read response: %w", domain.ErrTokenExchangeFailed, err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		ErrCode     int    `json:"errcode"`
		ErrMsg      string `json:"errmsg"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.AccessToken{}, fmt.Errorf("%w: decode response: %w", domain.ErrTokenExchangeFailed, err)
	}
	if body.ErrCode != 0 {
		return domain.AccessToken{}, fmt.Errorf("%w: %d %s", domain.ErrTokenExchangeFailed, body.ErrCode, body.ErrMsg)
	}
	if body.AccessToken == "" || body.ExpiresIn <= 0 {
		return domain.AccessToken{}, fmt.Errorf("%w: response missing token", domain.ErrTokenExchangeFailed)
	}

	return domain.AccessToken{
		Token:     body.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
