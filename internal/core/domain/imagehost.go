package domain

import "time"

// HostKind identifies a supported image host variant.
// The set is closed: selection is a pure mapping from kind to implementation,
// and an unknown kind is an explicit unsupported-variant outcome rather than
// a silent fallthrough.
type HostKind string

const (
	// HostKindGitHub uploads through the GitHub repository contents API
	// using a long-lived personal access token.
	HostKindGitHub HostKind = "github"

	// HostKindWeChat uploads to the WeChat official-account material API
	// using a refreshable access token exchanged from an app credential pair.
	HostKindWeChat HostKind = "gzh"
)

// IsValid returns true for a known host kind.
func (k HostKind) IsValid() bool {
	switch k {
	case HostKindGitHub, HostKindWeChat:
		return true
	}
	return false
}

// AllHostKinds returns the closed set of supported variants.
func AllHostKinds() []HostKind {
	return []HostKind{HostKindGitHub, HostKindWeChat}
}

// ImageHost is one configured upload backend variant.
// Each variant is persisted independently under its own key; a separate
// active-host selector names at most one of them.
type ImageHost interface {
	// Kind returns the variant tag.
	Kind() HostKind
	// Validate reports whether the configuration is complete enough
	// to attempt an upload.
	Validate() error
}

// GitHubHost configures the GitHub contents-API backend.
type GitHubHost struct {
	// Token is a long-lived bearer token with contents write access.
	Token string `json:"token"`
	// Repo is the target repository as "owner/name".
	Repo string `json:"repo"`
	// Branch is the commit target branch.
	Branch string `json:"branch"`
	// Path is an optional prefix inside the repository. Empty means root.
	Path string `json:"path"`
}

// Kind returns HostKindGitHub.
func (h GitHubHost) Kind() HostKind { return HostKindGitHub }

// Validate checks required fields.
func (h GitHubHost) Validate() error {
	if h.Token == "" || h.Repo == "" || h.Branch == "" {
		return ErrHostNotConfigured
	}
	return nil
}

// WeChatHost configures the WeChat official-account backend.
// AccessToken and TokenExpiry cache the most recent exchange result so a
// still-valid token survives restarts; both may be zero.
type WeChatHost struct {
	AppID       string    `json:"appId"`
	AppSecret   string    `json:"appSecret"`
	AccessToken string    `json:"accessToken,omitempty"`
	TokenExpiry time.Time `json:"tokenExpiry,omitempty"`
}

// Kind returns HostKindWeChat.
func (h WeChatHost) Kind() HostKind { return HostKindWeChat }

// Validate checks required fields.
func (h WeChatHost) Validate() error {
	if h.AppID == "" || h.AppSecret == "" {
		return ErrHostNotConfigured
	}
	return nil
}

// AccessTokenValid reports whether the cached token can still be used.
// A small safety margin avoids presenting a token that expires mid-request.
func (h WeChatHost) AccessTokenValid(now time.Time) bool {
	return h.AccessToken != "" && now.Add(30*time.Second).Before(h.TokenExpiry)
}

// AccessToken is the result of one credential exchange.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
