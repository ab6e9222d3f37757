package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostKind_IsValid(t *testing.T) {
	assert.True(t, HostKindGitHub.IsValid())
	assert.True(t, HostKindWeChat.IsValid())
	assert.False(t, HostKind("imgur").IsValid())
	assert.False(t, HostKind("").IsValid())
}

func TestGitHubHost_Validate(t *testing.T) {
	host := GitHubHost{Token: "t", Repo: "u/r", Branch: "main"}
	require.NoError(t, host.Validate())
	assert.Equal(t, HostKindGitHub, host.Kind())

	assert.ErrorIs(t, GitHubHost{Repo: "u/r", Branch: "main"}.Validate(), ErrHostNotConfigured)
	assert.ErrorIs(t, GitHubHost{Token: "t", Branch: "main"}.Validate(), ErrHostNotConfigured)
	assert.ErrorIs(t, GitHubHost{Token: "t", Repo: "u/r"}.Validate(), ErrHostNotConfigured)
}

func TestWeChatHost_Validate(t *testing.T) {
	host := WeChatHost{AppID: "wx1", AppSecret: "s"}
	require.NoError(t, host.Validate())
	assert.Equal(t, HostKindWeChat, host.Kind())

	assert.ErrorIs(t, WeChatHost{AppID: "wx1"}.Validate(), ErrHostNotConfigured)
	assert.ErrorIs(t, WeChatHost{AppSecret: "s"}.Validate(), ErrHostNotConfigured)
}

func TestWeChatHost_AccessTokenValid(t *testing.T) {
	now := time.Now()

	host := WeChatHost{AccessToken: "tok", TokenExpiry: now.Add(time.Hour)}
	assert.True(t, host.AccessTokenValid(now))

	// Expired.
	host.TokenExpiry = now.Add(-time.Minute)
	assert.False(t, host.AccessTokenValid(now))

	// Inside the safety margin.
	host.TokenExpiry = now.Add(10 * time.Second)
	assert.False(t, host.AccessTokenValid(now))

	// No token at all.
	assert.False(t, WeChatHost{TokenExpiry: now.Add(time.Hour)}.AccessTokenValid(now))
}
