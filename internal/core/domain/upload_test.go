package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureURL(t *testing.T) {
	assert.Equal(t, "https://x/x.png", SecureURL("http://x/x.png"))
	assert.Equal(t, "https://x/x.png", SecureURL("https://x/x.png"))
	assert.Equal(t, "ftp://x/x.png", SecureURL("ftp://x/x.png"))
	assert.Empty(t, SecureURL(""))
}

func TestSuccessOutcome_UpgradesScheme(t *testing.T) {
	o := SuccessOutcome("http://cdn.example/img.png")
	assert.True(t, o.Success())
	assert.Equal(t, "https://cdn.example/img.png", o.URL)
}

func TestFailureOutcome(t *testing.T) {
	o := FailureOutcome(FailureTimeout, "upload timed out")
	assert.False(t, o.Success())
	assert.Equal(t, FailureTimeout, o.Kind)
	assert.Equal(t, "upload timed out", o.Message)
	assert.Empty(t, o.URL)
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, 0.0, ClampScroll(-0.1))
	assert.Equal(t, 0.5, ClampScroll(0.5))
	assert.Equal(t, 1.0, ClampScroll(1.7))
}
