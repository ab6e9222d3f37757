package driven

import (
	"context"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

// TokenExchanger resolves a short-lived access token from an app credential
// pair. It is the credential-refresh collaborator for backends whose tokens
// expire; the wire shape of the refresh call is the adapter's concern.
type TokenExchanger interface {
	Exchange(ctx context.Context, appID, secret string) (domain.AccessToken, error)
}
