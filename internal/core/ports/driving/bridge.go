package driving

import (
	"context"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

// BridgeRouter is the single entry point for inbound messages from the
// embedded surface.
//
// Handle must not block the dispatch context beyond payload decoding and
// state mutation: any work that can suspend is handed off and the call
// returns immediately. Duplicate Load deliveries are safe.
type BridgeRouter interface {
	Handle(ctx context.Context, msg domain.Message)
}
