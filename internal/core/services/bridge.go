package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driving"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// Ensure BridgeRouter implements the interface.
var _ driving.BridgeRouter = (*BridgeRouter)(nil)

// BridgeRouter demultiplexes inbound tagged messages from the embedded
// surface and marshals outbound commands back to it.
//
// Handle runs on the caller's dispatch context and never blocks beyond
// decoding and state mutation; each upload runs on its own goroutine so a
// slow backend never stalls subsequent content or scroll messages.
type BridgeRouter struct {
	content   driving.ContentService
	uploads   driving.UploadOrchestrator
	surface   driven.EditorSurface
	errs      driven.ErrorSink
	onDismiss func()

	inflight sync.WaitGroup
}

// NewBridgeRouter creates a router. onDismiss is the host's overlay-dismiss
// signal for Clicked messages and may be nil.
func NewBridgeRouter(
	content driving.ContentService,
	uploads driving.UploadOrchestrator,
	surface driven.EditorSurface,
	errs driven.ErrorSink,
	onDismiss func(),
) *BridgeRouter {
	return &BridgeRouter{
		content:   content,
		uploads:   uploads,
		surface:   surface,
		errs:      errs,
		onDismiss: onDismiss,
	}
}

// Handle dispatches one inbound message. Malformed payloads are reported,
// never fatal. Duplicate Load deliveries are safe.
func (r *BridgeRouter) Handle(ctx context.Context, msg domain.Message) {
	logger.Debug("bridge: %s", msg.Channel)

	switch msg.Channel {
	case domain.ChannelLoad:
		r.surface.SetContent(r.content.Text())

	case domain.ChannelContentChanged:
		text, err := msg.Text()
		if err != nil {
			r.errs.Report(err)
			return
		}
		r.content.SetText(text)

	case domain.ChannelScrolled:
		factor, err := msg.ScrollFactor()
		if err != nil {
			r.errs.Report(err)
			return
		}
		r.content.SetScroll(factor)

	case domain.ChannelClicked:
		if r.onDismiss != nil {
			r.onDismiss()
		}

	case domain.ChannelError:
		text, err := msg.Text()
		if err != nil {
			r.errs.Report(err)
			return
		}
		r.errs.Report(fmt.Errorf("editor surface: %s", text))

	case domain.ChannelUploadRequested:
		r.handleUpload(ctx, msg)

	default:
		r.errs.Report(fmt.Errorf("%w: unknown channel %q", domain.ErrMalformedPayload, msg.Channel))
	}
}

// handleUpload validates the payload and hands off to the orchestrator.
// Every failure path, including a malformed payload, emits the no-argument
// failure command so the surface's pending-upload UI is never left hanging.
func (r *BridgeRouter) handleUpload(ctx context.Context, msg domain.Message) {
	req, err := msg.UploadRequest()
	if err != nil {
		r.errs.Report(err)
		r.surface.UploadFailed()
		return
	}

	// Detach from the dispatch context: the upload outlives this call and
	// is bounded by the orchestrator's own deadline.
	uploadCtx := context.WithoutCancel(ctx)

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.finish(r.uploads.Upload(uploadCtx, *req))
	}()
}

// finish emits the outbound command for one completed attempt.
func (r *BridgeRouter) finish(outcome domain.Outcome) {
	if outcome.Success() {
		r.surface.UploadComplete(outcome.URL)
		return
	}
	r.errs.Report(errors.New(outcome.Message))
	r.surface.UploadFailed()
}

// Wait blocks until all in-flight uploads have reported. Test helper.
func (r *BridgeRouter) Wait() {
	r.inflight.Wait()
}
