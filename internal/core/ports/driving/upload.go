package driving

import (
	"context"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

// UploadOrchestrator turns a raw upload request into a classified outcome,
// enforcing configuration checks, backend selection and a hard wall-clock
// budget. All failures are converted to the outcome taxonomy; nothing
// escapes this boundary as a fault.
type UploadOrchestrator interface {
	Upload(ctx context.Context, req domain.UploadRequest) domain.Outcome
}
