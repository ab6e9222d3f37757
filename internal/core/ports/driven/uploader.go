package driven

import (
	"context"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
)

// Uploader is the one polymorphic upload capability: given bytes, a name and
// a MIME type, produce a publicly reachable URL or fail.
//
// Upload may suspend on network I/O and must honour ctx cancellation at I/O
// boundaries so the orchestrator can abort an in-flight request without
// leaking the connection.
type Uploader interface {
	Upload(ctx context.Context, req domain.UploadRequest) (string, error)
}

// UploaderFactory maps a configured image host variant to a concrete
// Uploader. The mapping is pure; an unknown variant returns
// domain.ErrUnsupportedHost rather than a silent fallthrough.
type UploaderFactory interface {
	Create(host domain.ImageHost) (Uploader, error)
}
