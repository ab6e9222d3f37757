package domain

import "strings"

// UploadRequest is one user-triggered file upload. It is constructed per
// UploadRequested message, never persisted, and lives only for the duration
// of one orchestrated attempt.
type UploadRequest struct {
	// ID correlates log lines for one attempt. Assigned by the orchestrator.
	ID string

	// FileName is the name the backend should store the file under.
	FileName string

	// MimeType is the declared content type of the bytes.
	MimeType string

	// Data is the raw file content.
	Data []byte
}

// FailureKind classifies why an upload attempt failed.
type FailureKind string

const (
	// FailureNotConfigured means no image host is active or its stored
	// configuration is missing or corrupt. The user must configure one.
	FailureNotConfigured FailureKind = "not_configured"

	// FailureTimeout means the attempt exceeded the wall-clock budget.
	FailureTimeout FailureKind = "timeout"

	// FailureNetwork means a transport-level failure before a response.
	FailureNetwork FailureKind = "network_error"

	// FailureBackend means the remote rejected the request.
	FailureBackend FailureKind = "backend_error"

	// FailureMalformedResponse means the remote returned an unexpected shape.
	FailureMalformedResponse FailureKind = "malformed_response"
)

// Outcome is the classified result of one upload attempt.
// A successful outcome carries the publicly reachable URL; a failed one
// carries the failure kind, an optional backend status code, and a
// user-facing message.
type Outcome struct {
	URL        string
	Kind       FailureKind
	StatusCode int
	Message    string
}

// Success reports whether the attempt produced a URL.
func (o Outcome) Success() bool { return o.Kind == "" }

// SuccessOutcome builds a successful outcome, upgrading an insecure URL
// scheme to the secure one. Outbound URLs are always https.
func SuccessOutcome(url string) Outcome {
	return Outcome{URL: SecureURL(url)}
}

// FailureOutcome builds a failed outcome.
func FailureOutcome(kind FailureKind, message string) Outcome {
	return Outcome{Kind: kind, Message: message}
}

// SecureURL rewrites an http scheme to https. Other schemes pass through.
func SecureURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return "https://" + rest
	}
	return url
}
