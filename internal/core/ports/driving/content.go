package driving

import "context"

// ContentService is the single source of truth for the document state.
type ContentService interface {
	// SetText overwrites the document text and persists it best-effort in
	// the background. Persistence failure never affects the in-memory copy.
	SetText(text string)

	// SetScroll overwrites the session-local fractional scroll offset.
	SetScroll(factor float64)

	// Load returns the persisted text if present, else the bundled default
	// document. It never fails; read errors fall back to the default.
	Load() string

	// Text returns the current in-memory document text.
	Text() string

	// Scroll returns the current fractional scroll offset.
	Scroll() float64

	// OpenArticle reads raw text from an external markdown file. Extensions
	// outside the accepted set (md, markdown) are rejected without a read.
	OpenArticle(path string) (string, error)

	// Watch reloads path on external modification, delivering the new text
	// through onChange until ctx is cancelled.
	Watch(ctx context.Context, path string, onChange func(text string)) error
}
