package domain

// DocumentState is the host-side copy of the document being edited.
// It is owned exclusively by the content service; the bridge router and the
// upload orchestrator never mutate it directly.
type DocumentState struct {
	// Text is the full markdown source of the document.
	Text string

	// ScrollFactor is the fractional scroll offset in [0, 1].
	// It is session-local and never persisted.
	ScrollFactor float64
}

// ClampScroll bounds a fractional scroll offset to [0, 1].
// The surface reports fractions, not pixels, so anything outside the range
// is a rounding artefact rather than a meaningful position.
func ClampScroll(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
