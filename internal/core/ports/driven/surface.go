package driven

// EditorSurface is the outbound command channel to the embedded editing
// surface. Commands are fire-and-forget remote invocations: ordering is not
// guaranteed across distinct commands, but implementations must deliver each
// command type in FIFO order.
//
// String arguments cross a script boundary and must be escaped by the
// implementation so they survive round-tripping.
type EditorSurface interface {
	// SetContent replaces the surface's document text.
	SetContent(text string)

	// ScrollTo moves the surface to a fractional offset in [0, 1].
	ScrollTo(factor float64)

	// UploadComplete resolves the surface's pending upload with a URL.
	UploadComplete(url string)

	// UploadFailed resolves the surface's pending upload without a URL,
	// clearing its pending-upload UI state.
	UploadFailed()
}

// ErrorSink receives user-facing failure reports from the core.
type ErrorSink interface {
	Report(err error)
}
