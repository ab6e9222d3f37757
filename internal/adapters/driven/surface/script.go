// Package surface adapts the core's outbound editor commands to script
// invocations evaluated inside the embedded editing surface.
package surface

import (
	"encoding/json"
	"fmt"

	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// Evaluator executes a script fragment in the embedded surface. Host shells
// (a webview, a test harness) provide the implementation.
type Evaluator interface {
	Evaluate(script string)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(script string)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(script string) { f(script) }

// Ensure ScriptSurface implements the interfaces.
var (
	_ driven.EditorSurface = (*ScriptSurface)(nil)
	_ driven.ErrorSink     = (*ScriptSurface)(nil)
)

// ScriptSurface renders editor commands as script calls. String arguments are
// JSON-encoded before interpolation so they survive the script boundary
// regardless of quotes, newlines or control characters in the text.
type ScriptSurface struct {
	eval Evaluator
}

// NewScriptSurface creates a surface bound to an evaluator.
func NewScriptSurface(eval Evaluator) *ScriptSurface {
	return &ScriptSurface{eval: eval}
}

// SetContent replaces the surface's document text.
func (s *ScriptSurface) SetContent(text string) {
	s.eval.Evaluate(fmt.Sprintf("setContent(%s);", encodeString(text)))
}

// ScrollTo moves the surface to a fractional offset.
func (s *ScriptSurface) ScrollTo(factor float64) {
	s.eval.Evaluate(fmt.Sprintf("scroll(%g);", factor))
}

// UploadComplete resolves the pending upload with url.
func (s *ScriptSurface) UploadComplete(url string) {
	s.eval.Evaluate(fmt.Sprintf("window.onFileUploadComplete(%s);", encodeString(url)))
}

// UploadFailed resolves the pending upload without a URL.
func (s *ScriptSurface) UploadFailed() {
	s.eval.Evaluate("window.onFileUploadComplete();")
}

// Report surfaces an error to the user. The embedded surface has no error
// channel of its own, so failures are logged on the host side.
func (s *ScriptSurface) Report(err error) {
	logger.Error("editor: %v", err)
}

// encodeString returns text as a script string literal. JSON string encoding
// is a strict subset of the script grammar, so the output needs no further
// quoting.
func encodeString(text string) string {
	raw, err := json.Marshal(text)
	if err != nil {
		// Marshal of a string cannot fail; keep the command well-formed anyway.
		return `""`
	}
	return string(raw)
}
