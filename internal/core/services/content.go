package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/inkbridge-labs/inkbridge/internal/core/domain"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driving"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// DefaultArticle is the bundled document shown before anything is persisted.
const DefaultArticle = `# Welcome to inkbridge

Start typing here. Your text is saved automatically and restored the next
time you open the editor.

Drop an image into the editor to upload it to your configured image host.
`

// ContentService is the single source of truth for the document state.
// Text changes persist best-effort in the background; the in-memory copy
// stays authoritative for the session.
type ContentService struct {
	store       driven.KeyValueStore
	defaultText string

	mu    sync.RWMutex
	state domain.DocumentState

	// persisting tracks background writes so tests can flush them.
	persisting sync.WaitGroup
}

// NewContentService creates a content service backed by store.
// An empty defaultText selects the bundled default article.
func NewContentService(store driven.KeyValueStore, defaultText string) *ContentService {
	if defaultText == "" {
		defaultText = DefaultArticle
	}
	return &ContentService{
		store:       store,
		defaultText: defaultText,
	}
}

// SetText overwrites the document text and schedules a background persist.
// Persistence failure is logged and swallowed.
func (s *ContentService) SetText(text string) {
	s.mu.Lock()
	s.state.Text = text
	s.mu.Unlock()

	s.persisting.Add(1)
	go func() {
		defer s.persisting.Done()
		if err := s.store.Set(keyLastArticle, []byte(text)); err != nil {
			logger.Warn("persist article: %v", err)
		}
	}()
}

// SetScroll overwrites the fractional scroll offset. Never persisted.
func (s *ContentService) SetScroll(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ScrollFactor = domain.ClampScroll(factor)
}

// Text returns the current in-memory document text.
func (s *ContentService) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Text
}

// Scroll returns the current fractional scroll offset.
func (s *ContentService) Scroll() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ScrollFactor
}

// Load restores the persisted text, falling back to the default document.
// The loaded text becomes the current state.
func (s *ContentService) Load() string {
	text := s.defaultText
	if b, ok := s.store.Get(keyLastArticle); ok && len(b) > 0 {
		text = string(b)
	}

	s.mu.Lock()
	s.state.Text = text
	s.mu.Unlock()
	return text
}

// acceptedExtensions gates OpenArticle. Anything else is rejected without a
// read attempt.
var acceptedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// OpenArticle reads an external markdown file and makes it the current text.
func (s *ContentService) OpenArticle(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !acceptedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, ext)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("open article: %w", err)
	}

	text := string(b)
	s.SetText(text)
	return text, nil
}

// Watch reloads path whenever it changes on disk, delivering the new text
// through the same SetText path and then to onChange. It returns once the
// watcher is installed; delivery stops when ctx is cancelled.
func (s *ContentService) Watch(ctx context.Context, path string, onChange func(text string)) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !acceptedExtensions[ext] {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, ext)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				b, err := os.ReadFile(path)
				if err != nil {
					logger.Warn("reload %s: %v", path, err)
					continue
				}
				text := string(b)
				s.SetText(text)
				if onChange != nil {
					onChange(text)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", path, err)
			}
		}
	}()

	return nil
}

// Flush blocks until pending background persists finish. Test helper.
func (s *ContentService) Flush() {
	s.persisting.Wait()
}
