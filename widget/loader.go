// file: widget/loader.go
package widget

import (
	"context"
	"sync"

	"mentora-hub/logger"
)

// Document is the page a widget is mounted into.
type Document interface {
	// ScriptLoaded reports whether a script with this element id is present.
	ScriptLoaded(id string) bool
	// InjectScript adds one script element and returns a channel that
	// receives the load result.
	InjectScript(id, src string) <-chan error
}

// Loader bootstraps the agent script into a document once. The first
// EnsureLoaded call starts the load; every caller waits on the same result.
type Loader struct {
	doc  Document
	id   string
	src  string
	once sync.Once
	done chan struct{}
	err  error
}

// NewLoader returns a loader for the shared bootstrap script.
func NewLoader(doc Document) *Loader {
	return NewLoaderFor(doc, ScriptID, ScriptURL)
}

// NewLoaderFor returns a loader for an arbitrary script.
func NewLoaderFor(doc Document, id, src string) *Loader {
	return &Loader{doc: doc, id: id, src: src, done: make(chan struct{})}
}

// EnsureLoaded blocks until the script has loaded or ctx ends.
func (l *Loader) EnsureLoaded(ctx context.Context) error {
	l.once.Do(func() { go l.load() })
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) load() {
	defer close(l.done)
	if l.doc.ScriptLoaded(l.id) {
		logger.Debug.Printf("[Loader] %s already present", l.id)
		return
	}
	l.err = <-l.doc.InjectScript(l.id, l.src)
	if l.err != nil {
		logger.Warn.Printf("[Loader] %s failed to load: %v", l.id, l.err)
	}
}
