// file: widget/document.go
package widget

import (
	"context"
	"fmt"
	"sync"
)

// Script is a script element in a rendered page.
type Script struct {
	ID  string
	Src string
}

// Mounted is a widget placed on a rendered page. Expanded maps to the
// messenger's expand attribute.
type Mounted struct {
	Config
	Expanded bool
	ready    bool
}

// ToggleControl is available once the widget has been mounted.
func (m *Mounted) ToggleControl() (Toggle, bool) {
	if !m.ready {
		return nil, false
	}
	return m, true
}

func (m *Mounted) IsOpen() bool { return m.Expanded }

func (m *Mounted) Open() { m.Expanded = true }

// PageDocument collects the script and widget elements of one server-rendered page.
type PageDocument struct {
	mu      sync.Mutex
	scripts []Script
	widgets map[string]*Mounted
}

// NewPageDocument returns an empty page.
func NewPageDocument() *PageDocument {
	return &PageDocument{widgets: make(map[string]*Mounted)}
}

// ScriptLoaded reports whether the page already carries the script.
func (d *PageDocument) ScriptLoaded(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.scripts {
		if s.ID == id {
			return true
		}
	}
	return false
}

// InjectScript appends the script tag. A rendered tag counts as loaded.
func (d *PageDocument) InjectScript(id, src string) <-chan error {
	d.mu.Lock()
	d.scripts = append(d.scripts, Script{ID: id, Src: src})
	d.mu.Unlock()

	ch := make(chan error, 1)
	ch <- nil
	return ch
}

// Scripts returns the script tags in insertion order.
func (d *PageDocument) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Script(nil), d.scripts...)
}

// Mount places the widget for cfg on the page.
func (d *PageDocument) Mount(cfg Config) *Mounted {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := &Mounted{Config: cfg, ready: true}
	d.widgets[cfg.AgentID] = m
	return m
}

// FindWidget returns the mounted widget for agentID.
func (d *PageDocument) FindWidget(agentID string) (Widget, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.widgets[agentID]
	if !ok {
		return nil, false
	}
	return m, true
}

// View is what the support page template renders.
type View struct {
	Page    Config
	Scripts []Script
	Widget  *Mounted
}

// Render loads the bootstrap script into a fresh page, mounts the page's
// widget and, when open is set, expands the chat.
func Render(ctx context.Context, cfg Config, open bool) (View, error) {
	doc := NewPageDocument()
	if err := NewLoader(doc).EnsureLoaded(ctx); err != nil {
		return View{}, fmt.Errorf("failed to load agent bootstrap: %w", err)
	}
	mounted := doc.Mount(cfg)
	if open {
		Open(doc, cfg.AgentID)
	}
	return View{Page: cfg, Scripts: doc.Scripts(), Widget: mounted}, nil
}
