// Package face implements a registry of named terminal styles.
//
// Styled text refers to faces by name (see the ui package); the registry
// maps those names to concrete styles when the text is painted. Faces can
// be redefined at runtime, and saved and restored in groups, which is how
// the modeline temporarily restyles its host for the duration of a session.
package face

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Registry maps face names to styles. The zero value is not usable; use
// NewRegistry or Default.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]lipgloss.Style
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{styles: make(map[string]lipgloss.Style)}
}

// Default returns a registry with the standard faces used by the modeline
// and its host.
func Default() *Registry {
	reg := NewRegistry()
	for name, spec := range map[string]string{
		"mode-line":        "fg=252 bg=238",
		"mode-line-hidden": "faint",
		"prompt":           "bold",
		"shadow":           "fg=244",
		"warning":          "fg=214",
		"error":            "fg=203 bold",
		"control":          "reverse",
	} {
		// Specs in this table are known to parse.
		reg.Define(name, spec)
	}
	return reg
}

// Get returns the style of the named face. An undefined name returns the
// unstyled style, so Get can be used directly as a ui.StyleFunc.
func (reg *Registry) Get(name string) lipgloss.Style {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.styles[name]
}

// Has reports whether the named face is defined.
func (reg *Registry) Has(name string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.styles[name]
	return ok
}

// Set defines or redefines the named face.
func (reg *Registry) Set(name string, style lipgloss.Style) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.styles[name] = style
}

// Unset removes the named face.
func (reg *Registry) Unset(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.styles, name)
}

// Snapshot records the definitions of a set of faces at a point in time.
type Snapshot struct {
	reg    *Registry
	styles map[string]lipgloss.Style
	absent map[string]bool
}

// Save snapshots the named faces so that they can be restored later.
func (reg *Registry) Save(names ...string) Snapshot {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	snap := Snapshot{
		reg:    reg,
		styles: make(map[string]lipgloss.Style),
		absent: make(map[string]bool),
	}
	for _, name := range names {
		if style, ok := reg.styles[name]; ok {
			snap.styles[name] = style
		} else {
			snap.absent[name] = true
		}
	}
	return snap
}

// Restore reinstates the saved definitions, removing faces that did not
// exist when the snapshot was taken.
func (snap Snapshot) Restore() {
	if snap.reg == nil {
		return
	}
	snap.reg.mu.Lock()
	defer snap.reg.mu.Unlock()
	for name, style := range snap.styles {
		snap.reg.styles[name] = style
	}
	for name := range snap.absent {
		delete(snap.reg.styles, name)
	}
}
