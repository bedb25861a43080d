// Package advice tracks reversible modifications to a host: replaced
// function values, added hooks, swapped styles. Each modification is keyed
// by an identity string; installing is idempotent per key, and every
// modification can be undone individually or all at once, in reverse
// order of installation.
//
// A Table is not safe for concurrent use; modifications are expected to
// happen on the host's event loop, where enable and disable run.
package advice

// Table is a registry of installed modifications.
type Table struct {
	undo  map[string]func()
	order []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{undo: make(map[string]func())}
}

// Install performs a modification keyed by key, unless one with the same
// key is already installed. The install function performs the modification
// and returns the function that undoes it.
func (t *Table) Install(key string, install func() (undo func())) {
	if _, ok := t.undo[key]; ok {
		return
	}
	t.undo[key] = install()
	t.order = append(t.order, key)
}

// Installed reports whether a modification with the given key is installed.
func (t *Table) Installed(key string) bool {
	_, ok := t.undo[key]
	return ok
}

// Uninstall undoes the modification with the given key. Uninstalling a key
// that is not installed is a no-op.
func (t *Table) Uninstall(key string) {
	undo, ok := t.undo[key]
	if !ok {
		return
	}
	undo()
	delete(t.undo, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// UninstallAll undoes all installed modifications, in reverse order of
// installation.
func (t *Table) UninstallAll() {
	for i := len(t.order) - 1; i >= 0; i-- {
		key := t.order[i]
		t.undo[key]()
		delete(t.undo, key)
	}
	t.order = nil
}

// Wrap replaces the function at p with wrap(*p), keyed by key in the
// table. Uninstalling restores the original function value. Like Install,
// wrapping under an already installed key is a no-op, so a function cannot
// be wrapped twice by the same key.
func Wrap[F any](t *Table, key string, p *F, wrap func(F) F) {
	t.Install(key, func() func() {
		old := *p
		*p = wrap(old)
		return func() { *p = old }
	})
}
