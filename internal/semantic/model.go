package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/syntax"
)

// nodeKey identifies a node within one tree.
type nodeKey struct {
	start uint32
	end   uint32
	typ   string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
}

// Model is the resolved scope graph of one file.
// It is immutable once Build returns.
type Model struct {
	file     *syntax.File
	scopes   *scopes
	bindings *bindings
	module   ScopeID

	scopeOf    map[nodeKey]ScopeID
	refs       map[uint32]BindingID // identifier start byte -> binding
	unresolved map[uint32]string    // identifier start byte -> name
	imports    map[BindingID]Import
}

// File returns the file the model was built from.
func (m *Model) File() *syntax.File { return m.file }

// ModuleScope returns the top-level scope.
func (m *Model) ModuleScope() ScopeID { return m.module }

// Scope returns the scope with the given ID, or nil.
func (m *Model) Scope(id ScopeID) *Scope { return m.scopes.get(id) }

// Binding returns the binding with the given ID, or nil.
func (m *Model) Binding(id BindingID) *Binding { return m.bindings.get(id) }

// Bindings returns every binding in declaration order.
func (m *Model) Bindings() []Binding {
	if len(m.bindings.data) <= 1 {
		return nil
	}
	return m.bindings.data[1:]
}

// ScopeOf returns the scope a node opens, or NoScopeID when it opens none.
// Function nodes open the scope holding their parameters and body locals.
func (m *Model) ScopeOf(n *sitter.Node) ScopeID {
	if n == nil {
		return NoScopeID
	}
	return m.scopeOf[keyOf(n)]
}

// Resolve returns the binding an identifier reference refers to.
// It returns nil for declaration sites, unresolved (global) names and
// nodes that are not references.
func (m *Model) Resolve(n *sitter.Node) *Binding {
	if !syntax.IsIdentifier(n) {
		return nil
	}
	id, ok := m.refs[n.StartByte()]
	if !ok {
		return nil
	}
	return m.bindings.get(id)
}

// IsUnresolved reports whether n is a reference to a name declared nowhere
// in the file, i.e. an ambient global.
func (m *Model) IsUnresolved(n *sitter.Node) bool {
	if !syntax.IsIdentifier(n) {
		return false
	}
	_, ok := m.unresolved[n.StartByte()]
	return ok
}

// Import returns the import origin of a binding.
func (m *Model) Import(id BindingID) (Import, bool) {
	imp, ok := m.imports[id]
	return imp, ok
}

// ImportOf returns the import origin of a module-level name.
func (m *Model) ImportOf(name string) (Import, bool) {
	scope := m.scopes.get(m.module)
	if scope == nil {
		return Import{}, false
	}
	id, ok := scope.Names[name]
	if !ok {
		return Import{}, false
	}
	return m.Import(id)
}

// IsModuleLevel reports whether b is declared at the top level of the file.
func (m *Model) IsModuleLevel(b *Binding) bool {
	return b != nil && b.Scope == m.module
}

// Encloses reports whether scope is ancestor or one of its descendants.
func (m *Model) Encloses(ancestor, scope ScopeID) bool {
	for id := scope; id.IsValid(); {
		if id == ancestor {
			return true
		}
		s := m.scopes.get(id)
		if s == nil {
			return false
		}
		id = s.Parent
	}
	return false
}
