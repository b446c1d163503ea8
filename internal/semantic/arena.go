package semantic

import (
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/syntax"
)

// ScopeKind enumerates scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeModule             // file top level
	ScopeFunction           // function parameters and body
	ScopeBlock              // block, loop head, catch clause, switch body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is a lexical scope. Parent links are IDs, never pointers.
type Scope struct {
	ID       ScopeID
	Kind     ScopeKind
	Parent   ScopeID
	Span     syntax.Span
	Names    map[string]BindingID
	Children []ScopeID
}

// BindingKind tells how a binding was declared.
type BindingKind uint8

const (
	KindInvalid BindingKind = iota
	KindParameter
	KindLocal
	KindFunction
	KindClass
	KindImport
	KindCatch
)

func (k BindingKind) String() string {
	switch k {
	case KindParameter:
		return "parameter"
	case KindLocal:
		return "local"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindImport:
		return "import"
	case KindCatch:
		return "catch"
	default:
		return "invalid"
	}
}

// Destructuring slots recorded on a Declarator.
const (
	// SlotWhole means the binding receives the whole initializer value.
	SlotWhole = -1
	// SlotNested means the binding sits in an object pattern or a nested pattern.
	SlotNested = -2
)

// Declarator describes the variable declaration that introduced a binding.
type Declarator struct {
	// Keyword is "const", "let" or "var".
	Keyword string
	// Init is the initializer expression, nil when absent.
	Init *sitter.Node
	// Slot is the array pattern index, SlotWhole or SlotNested.
	Slot int
}

// Const reports whether the declaration used const.
func (d Declarator) Const() bool { return d.Keyword == "const" }

// Binding is a single declared name.
type Binding struct {
	ID         BindingID
	Name       string
	Kind       BindingKind
	Scope      ScopeID
	Span       syntax.Span
	Declarator Declarator
}

// Import describes where an import binding comes from.
type Import struct {
	// Module is the import specifier, e.g. "react".
	Module string
	// Imported is the exported name, "default" or "*" for namespace imports.
	Imported string
}

type scopes struct {
	data []Scope
}

func newScopes() *scopes {
	return &scopes{data: make([]Scope, 1, 32)} // index 0 reserved for NoScopeID
}

func (s *scopes) alloc(kind ScopeKind, parent ScopeID, span syntax.Span) ScopeID {
	id := ScopeID(index(len(s.data)))
	s.data = append(s.data, Scope{
		ID:     id,
		Kind:   kind,
		Parent: parent,
		Span:   span,
		Names:  make(map[string]BindingID),
	})
	if p := s.get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *scopes) get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

type bindings struct {
	data []Binding
}

func newBindings() *bindings {
	return &bindings{data: make([]Binding, 1, 64)} // index 0 reserved for NoBindingID
}

func (b *bindings) alloc(binding Binding) BindingID {
	id := BindingID(index(len(b.data)))
	binding.ID = id
	b.data = append(b.data, binding)
	return id
}

func (b *bindings) get(id BindingID) *Binding {
	if !id.IsValid() || int(id) >= len(b.data) {
		return nil
	}
	return &b.data[id]
}

func index(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("semantic arena overflow: %w", err))
	}
	return v
}
