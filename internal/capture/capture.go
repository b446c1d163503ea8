// Package capture collects the outer-scope references a closure makes.
package capture

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Reference is one occurrence of a captured binding.
type Reference struct {
	Binding *semantic.Binding
	Span    syntax.Span
}

// Group is every occurrence of one captured binding, in source order.
type Group struct {
	Binding    *semantic.Binding
	References []Reference
}

// First returns the span of the first occurrence.
func (g Group) First() syntax.Span {
	return g.References[0].Span
}

// Collect walks closure in pre-order, left to right, and returns every
// reference to a binding declared outside of it.
//
// References bound inside the closure (its parameters, its locals, locals
// of nested functions) and references to names the file never declares are
// dropped.
func Collect(closure *sitter.Node, model *semantic.Model) []Reference {
	inner := model.ScopeOf(closure)
	if !inner.IsValid() {
		return nil
	}

	var refs []Reference
	syntax.Walk(closure, func(n *sitter.Node) bool {
		if syntax.IsTypeOnly(n) {
			return false
		}
		if !syntax.IsIdentifier(n) {
			return true
		}
		b := model.Resolve(n)
		if b == nil || model.Encloses(inner, b.Scope) {
			return false
		}
		refs = append(refs, Reference{Binding: b, Span: syntax.SpanOf(n)})
		return false
	})
	return refs
}

// GroupByBinding groups references by binding, ordered by first occurrence.
func GroupByBinding(refs []Reference) []Group {
	index := make(map[semantic.BindingID]int)
	var groups []Group
	for _, ref := range refs {
		i, ok := index[ref.Binding.ID]
		if !ok {
			i = len(groups)
			index[ref.Binding.ID] = i
			groups = append(groups, Group{Binding: ref.Binding})
		}
		groups[i].References = append(groups[i].References, ref)
	}
	return groups
}
