package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Walk visits n and its descendants in pre-order, left to right.
// Returning false from fn skips the children of the current node.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), fn)
	}
}

// Children returns all children of n, anonymous tokens included.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NamedChildren returns the named children of n without comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		children = append(children, c)
	}
	return children
}

// FirstNamed returns the first named non-comment child of n, or nil.
func FirstNamed(n *sitter.Node) *sitter.Node {
	if children := NamedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}

// HasToken reports whether n has a direct anonymous child of the given type,
// e.g. the "type" keyword of `import type`.
func HasToken(n *sitter.Node, token string) bool {
	for _, c := range Children(n) {
		if !c.IsNamed() && c.Type() == token {
			return true
		}
	}
	return false
}

// Unparen strips parentheses around an expression.
func Unparen(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = FirstNamed(n)
	}
	return n
}

// IsFunction reports whether n is a function expression usable as a closure.
func IsFunction(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

// IsIdentifier reports whether n is a plain identifier reference or
// an object shorthand property, which also reads a variable.
func IsIdentifier(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier":
		return true
	}
	return false
}

// typeOnly lists TypeScript nodes that never contain value references.
var typeOnly = map[string]bool{
	"type_annotation":           true,
	"type_arguments":            true,
	"type_parameters":           true,
	"type_alias_declaration":    true,
	"interface_declaration":     true,
	"implements_clause":         true,
	"ambient_declaration":       true,
	"index_signature":           true,
	"abstract_method_signature": true,
	"asserts_annotation":        true,
	"opting_type_annotation":    true,
	"omitting_type_annotation":  true,
	"adding_type_annotation":    true,
}

// IsTypeOnly reports whether n is a TypeScript type position.
func IsTypeOnly(n *sitter.Node) bool {
	return n != nil && typeOnly[n.Type()]
}

// StringValue returns the contents of a string literal node without quotes.
func StringValue(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	s := n.Content(src)
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
