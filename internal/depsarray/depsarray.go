// Package depsarray extracts the declared dependency list of a hook call.
package depsarray

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/hookcall"
	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Status tells whether a dependency list could be read.
type Status int

const (
	// Absent means the hook has no dependencies index or the call omits the
	// argument. The rule does not apply.
	Absent Status = iota
	// Unanalyzable means the argument is not a literal array, or the array
	// contains a spread. The call is skipped.
	Unanalyzable
	// Literal means the entries were extracted.
	Literal
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Unanalyzable:
		return "unanalyzable"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

// Entry is one element of a dependency array.
type Entry struct {
	// Text is the element source, verbatim.
	Text string
	Span syntax.Span
	// Path is the static access path from the root identifier, e.g.
	// ["props", "user"] for props.user. It stops at the first computed
	// access or call.
	Path []string
	// Truncated is set when Path stopped before the end of the expression.
	Truncated bool
	// Root is the binding of the root identifier, nil when the element has
	// no identifier root or the root is a global.
	Root *semantic.Binding
}

// Extract reads the dependency array of a recognized hook call.
func Extract(info *hookcall.Info, model *semantic.Model) ([]Entry, Status) {
	if info == nil || info.Deps == nil {
		return nil, Absent
	}
	array := syntax.Unparen(info.Deps)
	if array.Type() != "array" {
		return nil, Unanalyzable
	}

	elements := syntax.NamedChildren(array)
	entries := make([]Entry, 0, len(elements))
	src := model.File().Src
	for _, elem := range elements {
		if elem.Type() == "spread_element" {
			return nil, Unanalyzable
		}
		root, path, truncated := Root(elem, src)
		entries = append(entries, Entry{
			Text:      elem.Content(src),
			Span:      syntax.SpanOf(elem),
			Path:      path,
			Truncated: truncated,
			Root:      model.Resolve(root),
		})
	}
	return entries, Literal
}

// Root finds the identifier an expression is rooted at and the static
// member path leading from it.
//
// Computed access and calls truncate the path: a[i].b yields root a with
// path [a], f().x yields root f with path [f].
func Root(n *sitter.Node, src []byte) (root *sitter.Node, path []string, truncated bool) {
	if n == nil {
		return nil, nil, false
	}

	switch n.Type() {
	case "identifier":
		return n, []string{n.Content(src)}, false

	case "member_expression":
		root, path, truncated = Root(n.ChildByFieldName("object"), src)
		if root == nil || truncated {
			return root, path, truncated
		}
		property := n.ChildByFieldName("property")
		if property == nil {
			return root, path, true
		}
		return root, append(path, property.Content(src)), false

	case "subscript_expression":
		root, path, _ = Root(n.ChildByFieldName("object"), src)
		return root, path, root != nil

	case "call_expression":
		root, path, _ = Root(n.ChildByFieldName("function"), src)
		return root, path, root != nil

	case "parenthesized_expression", "non_null_expression", "as_expression", "satisfies_expression":
		return Root(syntax.FirstNamed(n), src)
	}

	return nil, nil, false
}
