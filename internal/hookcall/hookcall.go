// Package hookcall recognizes hook calls.
//
// A call is a governed hook call when its callee name is in the registry,
// its import provenance is acceptable for the matched descriptor, and the
// argument at the descriptor's closure index is a function expression.
// Anything else is silently out of scope: malformed usage is not an error.
package hookcall

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/registry"
	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Info describes a recognized hook call.
type Info struct {
	Call       *sitter.Node
	Callee     *sitter.Node
	Name       string
	Descriptor registry.HookDescriptor
	Closure    *sitter.Node
	// Deps is the dependency array argument, nil when the descriptor has
	// no dependencies index or the call omits it.
	Deps *sitter.Node
}

// Recognizer matches call expressions of one file against a registry.
type Recognizer struct {
	reg   *registry.Registry
	model *semantic.Model
}

// New creates a recognizer for the file described by model.
func New(reg *registry.Registry, model *semantic.Model) *Recognizer {
	return &Recognizer{reg: reg, model: model}
}

// Recognize returns the hook call info for call, or false when the call is
// not a governed hook call.
func (r *Recognizer) Recognize(call *sitter.Node) (*Info, bool) {
	desc, callee, ok := r.Match(call)
	if !ok || !desc.TakesClosure() {
		return nil, false
	}

	args := Arguments(call)
	if desc.ClosureArgIndex >= len(args) {
		return nil, false
	}
	closure := syntax.Unparen(args[desc.ClosureArgIndex])
	if !syntax.IsFunction(closure) {
		return nil, false
	}

	info := &Info{
		Call:       call,
		Callee:     callee,
		Name:       desc.Name,
		Descriptor: desc,
		Closure:    closure,
	}
	if idx := desc.DependenciesArgIndex; idx != registry.NoIndex && idx < len(args) {
		info.Deps = args[idx]
	}
	return info, true
}

// Match resolves the callee of call to a registered descriptor and checks
// its provenance. The closure argument is not inspected, so Match also
// accepts result-only hooks such as useState.
func (r *Recognizer) Match(call *sitter.Node) (registry.HookDescriptor, *sitter.Node, bool) {
	if call == nil || call.Type() != "call_expression" {
		return registry.HookDescriptor{}, nil, false
	}
	callee := syntax.Unparen(call.ChildByFieldName("function"))
	name, origin, viaNamespace, ok := r.calleeName(callee)
	if !ok {
		return registry.HookDescriptor{}, nil, false
	}

	desc, ok := r.reg.Lookup(name)
	if !ok {
		return registry.HookDescriptor{}, nil, false
	}
	if desc.RequiresCanonicalImport && !r.fromCanonical(origin, name, viaNamespace) {
		return registry.HookDescriptor{}, nil, false
	}
	return desc, callee, true
}

// calleeName extracts the hook name from `useFoo` or `React.useFoo`.
// origin is the identifier whose import decides provenance.
func (r *Recognizer) calleeName(callee *sitter.Node) (name string, origin *sitter.Node, viaNamespace, ok bool) {
	if callee == nil {
		return "", nil, false, false
	}
	src := r.model.File().Src

	switch callee.Type() {
	case "identifier":
		return callee.Content(src), callee, false, true

	case "member_expression":
		object := syntax.Unparen(callee.ChildByFieldName("object"))
		property := callee.ChildByFieldName("property")
		if object == nil || property == nil || object.Type() != "identifier" {
			return "", nil, false, false
		}
		if property.Type() != "property_identifier" {
			return "", nil, false, false
		}
		return property.Content(src), object, true, true
	}

	return "", nil, false, false
}

func (r *Recognizer) fromCanonical(origin *sitter.Node, name string, viaNamespace bool) bool {
	b := r.model.Resolve(origin)
	if b == nil {
		return false
	}
	imp, ok := r.model.Import(b.ID)
	if !ok || imp.Module != registry.CanonicalModule {
		return false
	}
	if viaNamespace {
		return imp.Imported == "default" || imp.Imported == "*"
	}
	return imp.Imported == name
}

// Arguments returns the argument expressions of a call, comments excluded.
func Arguments(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return nil
	}
	return syntax.NamedChildren(args)
}
