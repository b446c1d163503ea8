package stability

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// ModuleLevel matches bindings declared at the top level of the file.
var ModuleLevel = Predicate{
	Name: "module-level",
	Match: func(s Subject) bool {
		return s.Model.IsModuleLevel(s.Binding)
	},
}

// StableHookResult matches const bindings that receive a stable part of a
// governed hook call's result:
//
//	const [state, setState] = useState(0) // setState
//	const ref = useRef(null)              // ref
var StableHookResult = Predicate{
	Name: "stable-hook-result",
	Match: func(s Subject) bool {
		b := s.Binding
		if b.Kind != semantic.KindLocal || !b.Declarator.Const() || s.Recognizer == nil {
			return false
		}
		init := syntax.Unparen(b.Declarator.Init)
		if init == nil || init.Type() != "call_expression" {
			return false
		}
		desc, _, ok := s.Recognizer.Match(init)
		if !ok {
			return false
		}
		switch slot := b.Declarator.Slot; {
		case slot == semantic.SlotWhole:
			return desc.StableResult.Whole
		case slot >= 0:
			return desc.StableResult.Whole || desc.StableResult.Has(slot)
		}
		return false
	},
}

// ConstantLiteral matches const bindings initialized with a primitive
// literal, e.g. `const limit = 10`.
var ConstantLiteral = Predicate{
	Name: "constant-literal",
	Match: func(s Subject) bool {
		b := s.Binding
		if b.Kind != semantic.KindLocal || !b.Declarator.Const() || b.Declarator.Slot != semantic.SlotWhole {
			return false
		}
		return isPrimitiveLiteral(syntax.Unparen(b.Declarator.Init))
	},
}

func isPrimitiveLiteral(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "number", "string", "true", "false", "null", "regex":
		return true
	case "template_string":
		for _, c := range syntax.NamedChildren(n) {
			if c.Type() == "template_substitution" {
				return false
			}
		}
		return true
	case "unary_expression":
		operand := n.ChildByFieldName("argument")
		return operand != nil && operand.Type() == "number"
	}
	return false
}
