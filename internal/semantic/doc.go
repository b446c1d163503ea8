// Package semantic builds the scope and binding model of a parsed file.
//
// # Overview
//
// Every identifier reference in a file is resolved to the [Binding] that
// declares it. The model is an arena: scopes and bindings live in slices and
// point at each other through [ScopeID] and [BindingID], never through
// pointers, so the graph has no cycles and is cheap to share read-only.
//
//	file, _ := syntax.Parse(ctx, "App.jsx", src)
//	model := semantic.Build(file)
//
//	if b := model.Resolve(ident); b != nil {
//	    fmt.Println(b.Name, b.Kind, model.IsModuleLevel(b))
//	}
//
// # Scopes
//
//	module     file top level, imports and top-level declarations
//	function   parameters and body of any function-like node
//	block      blocks, loop heads, catch clauses, switch bodies, class bodies
//
// var declarations are hoisted to the nearest function (or module) scope.
// let, const, class and function declarations stay in the block that holds
// them. All declarations are visible in their whole scope; the temporal dead
// zone is not modeled.
//
// # Unresolved names
//
// References to names declared nowhere in the file (window, console, JSX
// runtime globals) are recorded as unresolved. [Model.Resolve] returns nil
// for them and [Model.IsUnresolved] reports true.
//
// # Declarators
//
// Local bindings remember their [Declarator]: the keyword, the initializer
// node and the array destructuring slot. This is what lets the stability
// classifier see that setCount in
//
//	const [count, setCount] = useState(0)
//
// is slot 1 of a useState call.
package semantic
