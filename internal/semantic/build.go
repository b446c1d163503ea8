package semantic

import (
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/syntax"
)

type builder struct {
	m     *Model
	src   []byte
	decls map[uint32]struct{} // identifier start bytes that declare a binding
}

// Build resolves every identifier reference in file.
//
// It runs two passes: the first allocates scopes and declares bindings
// (so hoisted and later declarations are visible), the second resolves
// references against the finished scope graph.
func Build(file *syntax.File) *Model {
	m := &Model{
		file:       file,
		scopes:     newScopes(),
		bindings:   newBindings(),
		scopeOf:    make(map[nodeKey]ScopeID),
		refs:       make(map[uint32]BindingID),
		unresolved: make(map[uint32]string),
		imports:    make(map[BindingID]Import),
	}
	b := &builder{
		m:     m,
		src:   file.Src,
		decls: make(map[uint32]struct{}),
	}

	m.module = b.open(ScopeModule, NoScopeID, file.Root)
	for _, c := range syntax.Children(file.Root) {
		b.declare(c, m.module)
	}
	b.resolve(file.Root, m.module)

	return m
}

func (b *builder) text(n *sitter.Node) string {
	return n.Content(b.src)
}

func (b *builder) open(kind ScopeKind, parent ScopeID, n *sitter.Node) ScopeID {
	id := b.m.scopes.alloc(kind, parent, syntax.SpanOf(n))
	b.m.scopeOf[keyOf(n)] = id
	return id
}

// functionScope returns the nearest scope that receives var declarations.
func (b *builder) functionScope(id ScopeID) ScopeID {
	for id.IsValid() {
		s := b.m.scopes.get(id)
		if s.Kind == ScopeFunction || s.Kind == ScopeModule {
			return id
		}
		id = s.Parent
	}
	return b.m.module
}

func (b *builder) bind(n *sitter.Node, kind BindingKind, scope ScopeID, decl Declarator) BindingID {
	b.decls[n.StartByte()] = struct{}{}

	name := b.text(n)
	s := b.m.scopes.get(scope)
	if existing, ok := s.Names[name]; ok {
		// var redeclaration or overload signatures keep the first binding
		return existing
	}

	id := b.m.bindings.alloc(Binding{
		Name:       name,
		Kind:       kind,
		Scope:      scope,
		Span:       syntax.SpanOf(n),
		Declarator: decl,
	})
	s.Names[name] = id
	return id
}

// declare is the first pass.
func (b *builder) declare(n *sitter.Node, scope ScopeID) {
	if n == nil || syntax.IsTypeOnly(n) {
		return
	}

	switch n.Type() {
	case "import_statement":
		b.declareImport(n, scope)
		return

	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			b.bind(name, KindFunction, scope, Declarator{Slot: SlotWhole})
		}
		b.declareFunction(n, scope)
		return

	case "arrow_function", "function_expression", "function", "generator_function", "method_definition":
		b.declareFunction(n, scope)
		return

	case "class_declaration", "abstract_class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			b.bind(name, KindClass, scope, Declarator{Slot: SlotWhole})
		}

	case "class":
		// a named class expression sees its own name
		scope = b.open(ScopeBlock, scope, n)
		if name := n.ChildByFieldName("name"); name != nil {
			b.bind(name, KindClass, scope, Declarator{Slot: SlotWhole})
		}

	case "enum_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			b.bind(name, KindClass, scope, Declarator{Slot: SlotWhole})
		}
		return

	case "lexical_declaration", "variable_declaration":
		b.declareVariables(n, scope)
		return

	case "statement_block", "switch_body", "for_statement", "class_body":
		scope = b.open(ScopeBlock, scope, n)

	case "for_in_statement":
		scope = b.open(ScopeBlock, scope, n)
		b.declareLoopHead(n, scope)

	case "catch_clause":
		scope = b.open(ScopeBlock, scope, n)
		if param := n.ChildByFieldName("parameter"); param != nil {
			b.declarePattern(param, KindCatch, scope, Declarator{Slot: SlotWhole})
		}
	}

	for _, c := range syntax.Children(n) {
		b.declare(c, scope)
	}
}

func (b *builder) declareFunction(n *sitter.Node, parent ScopeID) {
	scope := b.open(ScopeFunction, parent, n)

	switch n.Type() {
	case "function_expression", "function", "generator_function":
		// a named function expression sees its own name
		if name := n.ChildByFieldName("name"); name != nil {
			b.bind(name, KindFunction, scope, Declarator{Slot: SlotWhole})
		}
	}

	if param := n.ChildByFieldName("parameter"); param != nil {
		b.declarePattern(param, KindParameter, scope, Declarator{Slot: SlotWhole})
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range syntax.NamedChildren(params) {
			b.declarePattern(p, KindParameter, scope, Declarator{Slot: SlotWhole})
		}
		// default values may hold nested closures
		b.declare(params, scope)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() == "statement_block" {
		for _, c := range syntax.Children(body) {
			b.declare(c, scope)
		}
		return
	}
	b.declare(body, scope)
}

func declarationKeyword(n *sitter.Node) string {
	for _, kw := range []string{"const", "let", "var", "using"} {
		if syntax.HasToken(n, kw) {
			return kw
		}
	}
	return ""
}

func (b *builder) declareVariables(n *sitter.Node, scope ScopeID) {
	kw := declarationKeyword(n)
	target := scope
	if kw == "var" {
		target = b.functionScope(scope)
	}

	for _, d := range syntax.NamedChildren(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		value := d.ChildByFieldName("value")
		if name != nil {
			b.declarePattern(name, KindLocal, target, Declarator{Keyword: kw, Init: value, Slot: SlotWhole})
			b.declare(name, scope)
		}
		if value != nil {
			b.declare(value, scope)
		}
	}
}

// declareLoopHead declares `for (const x of xs)` style bindings.
func (b *builder) declareLoopHead(n *sitter.Node, scope ScopeID) {
	left := n.ChildByFieldName("left")
	if left == nil {
		return
	}
	kw := ""
	if kind := n.ChildByFieldName("kind"); kind != nil {
		kw = b.text(kind)
	} else {
		kw = declarationKeyword(n)
	}
	if kw == "" {
		return // assignment to an existing variable
	}
	target := scope
	if kw == "var" {
		target = b.functionScope(scope)
	}
	b.declarePattern(left, KindLocal, target, Declarator{Keyword: kw, Slot: SlotNested})
}

func (b *builder) declarePattern(n *sitter.Node, kind BindingKind, scope ScopeID, decl Declarator) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		b.bind(n, kind, scope, decl)

	case "assignment_pattern", "object_assignment_pattern":
		b.declarePattern(n.ChildByFieldName("left"), kind, scope, decl)

	case "rest_pattern":
		b.declarePattern(syntax.FirstNamed(n), kind, scope, decl)

	case "required_parameter", "optional_parameter":
		b.declarePattern(n.ChildByFieldName("pattern"), kind, scope, decl)

	case "pair_pattern":
		b.declarePattern(n.ChildByFieldName("value"), kind, scope, decl)

	case "object_pattern":
		nested := decl
		nested.Slot = SlotNested
		for _, c := range syntax.NamedChildren(n) {
			b.declarePattern(c, kind, scope, nested)
		}

	case "array_pattern":
		slot := 0
		for _, c := range syntax.Children(n) {
			if !c.IsNamed() {
				if c.Type() == "," {
					slot++
				}
				continue
			}
			if c.Type() == "comment" {
				continue
			}
			elem := decl
			elem.Slot = SlotNested
			if decl.Slot == SlotWhole && c.Type() != "rest_pattern" {
				elem.Slot = slot
			}
			b.declarePattern(c, kind, scope, elem)
		}
	}
}

func (b *builder) declareImport(n *sitter.Node, scope ScopeID) {
	if syntax.HasToken(n, "type") {
		return
	}
	module := syntax.StringValue(n.ChildByFieldName("source"), b.src)

	for _, clause := range syntax.NamedChildren(n) {
		if clause.Type() != "import_clause" {
			continue
		}
		for _, part := range syntax.NamedChildren(clause) {
			switch part.Type() {
			case "identifier":
				b.bindImport(part, scope, Import{Module: module, Imported: "default"})

			case "namespace_import":
				if local := syntax.FirstNamed(part); local != nil {
					b.bindImport(local, scope, Import{Module: module, Imported: "*"})
				}

			case "named_imports":
				for _, spec := range syntax.NamedChildren(part) {
					if spec.Type() != "import_specifier" || syntax.HasToken(spec, "type") {
						continue
					}
					name := spec.ChildByFieldName("name")
					if name == nil {
						continue
					}
					local := name
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						local = alias
					}
					b.bindImport(local, scope, Import{
						Module:   module,
						Imported: syntax.StringValue(name, b.src),
					})
				}
			}
		}
	}
}

func (b *builder) bindImport(n *sitter.Node, scope ScopeID, imp Import) {
	id := b.bind(n, KindImport, scope, Declarator{Slot: SlotWhole})
	if _, ok := b.m.imports[id]; !ok {
		b.m.imports[id] = imp
	}
}

// resolve is the second pass.
func (b *builder) resolve(n *sitter.Node, scope ScopeID) {
	if n == nil || syntax.IsTypeOnly(n) {
		return
	}
	if id, ok := b.m.scopeOf[keyOf(n)]; ok {
		scope = id
	}

	switch n.Type() {
	case "identifier", "shorthand_property_identifier":
		b.reference(n, scope)
		return

	case "import_statement", "jsx_closing_element", "enum_declaration":
		return

	case "as_expression", "satisfies_expression":
		b.resolve(syntax.FirstNamed(n), scope)
		return

	case "export_specifier":
		b.resolve(n.ChildByFieldName("name"), scope)
		return

	case "jsx_opening_element", "jsx_self_closing_element":
		name := n.ChildByFieldName("name")
		for _, c := range syntax.Children(n) {
			if name != nil && c.StartByte() == name.StartByte() && c.Type() == "identifier" && isIntrinsic(b.text(c)) {
				continue
			}
			b.resolve(c, scope)
		}
		return
	}

	for _, c := range syntax.Children(n) {
		b.resolve(c, scope)
	}
}

func (b *builder) reference(n *sitter.Node, scope ScopeID) {
	start := n.StartByte()
	if _, ok := b.decls[start]; ok {
		return
	}
	name := b.text(n)
	if id := b.lookup(scope, name); id.IsValid() {
		b.m.refs[start] = id
		return
	}
	b.m.unresolved[start] = name
}

func (b *builder) lookup(scope ScopeID, name string) BindingID {
	for id := scope; id.IsValid(); {
		s := b.m.scopes.get(id)
		if s == nil {
			break
		}
		if binding, ok := s.Names[name]; ok {
			return binding
		}
		id = s.Parent
	}
	return NoBindingID
}

// isIntrinsic reports whether a JSX tag name is a host element like <div>.
func isIntrinsic(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}
