// Package syntax parses JavaScript and TypeScript sources with tree-sitter.
//
// # Overview
//
// The analyzer never walks raw bytes. Every source file is turned into a
// [File] holding the tree-sitter tree, and the rest of hookdeps reads nodes
// through the small helper surface defined here:
//
//	file, err := syntax.Parse(ctx, "App.tsx", src)
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	syntax.Walk(file.Root, func(n *sitter.Node) bool {
//	    if n.Type() == "call_expression" {
//	        span := file.Span(n)
//	        ...
//	    }
//	    return true
//	})
//
// # Languages
//
// The grammar is chosen from the file extension:
//
//	.js .jsx .mjs .cjs  -> javascript (JSX enabled)
//	.ts .mts .cts       -> typescript
//	.tsx                -> tsx
//
// Any other extension fails with [ErrUnsupportedLanguage].
//
// # Spans
//
// [Span] carries byte offsets plus 1-based line and column positions. Columns
// count bytes, the same way tree-sitter reports them.
package syntax
