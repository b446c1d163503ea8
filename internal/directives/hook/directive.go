// Package hook handles // hookdeps-hook directives.
//
// A directive on the line above a module-level declaration registers the
// declared function as a hook for the file that defines it:
//
//	// hookdeps-hook 0:1
//	export function useDebouncedEffect(effect, deps) { ... }
//
// The argument uses the index part of the --hook flag format,
// closure[:deps[:stable]], and defaults to 0:1.
package hook

import (
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mpyw/hookdeps/internal/config"
	"github.com/mpyw/hookdeps/internal/funcspec"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Directive is the comment keyword.
const Directive = "hookdeps-hook"

// DefaultSpec applies when the directive has no argument.
const DefaultSpec = "0:1"

// ErrNoDeclaration is returned for a directive that is not followed by a
// function or variable declaration.
var ErrNoDeclaration = errors.New("directive is not followed by a declaration")

// Declaration is a hook declared by a directive.
type Declaration struct {
	Option config.HookOption
	// Span is the position of the directive comment.
	Span syntax.Span
}

// Invalid is a directive that could not be applied.
type Invalid struct {
	Span syntax.Span
	Err  error
}

// Build scans the comments of file and pairs every directive with the
// module-level declaration on the next line.
func Build(file *syntax.File) ([]Declaration, []Invalid) {
	directives := make(map[int]syntax.Comment)
	var order []int
	for _, c := range file.Comments() {
		if _, ok := parseHookComment(c.Text); ok {
			line := c.Span.StartPos.Line
			directives[line] = c
			order = append(order, line)
		}
	}
	if len(directives) == 0 {
		return nil, nil
	}

	names := make(map[int]string)
	for _, stmt := range syntax.NamedChildren(file.Root) {
		if name := declaredName(stmt, file.Src); name != "" {
			names[syntax.SpanOf(stmt).StartPos.Line] = name
		}
	}

	var (
		decls   []Declaration
		invalid []Invalid
	)
	for _, line := range order {
		c := directives[line]
		spec, _ := parseHookComment(c.Text)

		name, ok := names[line+1]
		if !ok {
			invalid = append(invalid, Invalid{Span: c.Span, Err: ErrNoDeclaration})
			continue
		}

		opt, err := funcspec.Parse(name + "=" + spec)
		if err != nil {
			invalid = append(invalid, Invalid{Span: c.Span, Err: err})
			continue
		}
		decls = append(decls, Declaration{Option: opt, Span: c.Span})
	}

	return decls, invalid
}

// parseHookComment returns the directive argument, DefaultSpec when absent.
//
// Supported formats:
//   - // hookdeps-hook
//   - // hookdeps-hook 1:2
//   - // hookdeps-hook ::1 - returns [value, setValue]
//   - /* hookdeps-hook 0:1 */
func parseHookComment(text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimPrefix(text, "//")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	default:
		return "", false
	}
	text = strings.TrimSpace(text)

	rest, ok := strings.CutPrefix(text, Directive)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] == "-" {
		return DefaultSpec, true
	}
	return fields[0], true
}

// declaredName returns the name a module-level statement declares, looking
// through export. Only the first declarator of a variable declaration counts.
func declaredName(stmt *sitter.Node, src []byte) string {
	if stmt.Type() == "export_statement" {
		stmt = stmt.ChildByFieldName("declaration")
		if stmt == nil {
			return ""
		}
	}

	switch stmt.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			return name.Content(src)
		}

	case "lexical_declaration", "variable_declaration":
		for _, d := range syntax.NamedChildren(stmt) {
			if d.Type() != "variable_declarator" {
				continue
			}
			if name := d.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				return name.Content(src)
			}
			return ""
		}
	}

	return ""
}
