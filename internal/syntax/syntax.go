package syntax

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedLanguage is returned for files whose extension has no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language identifies the grammar used for a file.
type Language int

const (
	// JavaScript covers plain JavaScript and JSX.
	JavaScript Language = iota
	// TypeScript covers .ts sources without JSX.
	TypeScript
	// TSX covers TypeScript with JSX.
	TSX
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "unknown"
	}
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// LanguageFor picks the grammar for the given file path.
func LanguageFor(path string) (Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, nil
	case ".ts", ".mts", ".cts":
		return TypeScript, nil
	case ".tsx":
		return TSX, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}
}

// IsSupported reports whether the path has an extension hookdeps can parse.
func IsSupported(path string) bool {
	_, err := LanguageFor(path)
	return err == nil
}

// File is a parsed source file.
type File struct {
	Path string
	Src  []byte
	Lang Language
	Root *sitter.Node

	tree *sitter.Tree
}

// Parse parses src with the grammar matching path.
// The returned file must be closed to release the tree.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang, err := LanguageFor(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &File{
		Path: path,
		Src:  src,
		Lang: lang,
		Root: tree.RootNode(),
		tree: tree,
	}, nil
}

// Close releases the underlying tree-sitter tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Text returns the source text of n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.Src)
}

// Span returns the source range of n.
func (f *File) Span(n *sitter.Node) Span {
	return SpanOf(n)
}

// Comment is a single line or block comment.
type Comment struct {
	Text string
	Span Span
}

// Comments returns every comment in the file in source order.
func (f *File) Comments() []Comment {
	var comments []Comment
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() == "comment" {
			comments = append(comments, Comment{Text: f.Text(n), Span: SpanOf(n)})
			return false
		}
		return true
	})
	return comments
}
