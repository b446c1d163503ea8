package ignore

import (
	"slices"
	"strings"

	"github.com/mpyw/hookdeps/internal/syntax"
)

// Directive is the comment keyword.
const Directive = "hookdeps-ignore"

// Category is a diagnostic family that can be ignored.
type Category string

// Valid categories.
const (
	Missing     Category = "missing"
	Unnecessary Category = "unnecessary"
)

// AllCategories returns all valid category names.
func AllCategories() []Category {
	return []Category{Missing, Unnecessary}
}

// Entry is one directive comment. An entry without categories covers every
// category.
type Entry struct {
	span       syntax.Span
	categories []Category
	used       map[Category]bool
}

// claim marks category as suppressed by e and reports whether e covers it.
// A nil entry covers nothing.
func (e *Entry) claim(category Category) bool {
	if e == nil {
		return false
	}
	if len(e.categories) == 0 || slices.Contains(e.categories, category) {
		e.used[category] = true
		return true
	}
	return false
}

// unused returns the listed categories that never suppressed anything,
// disabled ones included. For a catch-all entry it reports whether no
// enabled category was suppressed.
func (e *Entry) unused(enabled EnabledCategories) ([]Category, bool) {
	if len(e.categories) == 0 {
		for category, on := range enabled {
			if on && e.used[category] {
				return nil, false
			}
		}
		return nil, true
	}

	var idle []Category
	for _, category := range e.categories {
		if !enabled[category] || !e.used[category] {
			idle = append(idle, category)
		}
	}
	return idle, len(idle) > 0
}

// Map holds the directives of one file keyed by comment line.
type Map map[int]*Entry

// EnabledCategories tracks which categories are currently reported.
type EnabledCategories map[Category]bool

// Build scans the comments of a file and returns a map.
func Build(comments []syntax.Comment) Map {
	m := make(Map)

	for _, c := range comments {
		if categories, ok := parseIgnoreComment(c.Text); ok {
			m[c.Span.StartPos.Line] = &Entry{
				span:       c.Span,
				categories: categories,
				used:       make(map[Category]bool),
			}
		}
	}

	return m
}

// parseIgnoreComment parses an ignore directive and returns the categories.
// A nil slice means every category. ok is false for other comments.
//
// Supported formats:
//   - // hookdeps-ignore
//   - // hookdeps-ignore missing
//   - // hookdeps-ignore missing,unnecessary
//   - // hookdeps-ignore - reason
//   - // hookdeps-ignore missing - reason
//   - // hookdeps-ignore // note
//   - /* hookdeps-ignore missing */
func parseIgnoreComment(text string) ([]Category, bool) {
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimPrefix(text, "//")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	default:
		return nil, false
	}
	text = strings.TrimSpace(text)

	rest, ok := strings.CutPrefix(text, Directive)
	if !ok {
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ':' {
		return nil, false // e.g. hookdeps-ignored
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))

	// the category list ends at a trailing note
	if idx := strings.Index(rest, "//"); idx >= 0 {
		rest = rest[:idx]
	}
	if rest == "-" || strings.HasPrefix(rest, "- ") {
		return nil, true
	}
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}

	var categories []Category
	for part := range strings.SplitSeq(rest, ",") {
		if name := Category(strings.TrimSpace(part)); name != "" {
			categories = append(categories, name)
		}
	}

	return categories, true
}

// ShouldIgnore reports whether a directive on line or the line above covers
// category, and records the use.
func (m Map) ShouldIgnore(line int, category Category) bool {
	return m[line].claim(category) || m[line-1].claim(category)
}

// UnusedIgnore represents an unused ignore directive.
type UnusedIgnore struct {
	Span syntax.Span
	// Categories lists the idle categories of a filtered directive; it is
	// empty for an idle catch-all directive.
	Categories []Category
}

// GetUnusedIgnores returns the directives that suppressed nothing, in source
// order. Categories listed but not enabled count as unused.
func (m Map) GetUnusedIgnores(enabled EnabledCategories) []UnusedIgnore {
	var unused []UnusedIgnore

	for _, entry := range m {
		if idle, ok := entry.unused(enabled); ok {
			unused = append(unused, UnusedIgnore{Span: entry.span, Categories: idle})
		}
	}

	slices.SortFunc(unused, func(a, b UnusedIgnore) int {
		return a.Span.Start - b.Span.Start
	})

	return unused
}
