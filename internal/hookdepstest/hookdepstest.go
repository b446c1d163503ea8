// Package hookdepstest runs fixture directories whose lines carry
// expectations in comments:
//
//	useEffect(() => { log(a) }, []); // want "dependencies: a"
//
// Each quoted string is a regular expression that must match the message
// of exactly one diagnostic whose primary position is on that line. Every
// diagnostic must be expected and every expectation must be met. Where a
// line comment would break the syntax, a block comment works the same way:
//
//	/* want "..." */
package hookdepstest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Checker is what Run drives.
type Checker interface {
	CheckSource(ctx context.Context, path string, src []byte) ([]report.Diagnostic, error)
}

// TestData returns the absolute path of the testdata directory of the
// package under test.
func TestData() string {
	dir, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	return dir
}

// Run checks every supported file under dir/src/<case> for each case and
// compares the diagnostics with the expectations in the files.
func Run(t testing.TB, dir string, c Checker, cases ...string) {
	t.Helper()

	for _, name := range cases {
		root := filepath.Join(dir, "src", name)
		files, err := sourceFiles(root)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(files) == 0 {
			t.Errorf("%s: no source files in %s", name, root)
			continue
		}
		for _, path := range files {
			checkFile(t, c, path)
		}
	}
}

func sourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && syntax.IsSupported(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// expectation is one want pattern.
type expectation struct {
	line    int
	pattern *regexp.Regexp
	met     bool
}

func checkFile(t testing.TB, c Checker, path string) {
	t.Helper()

	src, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("read %s: %v", path, err)
		return
	}

	wants, err := expectations(path, src)
	if err != nil {
		t.Errorf("%v", err)
		return
	}

	diags, err := c.CheckSource(context.Background(), path, src)
	if err != nil {
		t.Errorf("check %s: %v", path, err)
		return
	}

	rel := filepath.Base(path)
	for _, d := range diags {
		line := d.Primary.StartPos.Line
		if !consume(wants, line, d.Message) {
			t.Errorf("%s:%d: unexpected diagnostic: %s", rel, line, d.Message)
		}
	}
	for _, w := range wants {
		if !w.met {
			t.Errorf("%s:%d: no diagnostic was reported matching %q", rel, w.line, w.pattern)
		}
	}
}

func consume(wants []*expectation, line int, message string) bool {
	for _, w := range wants {
		if !w.met && w.line == line && w.pattern.MatchString(message) {
			w.met = true
			return true
		}
	}
	return false
}

func expectations(path string, src []byte) ([]*expectation, error) {
	file, err := syntax.Parse(context.Background(), path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var wants []*expectation
	for _, comment := range file.Comments() {
		patterns, ok := wantPatterns(comment.Text)
		if !ok {
			continue
		}
		line := comment.Span.StartPos.Line
		if len(patterns) == 0 {
			return nil, fmt.Errorf("%s:%d: want comment without patterns", path, line)
		}
		for _, p := range patterns {
			rx, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			wants = append(wants, &expectation{line: line, pattern: rx})
		}
	}
	return wants, nil
}

var quoted = regexp.MustCompile("\"(?:[^\"\\\\]|\\\\.)*\"|`[^`]*`")

// wantPatterns extracts the patterns of a want comment. A want may follow
// another directive on the same comment: `// hookdeps-ignore // want "..."`.
func wantPatterns(text string) ([]string, bool) {
	body := strings.TrimSuffix(text, "*/")
	switch {
	case strings.HasPrefix(body, "//"):
		body = body[2:]
	case strings.HasPrefix(body, "/*"):
		body = body[2:]
	default:
		return nil, false
	}
	body = strings.TrimSpace(body)

	if !strings.HasPrefix(body, "want ") {
		idx := strings.Index(body, "// want ")
		if idx < 0 {
			return nil, false
		}
		body = body[idx+len("// "):]
	}
	body = strings.TrimPrefix(body, "want ")

	var patterns []string
	for _, lit := range quoted.FindAllString(body, -1) {
		s, err := strconv.Unquote(lit)
		if err != nil {
			continue
		}
		patterns = append(patterns, s)
	}
	return patterns, true
}
