package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/mpyw/hookdeps/internal/funcspec"
	"github.com/mpyw/hookdeps/internal/syntax"
)

func TestParseHookComment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOk bool
	}{
		{name: "default", text: "// hookdeps-hook", want: DefaultSpec, wantOk: true},
		{name: "no space", text: "//hookdeps-hook 1:2", want: "1:2", wantOk: true},
		{name: "indices", text: "// hookdeps-hook 1:2", want: "1:2", wantOk: true},
		{name: "stable only", text: "// hookdeps-hook ::1", want: "::1", wantOk: true},
		{name: "reason", text: "// hookdeps-hook 0:1 - wraps useEffect", want: "0:1", wantOk: true},
		{name: "reason only", text: "// hookdeps-hook - wraps useEffect", want: DefaultSpec, wantOk: true},
		{name: "block", text: "/* hookdeps-hook 0:1:true */", want: "0:1:true", wantOk: true},
		{name: "other directive", text: "// hookdeps-ignore", wantOk: false},
		{name: "longer keyword", text: "// hookdeps-hooks", wantOk: false},
		{name: "plain", text: "// a hook", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseHookComment(tt.text)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("parseHookComment(%q) = %q, %v, want %q, %v", tt.text, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	src := `// hookdeps-hook
export function useA(fn, deps) {}

// hookdeps-hook 1:2
export const useB = (x, fn, deps) => {};

// hookdeps-hook ::0,1
let useC = () => [1, 2], other = 1;

// hookdeps-hook

function useD() {}

// hookdeps-hook 0:x
function useE() {}

// hookdeps-hook
export default function () {}
`
	f, err := syntax.Parse(context.Background(), "hooks.js", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer f.Close()

	decls, invalid := Build(f)

	want := []struct {
		name    string
		closure int
		deps    int
	}{
		{name: "useA", closure: 0, deps: 1},
		{name: "useB", closure: 1, deps: 2},
		{name: "useC", closure: -1, deps: -1},
	}
	if len(decls) != len(want) {
		t.Fatalf("len(decls) = %d, want %d", len(decls), len(want))
	}
	for i, w := range want {
		o := decls[i].Option.Override()
		if o.Name != w.name || o.ClosureIndex != w.closure || o.DependenciesIndex != w.deps {
			t.Errorf("decls[%d] = %+v, want %s %d:%d", i, o, w.name, w.closure, w.deps)
		}
	}
	if slots := decls[2].Option.Override().StableResult.Slots; len(slots) != 2 {
		t.Errorf("useC slots = %v, want [0 1]", slots)
	}
	if decls[1].Span.StartPos.Line != 4 {
		t.Errorf("decls[1] line = %d, want 4", decls[1].Span.StartPos.Line)
	}

	if len(invalid) != 3 {
		t.Fatalf("len(invalid) = %d, want 3", len(invalid))
	}
	if !errors.Is(invalid[0].Err, ErrNoDeclaration) || invalid[0].Span.StartPos.Line != 10 {
		t.Errorf("invalid[0] = %v at line %d, want no declaration at 10", invalid[0].Err, invalid[0].Span.StartPos.Line)
	}
	if !errors.Is(invalid[1].Err, funcspec.ErrInvalidSpec) {
		t.Errorf("invalid[1] = %v, want %v", invalid[1].Err, funcspec.ErrInvalidSpec)
	}
	if !errors.Is(invalid[2].Err, ErrNoDeclaration) {
		t.Errorf("invalid[2] = %v, want %v", invalid[2].Err, ErrNoDeclaration)
	}
}

func TestBuildWithoutDirectives(t *testing.T) {
	f, err := syntax.Parse(context.Background(), "plain.js", []byte("// note\nfunction useA() {}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer f.Close()

	if decls, invalid := Build(f); decls != nil || invalid != nil {
		t.Errorf("Build() = %v, %v, want nothing", decls, invalid)
	}
}
