package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/mpyw/hookdeps/internal/registry"
	"github.com/mpyw/hookdeps/internal/report"
	"github.com/mpyw/hookdeps/internal/semantic"
	"github.com/mpyw/hookdeps/internal/stability"
)

func mustRegistry(t *testing.T, overrides ...registry.Override) *registry.Registry {
	t.Helper()

	reg, err := registry.Build(overrides)
	if err != nil {
		t.Fatalf("registry.Build() error = %v", err)
	}
	return reg
}

func check(t *testing.T, c *Checker, src string) []report.Diagnostic {
	t.Helper()

	diags, err := c.CheckSource(context.Background(), "component.jsx", []byte(src))
	if err != nil {
		t.Fatalf("CheckSource() error = %v", err)
	}
	return diags
}

func messages(diags []report.Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return msgs
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "exact match",
			src: `import { useEffect } from "react";
function C({ a }) {
	useEffect(() => { console.log(a); }, [a]);
}`,
			want: nil,
		},
		{
			name: "missing dependency",
			src: `import { useEffect } from "react";
function C({ a }) {
	useEffect(() => { console.log(a); }, []);
}`,
			want: []string{report.MissingMessage + "a"},
		},
		{
			name: "unnecessary dependency",
			src: `import { useEffect } from "react";
function C({ a, b }) {
	useEffect(() => { console.log(a); }, [a, b]);
}`,
			want: []string{report.UnnecessaryMessage + "b"},
		},
		{
			name: "missing before unnecessary",
			src: `import { useEffect } from "react";
function C({ a, b, c }) {
	useEffect(() => { console.log(c, a); }, [b]);
}`,
			want: []string{
				report.MissingMessage + "c",
				report.MissingMessage + "a",
				report.UnnecessaryMessage + "b",
			},
		},
		{
			name: "absent array",
			src: `import { useEffect } from "react";
function C({ a }) {
	useEffect(() => { console.log(a); });
}`,
			want: nil,
		},
		{
			name: "non-literal array",
			src: `import { useEffect } from "react";
function C({ a, deps }) {
	useEffect(() => { console.log(a); }, deps);
}`,
			want: nil,
		},
		{
			name: "not imported from react",
			src: `import { useEffect } from "./my-hooks";
function C({ a }) {
	useEffect(() => { console.log(a); }, []);
}`,
			want: nil,
		},
		{
			name: "namespace member call",
			src: `import * as React from "react";
function C({ a }) {
	React.useEffect(() => { console.log(a); }, []);
}`,
			want: []string{report.MissingMessage + "a"},
		},
		{
			name: "nested hook calls are checked",
			src: `import { useEffect, useCallback } from "react";
function C({ a, b }) {
	useEffect(() => {
		const f = useCallback(() => b, []);
		f(a);
	}, [a]);
}`,
			// the outer closure captures b through the inner one
			want: []string{report.MissingMessage + "b", report.MissingMessage + "b"},
		},
		{
			name: "stable setter",
			src: `import { useEffect, useState } from "react";
function C() {
	const [n, setN] = useState(0);
	useEffect(() => { setN(n + 1); }, [n]);
}`,
			want: nil,
		},
	}

	c := New(mustRegistry(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(check(t, c, tt.src))
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("Check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckOverrideScenario(t *testing.T) {
	reg := mustRegistry(t, registry.Override{
		Name:              "useEffect",
		ClosureIndex:      0,
		DependenciesIndex: 1,
	})
	c := New(reg)

	src := `import { useEffect, useState } from "preact/hooks";
function C() {
	const [calc, setCalc] = useState(0);
	useEffect(() => {
		if (calc === 0) {
			setCalc(1);
		}
	}, []);
}`
	diags := check(t, c, src)

	want := []string{report.MissingMessage + "calc", report.MissingMessage + "setCalc"}
	if got := messages(diags); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("Check() = %q, want %q", got, want)
	}
	for _, d := range diags {
		if d.Primary.StartPos.Line != 4 {
			t.Errorf("%s: primary line = %d, want 4", d.Message, d.Primary.StartPos.Line)
		}
	}
}

func TestCheckReportUnnecessaryDisabled(t *testing.T) {
	c := New(mustRegistry(t), WithReportUnnecessary(false))

	diags := check(t, c, `import { useEffect } from "react";
function C({ a, b }) {
	useEffect(() => { console.log(a); }, [b]);
}`)

	if len(diags) != 1 || diags[0].Kind != report.MissingDependency {
		t.Errorf("Check() = %q, want only the missing dependency", messages(diags))
	}
}

func TestCheckIgnore(t *testing.T) {
	c := New(mustRegistry(t))

	diags := check(t, c, `import { useEffect } from "react";
function C({ a, b }) {
	// hookdeps-ignore missing - mount only
	useEffect(() => { console.log(a); }, [b]);

	// hookdeps-ignore
	useEffect(() => {}, []);
}`)

	want := []string{report.UnnecessaryMessage + "b", report.UnusedSuppressionMsg}
	if got := messages(diags); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("Check() = %q, want %q", got, want)
	}
	if diags[1].Kind != report.UnusedSuppression || diags[1].Primary.StartPos.Line != 6 {
		t.Errorf("unused suppression = %+v, want kind %v on line 6", diags[1], report.UnusedSuppression)
	}
}

func TestCheckIgnoreTrailingNote(t *testing.T) {
	c := New(mustRegistry(t))

	diags := check(t, c, `import { useEffect } from "react";
function C({ a, b }) {
	// hookdeps-ignore // mount only
	useEffect(() => { console.log(a); }, [b]);
}`)

	if len(diags) != 0 {
		t.Errorf("Check() = %q, want every diagnostic suppressed", messages(diags))
	}
}

func TestCheckUnusedCategory(t *testing.T) {
	c := New(mustRegistry(t))

	diags := check(t, c, `import { useEffect } from "react";
function C({ a }) {
	// hookdeps-ignore missing,unnecessary
	useEffect(() => { console.log(a); }, []);
}`)

	want := []string{report.UnusedSuppressionMsg + " for category(ies): unnecessary"}
	if got := messages(diags); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Check() = %q, want %q", got, want)
	}
}

func TestCheckWithPredicates(t *testing.T) {
	stableProps := stability.Predicate{
		Name: "dispatch-param",
		Match: func(s stability.Subject) bool {
			return s.Binding.Kind == semantic.KindParameter && s.Binding.Name == "dispatch"
		},
	}
	c := New(mustRegistry(t), WithPredicates(stableProps))

	diags := check(t, c, `import { useEffect } from "react";
function C({ dispatch, a }) {
	useEffect(() => { dispatch(a); }, []);
}`)

	want := []string{report.MissingMessage + "a"}
	if got := messages(diags); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Check() = %q, want %q", got, want)
	}
}

func TestCheckHookDirective(t *testing.T) {
	reg := mustRegistry(t)
	c := New(reg)

	diags := check(t, c, `// hookdeps-hook 1:2
function useInterval(delay, fn, deps) {}

// hookdeps-hook 0:0
function useBroken(fn, deps) {}

function C({ a }) {
	useInterval(100, () => { console.log(a); }, []);
}`)

	want := []string{
		report.InvalidDirectiveMsg,
		report.MissingMessage + "a",
	}
	if len(diags) != len(want) {
		t.Fatalf("Check() = %q, want %d diagnostics", messages(diags), len(want))
	}
	for i, prefix := range want {
		if !strings.HasPrefix(diags[i].Message, prefix) {
			t.Errorf("diags[%d] = %q, want prefix %q", i, diags[i].Message, prefix)
		}
	}
	if diags[0].Kind != report.InvalidDirective || diags[0].Primary.StartPos.Line != 4 {
		t.Errorf("diags[0] = %v at line %d, want invalid directive at line 4", diags[0].Kind, diags[0].Primary.StartPos.Line)
	}

	// file-local hooks never leak into the shared registry
	if _, ok := reg.Lookup("useInterval"); ok {
		t.Error("useInterval registered in the shared registry")
	}
	if diags := check(t, c, "function C({ a }) {\n\tuseInterval(100, () => a, []);\n}"); len(diags) != 0 {
		t.Errorf("Check() without directive = %q, want none", messages(diags))
	}
}

func TestCheckSourceUnsupported(t *testing.T) {
	c := New(mustRegistry(t))

	if _, err := c.CheckSource(context.Background(), "style.css", []byte("a{}")); err == nil {
		t.Error("CheckSource() expected error for unsupported extension")
	}
}
