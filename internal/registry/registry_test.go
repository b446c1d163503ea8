package registry

import (
	"errors"
	"testing"
)

func TestBuiltins(t *testing.T) {
	reg, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}

	tests := []struct {
		name    string
		closure int
		deps    int
		whole   bool
		slots   []int
	}{
		{name: "useEffect", closure: 0, deps: 1},
		{name: "useLayoutEffect", closure: 0, deps: 1},
		{name: "useInsertionEffect", closure: 0, deps: 1},
		{name: "useCallback", closure: 0, deps: 1},
		{name: "useMemo", closure: 0, deps: 1},
		{name: "useImperativeHandle", closure: 1, deps: 2},
		{name: "useState", closure: NoIndex, deps: NoIndex, slots: []int{1}},
		{name: "useReducer", closure: NoIndex, deps: NoIndex, slots: []int{1}},
		{name: "useTransition", closure: NoIndex, deps: NoIndex, slots: []int{1}},
		{name: "useRef", closure: NoIndex, deps: NoIndex, whole: true},
	}

	if reg.Len() != len(tests) {
		t.Errorf("Len() = %d, want %d", reg.Len(), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := reg.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if d.ClosureArgIndex != tt.closure || d.DependenciesArgIndex != tt.deps {
				t.Errorf("indices = %d/%d, want %d/%d", d.ClosureArgIndex, d.DependenciesArgIndex, tt.closure, tt.deps)
			}
			if !d.RequiresCanonicalImport {
				t.Error("built-ins require the canonical import")
			}
			if d.StableResult.Whole != tt.whole {
				t.Errorf("StableResult.Whole = %v, want %v", d.StableResult.Whole, tt.whole)
			}
			for _, s := range tt.slots {
				if !d.StableResult.Has(s) {
					t.Errorf("StableResult should have slot %d", s)
				}
			}
			if d.TakesClosure() != (tt.closure != NoIndex) {
				t.Errorf("TakesClosure() = %v", d.TakesClosure())
			}
		})
	}
}

func TestLookupIsExact(t *testing.T) {
	reg, err := Build(nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"useeffect", "UseEffect", "useEffect2", "React.useEffect", ""} {
		if _, ok := reg.Lookup(name); ok {
			t.Errorf("Lookup(%q) should fail", name)
		}
	}
}

func TestOverrideReplacesBuiltin(t *testing.T) {
	reg, err := Build([]Override{
		{Name: "useEffect", ClosureIndex: 1, DependenciesIndex: 2},
		{Name: "useStore", ClosureIndex: NoIndex, DependenciesIndex: NoIndex, StableResult: StableResult{Slots: []int{2, 1, 2}}},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	d, _ := reg.Lookup("useEffect")
	if d.ClosureArgIndex != 1 || d.DependenciesArgIndex != 2 || d.RequiresCanonicalImport {
		t.Errorf("useEffect = %+v, want override without canonical import", d)
	}

	store, ok := reg.Lookup("useStore")
	if !ok {
		t.Fatal("useStore not registered")
	}
	if got := store.StableResult.Slots; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("slots = %v, want sorted and compacted [1 2]", got)
	}
	if store.TakesClosure() {
		t.Error("useStore should not take a closure")
	}

	names := reg.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
	if reg.Len() != len(Builtins())+1 {
		t.Errorf("Len() = %d, want %d", reg.Len(), len(Builtins())+1)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides []Override
		wantErr   error
		wantPos   int
	}{
		{
			name:      "empty name",
			overrides: []Override{{Name: "", ClosureIndex: 0, DependenciesIndex: 1}},
			wantErr:   ErrEmptyName,
		},
		{
			name:      "negative closure",
			overrides: []Override{{Name: "useA", ClosureIndex: -2, DependenciesIndex: NoIndex}},
			wantErr:   ErrInvalidIndex,
		},
		{
			name:      "negative deps",
			overrides: []Override{{Name: "useA", ClosureIndex: 0, DependenciesIndex: -5}},
			wantErr:   ErrInvalidIndex,
		},
		{
			name:      "deps without closure",
			overrides: []Override{{Name: "useA", ClosureIndex: NoIndex, DependenciesIndex: 0}},
			wantErr:   ErrInvalidIndex,
		},
		{
			name:      "same index",
			overrides: []Override{{Name: "useA", ClosureIndex: 0, DependenciesIndex: 0}},
			wantErr:   ErrInvalidIndex,
		},
		{
			name:      "negative slot",
			overrides: []Override{{Name: "useA", ClosureIndex: NoIndex, DependenciesIndex: NoIndex, StableResult: StableResult{Slots: []int{-1}}}},
			wantErr:   ErrInvalidIndex,
		},
		{
			name: "duplicate",
			overrides: []Override{
				{Name: "useA", ClosureIndex: 0, DependenciesIndex: 1},
				{Name: "useB", ClosureIndex: 0, DependenciesIndex: 1},
				{Name: "useA", ClosureIndex: 0, DependenciesIndex: 1},
			},
			wantErr: ErrDuplicateHook,
			wantPos: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Build(tt.overrides)
			if reg != nil {
				t.Error("Build() should not return a registry on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Build() error %T is not *ConfigError", err)
			}
			if cerr.Position != tt.wantPos {
				t.Errorf("Position = %d, want %d", cerr.Position, tt.wantPos)
			}
		})
	}
}

func TestStableResult(t *testing.T) {
	if !(StableResult{}).IsZero() {
		t.Error("empty StableResult should be zero")
	}
	if (StableResult{Whole: true}).IsZero() || (StableResult{Slots: []int{0}}).IsZero() {
		t.Error("non-empty StableResult should not be zero")
	}
}

func TestWith(t *testing.T) {
	base, err := Build([]Override{{Name: "useStore", ClosureIndex: NoIndex, DependenciesIndex: NoIndex}})
	if err != nil {
		t.Fatal(err)
	}

	same, err := base.With(nil)
	if err != nil || same != base {
		t.Errorf("With(nil) = %p, %v, want the receiver", same, err)
	}

	layered, err := base.With([]Override{
		{Name: "useStore", ClosureIndex: NoIndex, DependenciesIndex: NoIndex, StableResult: StableResult{Whole: true}},
		{Name: "useInterval", ClosureIndex: 0, DependenciesIndex: 2},
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	if d, _ := layered.Lookup("useStore"); !d.StableResult.Whole {
		t.Error("layered useStore should have a whole stable result")
	}
	if _, ok := layered.Lookup("useInterval"); !ok {
		t.Error("layered registry should have useInterval")
	}
	if _, ok := layered.Lookup("useEffect"); !ok {
		t.Error("layered registry should keep built-ins")
	}

	if d, _ := base.Lookup("useStore"); d.StableResult.Whole {
		t.Error("With() modified the receiver")
	}
	if _, ok := base.Lookup("useInterval"); ok {
		t.Error("With() added to the receiver")
	}

	if _, err := base.With([]Override{{Name: "useA", ClosureIndex: 1, DependenciesIndex: 1}}); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("With() error = %v, want %v", err, ErrInvalidIndex)
	}
}
