// Package registry holds the table of recognized hooks.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
)

// NoIndex marks an absent argument index.
const NoIndex = -1

// CanonicalModule is the module built-in hooks must be imported from.
const CanonicalModule = "react"

// Configuration faults. Build wraps them in *ConfigError.
var (
	ErrEmptyName     = errors.New("hook name is empty")
	ErrDuplicateHook = errors.New("hook is configured more than once")
	ErrInvalidIndex  = errors.New("invalid argument index")
)

// StableResult lists which parts of a hook's return value never change
// between renders.
type StableResult struct {
	// Whole marks the entire return value as stable (useRef).
	Whole bool
	// Slots are array destructuring indices that are stable (useState's setter is 1).
	Slots []int
}

// Has reports whether the given destructuring slot is stable.
func (s StableResult) Has(slot int) bool {
	return slices.Contains(s.Slots, slot)
}

// IsZero reports whether nothing in the result is stable.
func (s StableResult) IsZero() bool {
	return !s.Whole && len(s.Slots) == 0
}

// HookDescriptor describes how a hook call is shaped.
type HookDescriptor struct {
	Name string

	// ClosureArgIndex is the index of the closure argument, or NoIndex for
	// hooks that are only tracked for their stable result (useState).
	ClosureArgIndex int

	// DependenciesArgIndex is the index of the dependency array, or NoIndex.
	DependenciesArgIndex int

	StableResult StableResult

	// RequiresCanonicalImport is false for user-configured hooks, which are
	// recognized regardless of where they were imported from.
	RequiresCanonicalImport bool
}

// TakesClosure reports whether calls to this hook are dependency-checked.
func (d HookDescriptor) TakesClosure() bool {
	return d.ClosureArgIndex != NoIndex
}

// Override is a user-supplied hook entry.
// It replaces a built-in of the same name wholesale.
type Override struct {
	Name              string
	ClosureIndex      int
	DependenciesIndex int
	StableResult      StableResult
}

// ConfigError reports an invalid override entry.
type ConfigError struct {
	// Position is the index of the entry in the override list.
	Position int
	Hook     string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Hook == "" {
		return fmt.Sprintf("hooks[%d]: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("hooks[%d] %q: %v", e.Position, e.Hook, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Registry is an immutable name-to-descriptor table.
type Registry struct {
	hooks map[string]HookDescriptor
	names []string
}

// Build merges the built-in table with overrides.
// The first invalid override aborts construction.
func Build(overrides []Override) (*Registry, error) {
	hooks := make(map[string]HookDescriptor)
	for _, d := range Builtins() {
		hooks[d.Name] = d
	}
	return layer(hooks, overrides)
}

// With returns a registry with overrides applied on top of r. r itself is
// not modified. Overrides replace entries of the same name, including
// earlier overrides.
func (r *Registry) With(overrides []Override) (*Registry, error) {
	if len(overrides) == 0 {
		return r, nil
	}
	return layer(maps.Clone(r.hooks), overrides)
}

func layer(hooks map[string]HookDescriptor, overrides []Override) (*Registry, error) {
	seen := make(map[string]int, len(overrides))
	for i, o := range overrides {
		if err := validate(o); err != nil {
			return nil, &ConfigError{Position: i, Hook: o.Name, Err: err}
		}
		if first, dup := seen[o.Name]; dup {
			return nil, &ConfigError{
				Position: i,
				Hook:     o.Name,
				Err:      fmt.Errorf("%w (first at hooks[%d])", ErrDuplicateHook, first),
			}
		}
		seen[o.Name] = i

		hooks[o.Name] = HookDescriptor{
			Name:                    o.Name,
			ClosureArgIndex:         o.ClosureIndex,
			DependenciesArgIndex:    o.DependenciesIndex,
			StableResult:            normalize(o.StableResult),
			RequiresCanonicalImport: false,
		}
	}

	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{hooks: hooks, names: names}, nil
}

func validate(o Override) error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if o.ClosureIndex < NoIndex {
		return fmt.Errorf("%w: closure index %d", ErrInvalidIndex, o.ClosureIndex)
	}
	if o.DependenciesIndex < NoIndex {
		return fmt.Errorf("%w: dependencies index %d", ErrInvalidIndex, o.DependenciesIndex)
	}
	if o.DependenciesIndex != NoIndex && o.ClosureIndex == NoIndex {
		return fmt.Errorf("%w: dependencies index %d without a closure index", ErrInvalidIndex, o.DependenciesIndex)
	}
	if o.ClosureIndex != NoIndex && o.ClosureIndex == o.DependenciesIndex {
		return fmt.Errorf("%w: closure and dependencies share index %d", ErrInvalidIndex, o.ClosureIndex)
	}
	for _, slot := range o.StableResult.Slots {
		if slot < 0 {
			return fmt.Errorf("%w: stable result slot %d", ErrInvalidIndex, slot)
		}
	}
	return nil
}

func normalize(s StableResult) StableResult {
	slots := slices.Clone(s.Slots)
	slices.Sort(slots)
	return StableResult{Whole: s.Whole, Slots: slices.Compact(slots)}
}

// Lookup returns the descriptor registered under name. Matching is exact.
func (r *Registry) Lookup(name string) (HookDescriptor, bool) {
	d, ok := r.hooks[name]
	return d, ok
}

// Names returns every registered hook name in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}
