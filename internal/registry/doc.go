// Package registry provides the hook table used to recognize hook calls.
//
// # Overview
//
// A [Registry] maps a hook name to a [HookDescriptor] telling which argument
// is the closure, which one is the dependency array, and which parts of the
// hook's return value are stable across renders.
//
// # Built-in Hooks
//
// [Builtins] covers the React hooks. They are only recognized when imported
// from [CanonicalModule]:
//
//	useEffect, useLayoutEffect, useInsertionEffect   closure 0, deps 1
//	useCallback, useMemo                             closure 0, deps 1
//	useImperativeHandle                              closure 1, deps 2
//	useState, useReducer, useTransition              stable result slot 1
//	useRef                                           stable whole result
//
// # Overrides
//
// Users configure extra hooks, or reshape built-in ones, with [Override]
// entries:
//
//	reg, err := registry.Build([]registry.Override{{
//	    Name:              "useEffect",
//	    ClosureIndex:      0,
//	    DependenciesIndex: 1,
//	}})
//
// An override replaces a built-in with the same name wholesale: fields are
// never merged. Overridden and custom hooks are recognized regardless of
// import provenance.
//
// # Configuration Errors
//
// [Build] rejects the whole override list on the first invalid entry and
// returns a [*ConfigError] wrapping one of [ErrEmptyName], [ErrDuplicateHook]
// or [ErrInvalidIndex]:
//
//	var cfgErr *registry.ConfigError
//	if errors.As(err, &cfgErr) && errors.Is(err, registry.ErrDuplicateHook) {
//	    ...
//	}
//
// The registry is immutable once built and safe to share between goroutines.
package registry
