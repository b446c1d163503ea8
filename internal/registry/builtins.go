package registry

// Builtins returns the default hook table. Every entry requires the hook to
// be imported from CanonicalModule.
func Builtins() []HookDescriptor {
	return []HookDescriptor{
		effect("useEffect", 0, 1),
		effect("useLayoutEffect", 0, 1),
		effect("useInsertionEffect", 0, 1),
		effect("useCallback", 0, 1),
		effect("useMemo", 0, 1),
		effect("useImperativeHandle", 1, 2),
		stateful("useState", StableResult{Slots: []int{1}}),
		stateful("useReducer", StableResult{Slots: []int{1}}),
		stateful("useTransition", StableResult{Slots: []int{1}}),
		stateful("useRef", StableResult{Whole: true}),
	}
}

func effect(name string, closure, deps int) HookDescriptor {
	return HookDescriptor{
		Name:                    name,
		ClosureArgIndex:         closure,
		DependenciesArgIndex:    deps,
		RequiresCanonicalImport: true,
	}
}

func stateful(name string, stable StableResult) HookDescriptor {
	return HookDescriptor{
		Name:                    name,
		ClosureArgIndex:         NoIndex,
		DependenciesArgIndex:    NoIndex,
		StableResult:            stable,
		RequiresCanonicalImport: true,
	}
}
