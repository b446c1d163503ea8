// Package ignore provides // hookdeps-ignore directive parsing.
//
// # Overview
//
// The ignore directive suppresses dependency diagnostics for a hook call.
// Both missing and unnecessary diagnostics are matched against the line the
// hook call starts on, so the directive goes above the call even when the
// offending array entry sits further down.
//
// # Directive Placement
//
// The directive can appear on the line before or the same line:
//
//	// hookdeps-ignore
//	useEffect(() => { ... }, []);  // suppressed
//
//	useEffect(() => { ... }, []);  // hookdeps-ignore
//
// # Category-Specific Ignores
//
// Specify categories to ignore only some diagnostics:
//
//	// hookdeps-ignore missing - runs once on mount
//	useEffect(() => { ... }, []);
//
//	// hookdeps-ignore missing,unnecessary
//	useMemo(() => { ... }, [a]);
//
// # Valid Categories
//
//	┌─────────────┬───────────────────────────────────────────────┐
//	│ Name        │ Description                                   │
//	├─────────────┼───────────────────────────────────────────────┤
//	│ missing     │ a captured reactive binding is not listed     │
//	│ unnecessary │ a listed binding is not used reactively       │
//	└─────────────┴───────────────────────────────────────────────┘
//
// # Checking Ignores
//
// Use [Build] over the comments of a file and [Map.ShouldIgnore] per
// diagnostic:
//
//	ignoreMap := ignore.Build(file.Comments())
//	if ignoreMap.ShouldIgnore(callLine, ignore.Missing) {
//	    continue
//	}
//
// # Unused Ignore Detection
//
// The map tracks which directives were used. [Map.GetUnusedIgnores] returns
// the rest so they can be reported as warnings:
//
//	// hookdeps-ignore        // Warning: unused hookdeps-ignore directive
//	useEffect(() => {}, []);  // nothing to suppress
package ignore
