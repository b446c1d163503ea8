// Package funcspec parses hook specifications from flag values.
//
// # Specification Format
//
// A hook specification has the format:
//
//	name=closure[:deps[:stable]]
//
// Examples:
//
//	useCustomEffect=0:1        # closure at 0, dependency array at 1
//	useDebouncedEffect=1:2     # closure at 1, dependency array at 2
//	useStore=::1               # result-only hook, slot 1 is stable
//	useBox=::true              # result-only hook, whole result is stable
//
// Fields left empty mean the hook has no such argument. A specification
// carries the same meaning as a hooks entry of the configuration file and
// is validated the same way once converted.
//
// # Parsing
//
// Use [Parse] for one value or [ParseAll] for a repeated flag:
//
//	opts, err := funcspec.ParseAll([]string{"useCustomEffect=0:1"})
package funcspec
