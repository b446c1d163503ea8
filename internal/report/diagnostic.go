// Package report builds dependency diagnostics for a hook call.
package report

import (
	"github.com/mpyw/hookdeps/internal/syntax"
)

// Rule is the rule identifier attached to every diagnostic.
const Rule = "useExhaustiveDependencies"

// Kind classifies a diagnostic.
type Kind int

const (
	// MissingDependency: the closure captures a reactive binding the array omits.
	MissingDependency Kind = iota
	// UnnecessaryDependency: the array lists a binding the closure does not use reactively.
	UnnecessaryDependency
	// UnusedSuppression: a hookdeps-ignore directive suppressed nothing.
	UnusedSuppression
	// InvalidDirective: a hookdeps-hook directive could not be applied.
	InvalidDirective
)

func (k Kind) String() string {
	switch k {
	case MissingDependency:
		return "missing-dependency"
	case UnnecessaryDependency:
		return "unnecessary-dependency"
	case UnusedSuppression:
		return "unused-suppression"
	case InvalidDirective:
		return "invalid-directive"
	default:
		return "unknown"
	}
}

// Severity of a diagnostic. The rule only ever warns.
type Severity string

const SeverityWarning Severity = "warning"

// Label attaches a message to a source range.
type Label struct {
	Span    syntax.Span
	Message string
}

// Diagnostic is one finding.
type Diagnostic struct {
	Rule     string
	Kind     Kind
	Severity Severity
	Message  string
	// Binding is the dependency name the diagnostic is about.
	Binding string
	// Hook is the name of the hook the diagnostic belongs to.
	Hook string
	// Primary is the main location: the hook callee for missing
	// dependencies, the array entry for unnecessary ones.
	Primary syntax.Span
	// Labels are every highlighted range, primary included, in source order
	// after the primary.
	Labels []Label
	Note   string
}

// Messages and notes.
const (
	MissingMessage       = "This hook does not specify all of its dependencies: "
	UnnecessaryMessage   = "This hook specifies more dependencies than necessary: "
	MissingHookLabel     = "This hook does not specify all of its dependencies."
	MissingRefLabel      = "This dependency is not specified in the hook dependency list."
	UnnecessaryLabel     = "This dependency can be removed from the list."
	MissingNote          = "Either include it or remove the dependency array"
	UnnecessaryNote      = "Either remove it or ensure the closure uses it"
	UnusedSuppressionMsg = "unused hookdeps-ignore directive"
	InvalidDirectiveMsg  = "invalid hookdeps-hook directive: "
)
