// Package stability decides which captured bindings must be listed as
// dependencies.
//
// A binding is stable when it cannot meaningfully change between renders and
// therefore never needs to appear in a dependency array. Stability is decided
// by an ordered list of predicates; the first one that matches wins and a
// binding no predicate matches is reactive.
//
// The default order is fixed:
//
//  1. [ModuleLevel]: imports and top-level declarations.
//  2. [StableHookResult]: a configured stable slot of a governed hook call,
//     e.g. the setter of useState or the whole result of useRef.
//  3. [ConstantLiteral]: a const bound to a primitive literal.
//
// Callers can append predicates with [WithPredicates]; they run after the
// defaults and never change their precedence.
package stability

import (
	"github.com/mpyw/hookdeps/internal/capture"
	"github.com/mpyw/hookdeps/internal/hookcall"
	"github.com/mpyw/hookdeps/internal/semantic"
)

// Subject is what a predicate looks at.
type Subject struct {
	Binding    *semantic.Binding
	Model      *semantic.Model
	Recognizer *hookcall.Recognizer
}

// Predicate is a named, pure stability test.
type Predicate struct {
	Name  string
	Match func(Subject) bool
}

// Verdict is the outcome of classifying one binding.
type Verdict struct {
	Stable bool
	// By names the predicate that matched; empty for reactive bindings.
	By string
}

// DefaultPredicates returns the built-in predicates in evaluation order.
func DefaultPredicates() []Predicate {
	return []Predicate{ModuleLevel, StableHookResult, ConstantLiteral}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithPredicates appends extra predicates after the defaults.
func WithPredicates(predicates ...Predicate) Option {
	return func(c *Classifier) {
		c.predicates = append(c.predicates, predicates...)
	}
}

// Classifier classifies the bindings of one file.
type Classifier struct {
	model      *semantic.Model
	recognizer *hookcall.Recognizer
	predicates []Predicate
}

// New creates a classifier with the default predicates.
func New(model *semantic.Model, recognizer *hookcall.Recognizer, opts ...Option) *Classifier {
	c := &Classifier{
		model:      model,
		recognizer: recognizer,
		predicates: DefaultPredicates(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predicates returns the predicates in evaluation order.
func (c *Classifier) Predicates() []Predicate {
	return append([]Predicate(nil), c.predicates...)
}

// Classify evaluates the predicates against b, first match wins.
func (c *Classifier) Classify(b *semantic.Binding) Verdict {
	subject := Subject{Binding: b, Model: c.model, Recognizer: c.recognizer}
	for _, p := range c.predicates {
		if p.Match(subject) {
			return Verdict{Stable: true, By: p.Name}
		}
	}
	return Verdict{}
}

// Reactive keeps the groups whose binding is reactive, preserving order.
func (c *Classifier) Reactive(groups []capture.Group) []capture.Group {
	var reactive []capture.Group
	for _, g := range groups {
		if !c.Classify(g.Binding).Stable {
			reactive = append(reactive, g)
		}
	}
	return reactive
}
