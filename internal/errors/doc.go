// Package errors provides coded, actionable errors for memolab.
//
// Every failure the render core can report has a stable code that maps to a
// short message, a longer explanation and a documentation link:
//   - M0xx: core errors (dependency lists, gates, holders, hook order)
//   - C0xx: configuration errors
//   - R0xx: scenario report errors
//
// Codes compare by value, so a freshly built error matches its sentinel:
//
//	err := errors.New(errors.CodeGateUnmounted).WithDetail("gate \"child\"")
//	stdErrors.Is(err, hooks.ErrGateUnmounted) // true
//
// Format renders the error for terminals:
//
//	ERROR M002: Gate used after unmount
//
//	  The memo gate's owning instance was disposed. No state was changed.
//
//	  Hint: Mount a new instance instead of reusing a disposed gate.
//
//	  Learn more: https://memolab.dev/docs/errors/M002
package errors
