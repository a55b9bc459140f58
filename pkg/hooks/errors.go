package hooks

import (
	stderrors "errors"

	lerrors "github.com/vango-dev/memolab/internal/errors"
)

// Sentinel errors. Errors returned by this package carry the same codes, so
// errors.Is matches them even when they include extra detail.
var (
	// ErrMalformedDeps is reported when a dependency list changes length
	// between calls for the same binding. The value is recomputed anyway.
	ErrMalformedDeps = lerrors.New(lerrors.CodeMalformedDeps)

	// ErrGateUnmounted is returned when a disposed gate is asked to render.
	ErrGateUnmounted = lerrors.New(lerrors.CodeGateUnmounted)

	// ErrPropShapeChanged is reported when a gate receives a different set
	// of prop keys than on its first render. The gate executes anyway.
	ErrPropShapeChanged = lerrors.New(lerrors.CodePropShapeChanged)

	// ErrHookOrderChanged is returned when a component calls hooks in a
	// different order or number than on its first render.
	ErrHookOrderChanged = lerrors.New(lerrors.CodeHookOrderChanged)

	// ErrUnknownSlot is returned when mutating a slot the holder does not own.
	ErrUnknownSlot = lerrors.New(lerrors.CodeUnknownSlot)

	// ErrUnknownGate is returned when looking up a gate that is not mounted.
	ErrUnknownGate = lerrors.New(lerrors.CodeUnknownGate)

	// ErrGateReentered is returned when the same child is rendered twice in a pass.
	ErrGateReentered = lerrors.New(lerrors.CodeGateReentered)

	// ErrRenderPanic wraps a panic recovered from render logic.
	ErrRenderPanic = lerrors.New(lerrors.CodeRenderPanic)

	// ErrPassFailed is returned by holder mutators when a pass was rolled back.
	ErrPassFailed = lerrors.New(lerrors.CodePassFailed)

	// ErrHolderDisposed is returned when mutating a disposed holder.
	ErrHolderDisposed = lerrors.New(lerrors.CodeHolderDisposed)
)

// IsRecoverable reports whether err is a shape warning after which the
// returned value is still valid (the call was treated as "changed").
func IsRecoverable(err error) bool {
	return stderrors.Is(err, ErrMalformedDeps) || stderrors.Is(err, ErrPropShapeChanged)
}
