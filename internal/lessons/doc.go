// Package lessons contains the interactive useCallback and useMemo demos
// and the scenario catalog that checks render counts against expectations.
//
// Each Lesson owns a hooks.StateHolder. Pages are plain vdom trees so the
// server can render them with pkg/render.
package lessons
