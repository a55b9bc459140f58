// Package server serves the interactive lessons over HTTP.
//
// Routes:
//
//	GET  /                                  home page with every lesson
//	GET  /lessons/{id}                      one lesson
//	GET  /lessons/{id}/counts               committed holder snapshot as JSON
//	POST /lessons/{id}/slots/{slot}/bump    increment a slot and re-render
//	POST /lessons/{id}/reset                replace the lesson's holder
//	GET  /ws                                pass notifications
//	GET  /metrics                           Prometheus metrics, when enabled
//	GET  /healthz                           liveness
//
// POST routes redirect back to the page unless the request accepts JSON,
// in which case they answer with the lesson snapshot.
package server
