package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/memolab/internal/config"
	"github.com/vango-dev/memolab/internal/lessons"
	"github.com/vango-dev/memolab/pkg/hooks"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.New()
	for _, fn := range mutate {
		fn(cfg)
	}
	s, err := New(cfg, Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(s.close)
	return s
}

func do(t *testing.T, s *Server, method, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) hooks.Snapshot {
	t.Helper()
	var snap hooks.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func renders(snap hooks.Snapshot, gate string) uint64 {
	for _, g := range snap.Gates {
		if g.Name == gate {
			return g.Renders
		}
	}
	return 0
}

func TestHomePage(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, lessons.PageTitle)
	assert.Contains(t, body, "/lessons/usecallback/slots/count/bump")
	assert.Contains(t, body, "/lessons/usememo/slots/a/bump")
}

func TestLessonPage(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/lessons/usememo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/lessons/usememo/reset")
	assert.NotContains(t, rec.Body.String(), "/lessons/usecallback/reset")
}

func TestUnknownLesson(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/lessons/nope/counts")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "M011", body.Code)
}

func TestBumpOtherSkipsStableChild(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/lessons/usecallback/slots/other/bump", "Accept", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)

	assert.Equal(t, uint64(2), snap.Passes)
	assert.Equal(t, uint64(1), renders(snap, "stable-child"))
	assert.Equal(t, uint64(2), renders(snap, "unstable-child"))
}

func TestBumpCountRendersBoth(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/lessons/usecallback/slots/count/bump")

	snap := decodeSnapshot(t, do(t, s, http.MethodGet, "/lessons/usecallback/counts"))
	assert.Equal(t, uint64(2), renders(snap, "stable-child"))
	assert.Equal(t, uint64(2), renders(snap, "unstable-child"))
}

func TestBumpRedirects(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/lessons/usememo/slots/a/bump")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#usememo", rec.Header().Get("Location"))
}

func TestBumpUnknownSlot(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/lessons/usememo/slots/zzz/bump")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "M005")
}

func TestReset(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/lessons/usememo/slots/other/bump")
	do(t, s, http.MethodPost, "/lessons/usememo/slots/other/bump")

	rec := do(t, s, http.MethodPost, "/lessons/usememo/reset", "Accept", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Equal(t, uint64(1), snap.Passes)
	assert.Equal(t, float64(0), snap.Slots["other"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status": "ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/lessons/usecallback/slots/other/bump")

	rec := do(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "memolab_passes_total")
	assert.Contains(t, body, `gate="stable-child"`)
	assert.NotNil(t, s.Metrics())
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = false })
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/metrics").Code)
	assert.Nil(t, s.Metrics())
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.Server.Port = -1
	_, err := New(cfg, Options{Registry: prometheus.NewRegistry()})
	assert.Error(t, err)
}

func TestWebSocketNotifiesPasses(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/lessons/usememo/slots/b/bump", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	for msg.Trigger != "b" {
		require.NoError(t, conn.ReadJSON(&msg))
	}
	assert.Equal(t, MessageTypePass, msg.Type)
	assert.Equal(t, lessons.MemoLessonID, msg.Lesson)
	assert.Equal(t, uint64(2), msg.Seq)
	assert.Equal(t, "b", msg.Trigger)
}
