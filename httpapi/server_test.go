package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dspc/adapter/loopback"
	"dspc/clock"
	"dspc/eventbus"
	"dspc/input"

	dscore "dspc/core"
)

func newTestServer(t *testing.T) (*Server, *dscore.ProtocolCore) {
	t.Helper()
	a := loopback.New()
	fc := clock.NewFake()
	eb := eventbus.NewEventBus()
	agg := input.NewAggregator()

	c, err := dscore.New(a, eb, fc, agg)
	if err != nil {
		t.Fatalf("core.New: %v", err)
	}
	t.Cleanup(c.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c.Run(ctx)

	s := New(c, eb, nil, nil, nil)
	return s, c
}

func TestHandleStatusReturnsSnapshot(t *testing.T) {
	s, c := newTestServer(t)
	c.SetTeam(3794)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Team != 3794 {
		t.Fatalf("expected team 3794, got %d", resp.Team)
	}
}

func TestHandleSetTeamUpdatesCore(t *testing.T) {
	s, c := newTestServer(t)

	body, _ := json.Marshal(map[string]int{"team": 1114})
	req := httptest.NewRequest(http.MethodPost, "/team", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Team() != 1114 {
		t.Fatalf("expected core team 1114, got %d", c.Team())
	}
}

func TestHandleSetControlModeRejectsUnknown(t *testing.T) {
	s, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"control_mode": "Bogus"})
	req := httptest.NewRequest(http.MethodPost, "/control_mode", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown control mode, got %d", rec.Code)
	}
}

func TestHandleSSEStreamsSessionStarted(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		t.Fatal("expected at least the session_started SSE line")
	}
}

func TestHandleDiagnosticsPacketsEmptyWithoutRing(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/diagnostics/packets", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []PacketEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries without a ring, got %d", len(entries))
	}
}
