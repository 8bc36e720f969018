package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if got := SampleDay(-2); got.Format(time.DateOnly) != "2024-10-11" || got.Hour() != SampleTime.Hour() {
		t.Fatalf("unexpected sample day %v", got)
	}
	if MustParseDate("2024-10-13") != time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected parsed date")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid date")
		}
	}()
	MustParseDate("10/13/2024")
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("id-1")
	home, away, ok := g.Matchup()
	if g.ID != "id-1" || !ok || home.TeamID == "" || away.TeamID == "" {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	page := SamplePage("r1")
	view, ok := page.League("nba")
	if page.RefreshID != "r1" || !ok || view.GameCount() != 2 || len(view.Teams) != 2 {
		t.Fatalf("unexpected page fixture %+v", page)
	}
	if SampleLeague("epl").ID != "epl" {
		t.Fatalf("expected epl league")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on unknown league")
		}
	}()
	SampleLeague("cricket")
}

func TestPageServiceHelpers(t *testing.T) {
	if _, ok := NewPageStore().Page(); ok {
		t.Fatalf("expected empty store")
	}
	svc := NewPageService(SamplePage("r1"), SamplePage("r2"))
	page, ok := svc.Page()
	if !ok || page.RefreshID != "r2" {
		t.Fatalf("expected last page to win, got %+v", page)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t, 5)
	page := WriteSnapshot(t, w, "r1")
	data, err := os.ReadFile(SnapshotPath(w, page))
	if err != nil {
		t.Fatalf("expected snapshot file, got %v", err)
	}
	if !strings.Contains(string(data), `"refreshId": "r1"`) {
		t.Fatalf("expected snapshot contents, got %s", data)
	}
}

func TestWriteSnapshotPayloadHandlesNilWriter(t *testing.T) {
	if _, err := writeSnapshotPayload(nil, "r1"); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestStubPoller(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop"), RefreshErr: errors.New("refresh")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if _, err := p.RefreshNow(context.Background()); !errors.Is(err, p.RefreshErr) {
		t.Fatalf("expected refresh error passthrough")
	}
	if starts, stops, refreshes := p.Calls(); starts != 1 || stops != 1 || refreshes != 1 {
		t.Fatalf("unexpected call counts start=%d stop=%d refresh=%d", starts, stops, refreshes)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
}

func TestStubHTTPServer(t *testing.T) {
	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	if err := sh.Shutdown(context.Background()); err == nil {
		t.Fatalf("expected shutdown error")
	}
	if sh.Addr() != ":0" || sh.Handler() == nil {
		t.Fatalf("expected default addr and handler")
	}
	if sh.Listens() != 1 || sh.Shutdowns() != 1 {
		t.Fatalf("expected one listen and one shutdown")
	}

	blocking := &StubHTTPServer{Unblock: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- blocking.Shutdown(context.Background()) }()
	close(blocking.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (&StubHTTPServer{Unblock: make(chan struct{})}).Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error while blocked, got %v", err)
	}
}

func TestLoggerHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected buffered debug output")
	}

	jsonLogger, jsonBuf := NewJSONBufferLogger()
	jsonLogger.Info("first", "league", "nba")
	jsonLogger.Warn("second")
	if entries := LogEntries(t, jsonBuf); len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entry := FindLog(t, jsonBuf, "first"); entry["league"] != "nba" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestHTTPHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","requestId":"abc"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	AssertStatus(t, ServeAuthorized(handler, http.MethodPost, "/refresh", "tok"), http.StatusNoContent)
	body := DecodeError(t, Serve(handler, http.MethodPost, "/refresh", nil), http.StatusUnauthorized)
	if body.Error != "unauthorized" || body.RequestID != "abc" {
		t.Fatalf("unexpected error body %+v", body)
	}
}
