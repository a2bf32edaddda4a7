package main

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tacmap/linesync"
	"tacmap/mapview"

	"github.com/gin-gonic/gin"
)

type linesResponse struct {
	Lines []linesync.WireLine `json:"lines"`
	Peers int                 `json:"peers"`
}

func getLines(t *testing.T, base string) linesResponse {
	t.Helper()
	resp, err := http.Get(base + "/lines")
	if err != nil {
		t.Fatalf("GET /lines: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /lines status %d", resp.StatusCode)
	}
	var out linesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := linesync.NewHub(8)
	srv := httptest.NewServer(newRouter(hub))
	defer srv.Close()
	defer hub.Close()

	if got := getLines(t, srv.URL); len(got.Lines) != 0 || got.Peers != 0 {
		t.Fatalf("fresh relay %+v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := linesync.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	line := mapview.Line{Start: image.Pt(3, 4), End: image.Pt(30, 4), Color: color.RGBA{G: 0xff, A: 0xff}}
	if err := client.Publish(line); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitFor(t, "line on relay", func() bool { return len(hub.Snapshot()) == 1 })

	got := getLines(t, srv.URL)
	if got.Peers != 1 || len(got.Lines) != 1 || got.Lines[0] != linesync.ToWire(line) {
		t.Fatalf("GET /lines %+v", got)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/lines", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /lines: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status %d", resp.StatusCode)
	}
	if len(hub.Snapshot()) != 0 {
		t.Fatalf("lines kept after DELETE")
	}

	// the snapshot on join, then the clear from DELETE
	for _, want := range []linesync.Kind{linesync.KindSnapshot, linesync.KindClear} {
		select {
		case msg := <-client.Incoming():
			if msg.Type != want {
				t.Fatalf("got %q want %q", msg.Type, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	newRouter(linesync.NewHub(1)).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status %d", w.Code)
	}
	var body struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
		Peers  int    `json:"peers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Peers != 0 {
		t.Fatalf("healthz %+v", body)
	}
}

func TestUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{90 * time.Second, "1 m 30 s"},
		{3*time.Hour + 5*time.Minute + 10*time.Second, "3 h 5 m"},
		{2*time.Second + 400*time.Millisecond, "2 s"},
	}
	for _, tt := range tests {
		if got := uptime(tt.in); got != tt.want {
			t.Fatalf("uptime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptyLinesIsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lines", nil)
	newRouter(linesync.NewHub(4)).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["lines"]) != "[]" {
		t.Fatalf("lines = %s, want []", body["lines"])
	}
}
