package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// newBareSupervisor builds a supervisor with no engines attached. Request
// validation runs before any engine is touched, so these handlers can be
// exercised without child processes.
func newBareSupervisor() *Supervisor {
	return &Supervisor{
		log:    zerolog.Nop(),
		states: newStateMap(),
	}
}

func doRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var s = newBareSupervisor()
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	var rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealthEndpoint(t *testing.T) {
	var rec = doRequest(t, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body["ok"] {
		t.Errorf("body = %v", body)
	}
}

func TestMoveValidationErrors(t *testing.T) {
	var tests = []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid json", "{not json", "INVALID_JSON"},
		{"missing fen", `{}`, "MISSING_FEN"},
		{"moves_uci not an array", `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","moves_uci":"e2e4"}`, "INVALID_MOVES_UCI"},
		{"moves_uci mixed types", `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","moves_uci":["e2e4",7]}`, "INVALID_MOVES_UCI"},
		{"movetime not a number", `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","movetime_ms":"fast"}`, "INVALID_MOVETIME"},
		{"movetime negative", `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","movetime_ms":-5}`, "INVALID_MOVETIME"},
		{"movetime fractional", `{"fen":"8/8/8/8/8/8/8/8 w - - 0 1","movetime_ms":99.5}`, "INVALID_MOVETIME"},
	}
	for _, tt := range tests {
		var rec = doRequest(t, http.MethodPost, "/api/move", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
			continue
		}
		if e := decodeError(t, rec); e.Code != tt.wantCode {
			t.Errorf("%s: code = %q, want %q", tt.name, e.Code, tt.wantCode)
		}
	}
}

func TestMoveRequiresPost(t *testing.T) {
	var rec = doRequest(t, http.MethodGet, "/api/move", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStatusUnknownRequestID(t *testing.T) {
	var rec = doRequest(t, http.MethodGet, "/api/move/status/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "UNKNOWN_REQUEST_ID" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestStatusReportsFinalizedRequest(t *testing.T) {
	var s = newBareSupervisor()
	s.states.register("req-9")
	s.states.setInfo("req-9", 6, &Score{Type: "cp", Value: 41}, "e2e4 e7e5")
	s.states.finalize("req-9", "e2e4")

	var req = httptest.NewRequest(http.MethodGet, "/api/move/status/req-9", nil)
	var rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Active || resp.Bestmove == nil || *resp.Bestmove != "e2e4" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Depth == nil || *resp.Depth != 6 || resp.PV != "e2e4 e7e5" {
		t.Errorf("telemetry = %+v", resp)
	}
}

func TestStatusMarksTerminalResult(t *testing.T) {
	var s = newBareSupervisor()
	s.states.register("req-t")
	s.states.setInfo("req-t", 0, &Score{Type: "mate", Value: 0}, "")
	s.states.finalize("req-t", "0000")

	var req = httptest.NewRequest(http.MethodGet, "/api/move/status/req-t", nil)
	var rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Terminal || resp.Bestmove != nil {
		t.Errorf("response = %+v", resp)
	}
	if resp.Reason == nil || *resp.Reason != "CHECKMATE" {
		t.Errorf("reason = %v", resp.Reason)
	}
}

func TestHintUnavailableWithoutSecondary(t *testing.T) {
	var rec = doRequest(t, http.MethodPost, "/api/hint",
		`{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "STOCKFISH_UNAVAILABLE" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestHintValidatesBeforeAvailability(t *testing.T) {
	var rec = doRequest(t, http.MethodPost, "/api/hint", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "MISSING_FEN" {
		t.Errorf("code = %q", e.Code)
	}
}
