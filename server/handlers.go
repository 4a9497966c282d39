package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// Routes builds the HTTP surface: health, move, status, hint.
func (s *Supervisor) Routes() http.Handler {
	var mux = http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/move", s.handleMove)
	mux.HandleFunc("/api/move/status/", s.handleStatus)
	mux.HandleFunc("/api/hint", s.handleHint)
	return requestLogger(s.log, mux)
}

func requestLogger(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var start = time.Now()
		var rec = &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: message, Code: code})
}

func (s *Supervisor) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// requestBody is the dynamically validated move/hint request shape. The
// loose field types let validation distinguish a missing field from a
// wrongly typed one, as the error taxonomy requires.
type requestBody struct {
	FEN        string `json:"fen"`
	MovesUCI   any    `json:"moves_uci"`
	Skill      string `json:"skill"`
	MovetimeMs any    `json:"movetime_ms"`
	Depth      any    `json:"depth"`
	HashMB     any    `json:"hash_mb"`
	MultiPV    any    `json:"multipv"`
}

// movesUCIList validates the optional moves_uci field: absent is fine, a
// present value must be an array of strings.
func movesUCIList(v any) ([]string, bool) {
	if v == nil {
		return nil, true
	}
	var raw, ok = v.([]any)
	if !ok {
		return nil, false
	}
	var moves = make([]string, 0, len(raw))
	for _, item := range raw {
		var s, ok = item.(string)
		if !ok {
			return nil, false
		}
		moves = append(moves, s)
	}
	return moves, true
}

// positiveInt reports the field's value when it is a positive integer.
// absent=true when the field was omitted.
func positiveInt(v any) (value int, ok, absent bool) {
	if v == nil {
		return 0, false, true
	}
	var f, isNum = v.(float64)
	if !isNum || f != float64(int(f)) || f <= 0 {
		return 0, false, false
	}
	return int(f), true, false
}

type moveResponse struct {
	UCI      *string `json:"uci"`
	Terminal bool    `json:"terminal"`
	Reason   *string `json:"reason"`
	Depth    *int    `json:"depth"`
	Score    *Score  `json:"score"`
	PV       string  `json:"pv"`
	BookHit  bool    `json:"bookhit"`
	Timeout  bool    `json:"timeout"`
}

func (s *Supervisor) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "POST required")
		return
	}
	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}
	if body.FEN == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FEN", "fen is required")
		return
	}
	var movesUCI, movesOK = movesUCIList(body.MovesUCI)
	if !movesOK {
		writeError(w, http.StatusBadRequest, "INVALID_MOVES_UCI", "moves_uci must be an array of UCI strings")
		return
	}
	var movetimeMs, _, movetimeAbsent = positiveInt(body.MovetimeMs)
	if !movetimeAbsent && movetimeMs == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_MOVETIME", "movetime_ms must be a positive integer")
		return
	}
	var depth, _, _ = positiveInt(body.Depth)
	var hashMB, _, _ = positiveInt(body.HashMB)
	var opts = resolveMoveOptions(body.Skill, movetimeMs, depth, hashMB)

	var id = r.Header.Get("x-request-id")
	if id == "" {
		id = newRequestID()
	}
	s.states.register(id)

	var result, err = s.Move(id, body.FEN, movesUCI, opts)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", id).Msg("move request failed")
		writeError(w, http.StatusInternalServerError, "ENGINE_ERROR", "engine failure")
		return
	}

	var resp = moveResponse{
		Terminal: result.Terminal,
		PV:       result.PV,
		Score:    result.Score,
		BookHit:  result.BookHit,
		Timeout:  result.Timeout,
	}
	if result.UCI != "" {
		resp.UCI = &result.UCI
	}
	if result.Reason != "" {
		resp.Reason = &result.Reason
	}
	if result.Depth > 0 {
		resp.Depth = &result.Depth
	}
	writeJSON(w, http.StatusOK, resp)
}

func newRequestID() string {
	return fmt.Sprintf("%x", frand.Bytes(8))
}

type statusResponse struct {
	ID         string  `json:"id"`
	Active     bool    `json:"active"`
	StartedAt  int64   `json:"started_at"`
	FinishedAt *int64  `json:"finished_at"`
	LastInfoAt *int64  `json:"last_info_at"`
	Depth      *int    `json:"depth"`
	Score      *Score  `json:"score"`
	PV         string  `json:"pv"`
	Bestmove   *string `json:"bestmove"`
	Terminal   bool    `json:"terminal"`
	Reason     *string `json:"reason"`
	Error      *string `json:"error"`
}

func (s *Supervisor) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "GET required")
		return
	}
	var id = strings.TrimPrefix(r.URL.Path, "/api/move/status/")
	var st, ok = s.states.get(id)
	if !ok || id == "" {
		writeError(w, http.StatusNotFound, "UNKNOWN_REQUEST_ID", "unknown request id")
		return
	}

	var resp = statusResponse{
		ID:        st.ID,
		Active:    st.Active,
		StartedAt: st.StartedAt.UnixMilli(),
		Score:     st.Score,
		PV:        st.PV,
	}
	if !st.FinishedAt.IsZero() {
		var v = st.FinishedAt.UnixMilli()
		resp.FinishedAt = &v
	}
	if !st.LastInfoAt.IsZero() {
		var v = st.LastInfoAt.UnixMilli()
		resp.LastInfoAt = &v
	}
	if st.Depth > 0 {
		resp.Depth = &st.Depth
	}
	if st.BestMove != "" && st.BestMove != "0000" {
		resp.Bestmove = &st.BestMove
	}
	if st.BestMove == "0000" {
		resp.Terminal = true
		var reason = "NO_LEGAL_MOVES"
		if st.Score != nil && st.Score.Type == "mate" {
			reason = "CHECKMATE"
		}
		resp.Reason = &reason
	}
	if st.ErrCode != "" {
		resp.Error = &st.ErrCode
	}
	writeJSON(w, http.StatusOK, resp)
}

type hintResponse struct {
	Best    *string    `json:"best"`
	Lines   []HintLine `json:"lines"`
	Timeout bool       `json:"timeout,omitempty"`
}

func (s *Supervisor) handleHint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "POST required")
		return
	}
	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}
	if body.FEN == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FEN", "fen is required")
		return
	}
	var movesUCI, movesOK = movesUCIList(body.MovesUCI)
	if !movesOK {
		writeError(w, http.StatusBadRequest, "INVALID_MOVES_UCI", "moves_uci must be an array of UCI strings")
		return
	}
	if !s.HintAvailable() {
		writeError(w, http.StatusServiceUnavailable, "STOCKFISH_UNAVAILABLE", "hint engine is not available")
		return
	}
	var multipv, _, _ = positiveInt(body.MultiPV)
	multipv = ClampMultiPV(multipv)
	var movetimeMs, _, _ = positiveInt(body.MovetimeMs)
	movetimeMs = ClampHintMovetime(movetimeMs)

	var lines, timedOut, err = s.Hint(body.FEN, movesUCI, multipv, movetimeMs)
	if err != nil {
		s.log.Error().Err(err).Msg("hint request failed")
		writeError(w, http.StatusInternalServerError, "ENGINE_ERROR", "engine failure")
		return
	}
	var resp = hintResponse{Lines: lines, Timeout: timedOut}
	if len(lines) > 0 && len(lines[0].PVMoves) > 0 {
		resp.Best = &lines[0].PVMoves[0]
	}
	if resp.Lines == nil {
		resp.Lines = []HintLine{}
	}
	writeJSON(w, http.StatusOK, resp)
}
