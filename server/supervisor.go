// Package server implements the orchestration service: a supervisor that
// owns UCI engine child processes, serializes searches against them, tracks
// per-request telemetry, and exposes the HTTP move/status/hint surface.
package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/benjamacias/chess-bot/uciclient"
)

const (
	handshakeTimeout = 5 * time.Second
	minWaitTimeout   = 5 * time.Second
)

// Config names the engine binaries the supervisor should spawn.
type Config struct {
	EnginePath    string
	StockfishPath string
}

// Supervisor owns the primary engine (move requests) and the optional
// secondary engine (multi-PV hints), each behind its own serialization
// queue.
type Supervisor struct {
	log       zerolog.Logger
	primary   *uciclient.Client
	secondary *uciclient.Client
	states    *stateMap

	primaryQueue   *taskQueue
	secondaryQueue *taskQueue

	mu       sync.Mutex
	activeID string
	hashMB   int
}

// New spawns and handshakes the engines. A missing or unresponsive
// secondary is logged and leaves hints unavailable; it does not fail
// startup.
func New(cfg Config, log zerolog.Logger) (*Supervisor, error) {
	var s = &Supervisor{
		log:            log,
		states:         newStateMap(),
		primaryQueue:   newTaskQueue(log.With().Str("queue", "engine").Logger()),
		secondaryQueue: newTaskQueue(log.With().Str("queue", "stockfish").Logger()),
	}

	var primary, err = uciclient.Start("engine", cfg.EnginePath, log)
	if err != nil {
		return nil, fmt.Errorf("spawn engine: %w", err)
	}
	if err := handshake(primary); err != nil {
		return nil, fmt.Errorf("engine handshake: %w", err)
	}
	s.primary = primary
	s.primary.Observe(s.onPrimaryLine)

	if cfg.StockfishPath != "" {
		if secondary, err := uciclient.Start("stockfish", cfg.StockfishPath, log); err != nil {
			log.Warn().Err(err).Msg("secondary engine unavailable")
		} else if err := handshake(secondary); err != nil {
			log.Warn().Err(err).Msg("secondary engine handshake failed")
			_ = secondary.Close()
		} else {
			s.secondary = secondary
		}
	}
	return s, nil
}

func handshake(c *uciclient.Client) error {
	var uciok = c.ExpectPrefix("uciok", "", handshakeTimeout)
	if err := c.Send("uci"); err != nil {
		return err
	}
	if _, err := uciok.Await(); err != nil {
		return err
	}
	var readyok = c.ExpectPrefix("readyok", "", handshakeTimeout)
	if err := c.Send("isready"); err != nil {
		return err
	}
	var _, err = readyok.Await()
	return err
}

// HintAvailable reports whether the secondary engine survived startup and
// is still running.
func (s *Supervisor) HintAvailable() bool {
	return s.secondary != nil && s.secondary.Alive()
}

// Close shuts both engines down.
func (s *Supervisor) Close() {
	_ = s.primary.Close()
	if s.secondary != nil {
		_ = s.secondary.Close()
	}
}

// onPrimaryLine is the permanent observer attributing engine output to the
// currently active request: info lines update the request's live
// telemetry, a bestmove line finalizes it.
func (s *Supervisor) onPrimaryLine(line string) {
	s.mu.Lock()
	var id = s.activeID
	s.mu.Unlock()
	if id == "" {
		return
	}
	if strings.HasPrefix(line, "bestmove ") {
		var fields = strings.Fields(line)
		if len(fields) >= 2 {
			s.states.finalize(id, fields[1])
		}
		s.mu.Lock()
		s.activeID = ""
		s.mu.Unlock()
		return
	}
	if depth, score, pv, ok := parseInfoLine(line); ok {
		s.states.setInfo(id, depth, score, pv)
	}
}

// parseInfoLine extracts depth, score and pv tokens from a UCI info line.
// "info string" lines carry no telemetry and report ok=false.
func parseInfoLine(line string) (depth int, score *Score, pv string, ok bool) {
	if !strings.HasPrefix(line, "info ") {
		return 0, nil, "", false
	}
	var fields = strings.Fields(line)
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "string":
			return 0, nil, "", false
		case "depth":
			if i+1 < len(fields) {
				depth, _ = strconv.Atoi(fields[i+1])
				i++
			}
		case "score":
			if i+2 < len(fields) && (fields[i+1] == "cp" || fields[i+1] == "mate") {
				var value, err = strconv.Atoi(fields[i+2])
				if err == nil {
					score = &Score{Type: fields[i+1], Value: value}
				}
				i += 2
			}
		case "pv":
			if i+1 < len(fields) {
				pv = strings.Join(fields[i+1:], " ")
			}
			return depth, score, pv, true
		}
	}
	return depth, score, pv, true
}

// MoveOptions are the fully resolved search options for one move request.
type MoveOptions struct {
	MovetimeMs int
	Depth      int
	HashMB     int
}

// MoveResult is the outcome of one move request against the primary engine.
type MoveResult struct {
	UCI      string
	Timeout  bool
	Terminal bool
	Reason   string
	Depth    int
	Score    *Score
	PV       string
	BookHit  bool
}

// Move runs one search on the primary engine's queue and blocks until it
// resolves. The request must already be registered in the state map.
func (s *Supervisor) Move(id, fen string, movesUCI []string, opts MoveOptions) (MoveResult, error) {
	var result MoveResult
	var taskErr error
	s.primaryQueue.Do(func() {
		result, taskErr = s.moveTask(id, fen, movesUCI, opts)
	})
	return result, taskErr
}

func (s *Supervisor) moveTask(id, fen string, movesUCI []string, opts MoveOptions) (MoveResult, error) {
	s.mu.Lock()
	s.activeID = id
	var hashMB = s.hashMB
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.activeID = ""
		s.mu.Unlock()
		s.primary.CancelRequest(id)
	}()

	var fail = func(code string, err error) (MoveResult, error) {
		s.states.setError(id, code)
		return MoveResult{}, err
	}

	if opts.HashMB > 0 && opts.HashMB != hashMB {
		var readyok = s.primary.ExpectPrefix("readyok", id, handshakeTimeout)
		if err := s.primary.Send(fmt.Sprintf("setoption name Hash value %d", opts.HashMB)); err != nil {
			return fail("ENGINE_ERROR", err)
		}
		if err := s.primary.Send("isready"); err != nil {
			return fail("ENGINE_ERROR", err)
		}
		if _, err := readyok.Await(); err != nil {
			return fail("ENGINE_ERROR", err)
		}
		s.mu.Lock()
		s.hashMB = opts.HashMB
		s.mu.Unlock()
	}

	var positionCmd string
	if len(movesUCI) > 0 {
		positionCmd = "position startpos moves " + strings.Join(movesUCI, " ")
	} else {
		positionCmd = "position fen " + fen
	}
	if err := s.primary.Send(positionCmd); err != nil {
		return fail("ENGINE_ERROR", err)
	}

	var removeBookObserver = s.primary.Observe(func(line string) {
		if strings.HasPrefix(line, "info string bookhit") {
			s.states.setBookHit(id)
		}
	})
	defer removeBookObserver()

	var timeout = waitTimeout(opts.MovetimeMs)
	var bestmove = s.primary.ExpectPrefix("bestmove ", id, timeout)

	var goCmd string
	if opts.Depth > 0 {
		goCmd = fmt.Sprintf("go depth %d", opts.Depth)
	} else {
		goCmd = fmt.Sprintf("go movetime %d", opts.MovetimeMs)
	}
	if err := s.primary.Send(goCmd); err != nil {
		return fail("ENGINE_ERROR", err)
	}

	var line, err = bestmove.Await()
	if err == uciclient.ErrEngineTimeout {
		s.states.setError(id, "ENGINE_TIMEOUT")
		return MoveResult{Timeout: true}, nil
	}
	if err != nil {
		return fail("ENGINE_ERROR", err)
	}

	var fields = strings.Fields(line)
	if len(fields) < 2 {
		return fail("ENGINE_ERROR", fmt.Errorf("malformed bestmove line %q", line))
	}
	var uci = fields[1]

	var st, _ = s.states.get(id)
	var result = MoveResult{
		Depth:   st.Depth,
		Score:   st.Score,
		PV:      st.PV,
		BookHit: st.BookHit,
	}
	if uci == "0000" {
		result.Terminal = true
		if st.Score != nil && st.Score.Type == "mate" {
			result.Reason = "CHECKMATE"
		} else {
			result.Reason = "NO_LEGAL_MOVES"
		}
		return result, nil
	}
	result.UCI = uci
	return result, nil
}

func waitTimeout(movetimeMs int) time.Duration {
	var t = time.Duration(movetimeMs+4000) * time.Millisecond
	if t < minWaitTimeout {
		t = minWaitTimeout
	}
	return t
}
