package server

import (
	"sync"
	"time"
)

// Score is a UCI score, either centipawns or moves-to-mate.
type Score struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// requestState tracks one move request's lifecycle: active while the engine
// searches, then finalized (bestmove set) or errored.
type requestState struct {
	ID         string
	Active     bool
	StartedAt  time.Time
	FinishedAt time.Time
	LastInfoAt time.Time
	Depth      int
	Score      *Score
	PV         string
	BestMove   string
	BookHit    bool
	ErrCode    string
}

const evictAfter = 60 * time.Second

// stateMap is the per-request state store. Handlers and the engine reader
// loop touch it from different goroutines, so access is mutex-guarded.
type stateMap struct {
	mu sync.Mutex
	m  map[string]*requestState
}

func newStateMap() *stateMap {
	return &stateMap{m: make(map[string]*requestState)}
}

func (s *stateMap) register(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = &requestState{ID: id, Active: true, StartedAt: time.Now()}
}

func (s *stateMap) setInfo(id string, depth int, score *Score, pv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st, ok = s.m[id]
	if !ok {
		return
	}
	st.LastInfoAt = time.Now()
	if depth > 0 {
		st.Depth = depth
	}
	if score != nil {
		st.Score = score
	}
	if pv != "" {
		st.PV = pv
	}
}

func (s *stateMap) setBookHit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.m[id]; ok {
		st.BookHit = true
	}
}

func (s *stateMap) finalize(id, bestmove string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st, ok = s.m[id]
	if !ok {
		return
	}
	st.Active = false
	st.BestMove = bestmove
	st.FinishedAt = time.Now()
}

func (s *stateMap) setError(id, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st, ok = s.m[id]
	if !ok {
		return
	}
	st.Active = false
	st.ErrCode = code
	if st.FinishedAt.IsZero() {
		st.FinishedAt = time.Now()
	}
}

// get returns a copy of the request's state, evicting finalized entries
// older than the retention window first.
func (s *stateMap) get(id string) (requestState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cutoff = time.Now().Add(-evictAfter)
	for key, st := range s.m {
		if !st.Active && !st.FinishedAt.IsZero() && st.FinishedAt.Before(cutoff) {
			delete(s.m, key)
		}
	}
	var st, ok = s.m[id]
	if !ok {
		return requestState{}, false
	}
	return *st, true
}
