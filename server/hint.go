package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/benjamacias/chess-bot/uciclient"
)

const (
	minMultiPV         = 1
	maxMultiPV         = 8
	defaultMultiPV     = 3
	minHintMovetimeMs  = 50
	maxHintMovetimeMs  = 2000
	defaultHintTimeMs  = 120
	mateProjectionBase = 100000
)

// HintLine is one ranked continuation from the secondary engine.
type HintLine struct {
	UCI     string   `json:"uci"`
	ScoreCp int      `json:"scoreCp"`
	PVMoves []string `json:"pvMoves"`
}

// ClampMultiPV bounds the requested line count to [1, 8], defaulting to 3.
func ClampMultiPV(n int) int {
	if n <= 0 {
		return defaultMultiPV
	}
	return clamp(n, minMultiPV, maxMultiPV)
}

// ClampHintMovetime bounds the hint search time to [50, 2000]ms, defaulting
// to 120.
func ClampHintMovetime(ms int) int {
	if ms <= 0 {
		return defaultHintTimeMs
	}
	return clamp(ms, minHintMovetimeMs, maxHintMovetimeMs)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Hint runs a MultiPV search on the secondary engine's queue and returns up
// to multipv ranked lines. timeout=true means the engine never produced a
// bestmove within its deadline; the lines collected so far are still
// returned.
func (s *Supervisor) Hint(fen string, movesUCI []string, multipv, movetimeMs int) (lines []HintLine, timeout bool, err error) {
	s.secondaryQueue.Do(func() {
		lines, timeout, err = s.hintTask(fen, movesUCI, multipv, movetimeMs)
	})
	return lines, timeout, err
}

func (s *Supervisor) hintTask(fen string, movesUCI []string, multipv, movetimeMs int) ([]HintLine, bool, error) {
	var readyok = s.secondary.ExpectPrefix("readyok", "", handshakeTimeout)
	if err := s.secondary.Send(fmt.Sprintf("setoption name MultiPV value %d", multipv)); err != nil {
		return nil, false, err
	}
	if err := s.secondary.Send("isready"); err != nil {
		return nil, false, err
	}
	if _, err := readyok.Await(); err != nil {
		return nil, false, err
	}

	var positionCmd string
	if len(movesUCI) > 0 {
		positionCmd = "position startpos moves " + strings.Join(movesUCI, " ")
	} else {
		positionCmd = "position fen " + fen
	}
	if err := s.secondary.Send(positionCmd); err != nil {
		return nil, false, err
	}

	// Latest info line per multipv index wins.
	var mu sync.Mutex
	var byIndex = make(map[int]HintLine)
	var removeObserver = s.secondary.Observe(func(line string) {
		var index, entry, ok = parseMultiPVLine(line)
		if !ok {
			return
		}
		mu.Lock()
		byIndex[index] = entry
		mu.Unlock()
	})
	defer removeObserver()

	var bestmove = s.secondary.ExpectPrefix("bestmove ", "", waitTimeout(movetimeMs))
	if err := s.secondary.Send(fmt.Sprintf("go movetime %d", movetimeMs)); err != nil {
		return nil, false, err
	}
	var _, err = bestmove.Await()
	var timedOut = err == uciclient.ErrEngineTimeout
	if err != nil && !timedOut {
		return nil, false, err
	}

	mu.Lock()
	var indexes = make([]int, 0, len(byIndex))
	for k := range byIndex {
		indexes = append(indexes, k)
	}
	sort.Ints(indexes)
	var lines = make([]HintLine, 0, multipv)
	for _, k := range indexes {
		if len(lines) == multipv {
			break
		}
		lines = append(lines, byIndex[k])
	}
	mu.Unlock()
	return lines, timedOut, nil
}

// parseMultiPVLine extracts one "info ... multipv K ... score ... pv ..."
// line. Mate scores are projected to +-(100000 - |n|) so they order above
// any centipawn score.
func parseMultiPVLine(line string) (int, HintLine, bool) {
	if !strings.HasPrefix(line, "info ") || !strings.Contains(line, " multipv ") {
		return 0, HintLine{}, false
	}
	var fields = strings.Fields(line)
	var index int
	var scoreCp int
	var haveScore bool
	var pvMoves []string
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "multipv":
			if i+1 < len(fields) {
				index, _ = strconv.Atoi(fields[i+1])
				i++
			}
		case "score":
			if i+2 < len(fields) {
				var value, err = strconv.Atoi(fields[i+2])
				if err == nil {
					switch fields[i+1] {
					case "cp":
						scoreCp = value
						haveScore = true
					case "mate":
						if value >= 0 {
							scoreCp = mateProjectionBase - value
						} else {
							scoreCp = -(mateProjectionBase + value)
						}
						haveScore = true
					}
				}
				i += 2
			}
		case "pv":
			pvMoves = fields[i+1:]
			i = len(fields)
		}
	}
	if index == 0 || !haveScore || len(pvMoves) == 0 {
		return 0, HintLine{}, false
	}
	return index, HintLine{UCI: pvMoves[0], ScoreCp: scoreCp, PVMoves: pvMoves}, true
}
