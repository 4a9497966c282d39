// Package book implements opening-book lookup: a weighted variant that
// blends repertoire weight with opening-principle and consistency scoring,
// and a deterministic variant that always plays the first catalogued
// candidate. Both share the same (history, legal moves) -> move signature;
// callers are responsible for any tactical safety gating.
package book

import (
	"sort"
	"strings"

	"lukechampine.com/frand"
)

// Candidate is one catalogued continuation for a given move-history prefix.
type Candidate struct {
	UCI    string
	Weight int
}

// Book selects a continuation given the move history played so far (in UCI
// long algebraic notation, from startpos) and the set of currently legal
// moves. It returns ok=false when the book has nothing to offer.
type Book interface {
	Pick(history []string, legalUCI []string) (string, bool)
}

func historyKey(history []string) string {
	return strings.Join(history, " ")
}

func contains(legal []string, uci string) bool {
	for _, m := range legal {
		if m == uci {
			return true
		}
	}
	return false
}

// Deterministic always plays the first legal candidate catalogued for the
// exact history prefix, with no scoring or randomness.
type Deterministic struct{}

func (Deterministic) Pick(history []string, legalUCI []string) (string, bool) {
	var candidates, ok = deterministicTable[historyKey(history)]
	if !ok {
		return "", false
	}
	for _, c := range candidates {
		if contains(legalUCI, c.UCI) {
			return c.UCI, true
		}
	}
	return "", false
}

// Weighted scores candidates by repertoire weight plus opening-principle and
// consistency bonuses, degrading by prefix when the exact history has no
// legal candidate, and picks at random among the top tier, weighting each
// shortlisted move by how close its score is to the best.
type Weighted struct{}

const shortlistMargin = 25

type scoredMove struct {
	uci   string
	score int
}

func (Weighted) Pick(history []string, legalUCI []string) (string, bool) {
	var whiteToMove = len(history)%2 == 0
	var ply = len(history)

	var scoreForPrefix = func(prefixLen int) []scoredMove {
		if prefixLen%2 != ply%2 {
			return nil
		}
		var candidates, ok = weightedTable[historyKey(history[:prefixLen])]
		if !ok {
			return nil
		}
		var result []scoredMove
		for _, c := range candidates {
			if c.Weight <= 0 || !contains(legalUCI, c.UCI) {
				continue
			}
			var score = c.Weight + principleBonus(c.UCI, whiteToMove, ply) + consistencyBonus(c.Weight, prefixLen, ply)
			result = append(result, scoredMove{c.UCI, score})
		}
		return result
	}

	var scored = scoreForPrefix(len(history))
	if len(scored) == 0 {
		for prefixLen := len(history); prefixLen > 0; prefixLen-- {
			scored = scoreForPrefix(prefixLen - 1)
			if len(scored) > 0 {
				break
			}
		}
	}
	if len(scored) == 0 {
		return "", false
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].uci < scored[j].uci
	})

	var best = scored[0].score
	var shortlist []scoredMove
	for _, s := range scored {
		if s.score < best-shortlistMargin {
			break
		}
		shortlist = append(shortlist, s)
	}
	if len(shortlist) == 1 {
		return shortlist[0].uci, true
	}

	var totalWeight int
	for _, s := range shortlist {
		var w = s.score - (best - 30)
		if w < 1 {
			w = 1
		}
		totalWeight += w
	}

	var pick = frand.Intn(totalWeight)
	var cumulative int
	for _, s := range shortlist {
		var w = s.score - (best - 30)
		if w < 1 {
			w = 1
		}
		cumulative += w
		if pick < cumulative {
			return s.uci, true
		}
	}
	return shortlist[len(shortlist)-1].uci, true
}

func isEarlyQueenMove(uci string, ply int) bool {
	if ply > 6 || len(uci) < 2 {
		return false
	}
	return strings.HasPrefix(uci, "d1") || strings.HasPrefix(uci, "d8")
}

var rookPawnAdvances = map[string]bool{
	"a2a3": true, "a2a4": true, "h2h3": true, "h2h4": true,
	"a7a6": true, "a7a5": true, "h7h6": true, "h7h5": true,
}

func isEarlyRookPawnAdvance(uci string, ply int) bool {
	return ply < 4 && rookPawnAdvances[uci]
}

// principleBonus rewards classical development during the first ten plies
// and penalizes early queen sorties (first seven plies) and rook-pawn
// advances (first four plies).
func principleBonus(move string, whiteToMove bool, ply int) int {
	var bonus int
	if ply < 10 {
		if whiteToMove {
			switch move {
			case "e2e4":
				bonus += 40
			case "d2d4":
				bonus += 36
			case "g1f3":
				bonus += 28
			case "b1c3":
				bonus += 24
			case "f1c4":
				bonus += 20
			case "f1b5":
				bonus += 18
			case "c1g5":
				bonus += 14
			}
		} else {
			switch move {
			case "e7e6":
				bonus += 34
			case "c7c6":
				bonus += 33
			case "d7d5":
				bonus += 32
			case "g8f6":
				bonus += 24
			case "c7c5":
				bonus -= 10
			}
		}
	}
	if isEarlyQueenMove(move, ply) {
		bonus -= 35
	}
	if isEarlyRookPawnAdvance(move, ply) {
		bonus -= 25
	}
	return bonus
}

func consistencyBonus(weight, prefixPly, currentPly int) int {
	var deviation = 0
	if currentPly >= prefixPly {
		deviation = currentPly - prefixPly
	}
	var bonus int
	switch {
	case weight >= MainLine:
		bonus += 40
	case weight >= GoodAlternative:
		bonus += 20
	default:
		bonus += 8
	}
	bonus += prefixPly * 2
	bonus -= deviation * 12
	return bonus
}
