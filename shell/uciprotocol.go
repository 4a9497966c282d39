// Package shell implements the engine's console surface: the UCI
// line-protocol loop over stdin/stdout and the perft/divide diagnostics.
package shell

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benjamacias/chess-bot/board"
	"github.com/benjamacias/chess-bot/book"
	"github.com/benjamacias/chess-bot/engine"
)

// UciProtocol reads one command per line from stdin and drives the engine.
// Commands run to completion before the next one is read, so lines from two
// logical searches can never interleave on stdout.
type UciProtocol struct {
	engine      *engine.Engine
	book        book.Book
	position    board.Position
	moveHistory []string
	fields      []string
}

func NewUciProtocol(eng *engine.Engine, bk book.Book) *UciProtocol {
	return &UciProtocol{
		engine:   eng,
		book:     bk,
		position: board.NewInitialPosition(),
	}
}

func (uci *UciProtocol) Run() {
	var commands = map[string]func(){
		"uci":        uci.uciCommand,
		"setoption":  uci.setOptionCommand,
		"isready":    uci.isReadyCommand,
		"position":   uci.positionCommand,
		"go":         uci.goCommand,
		"ucinewgame": uci.uciNewGameCommand,
	}
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var fields = strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			break
		}
		var cmd, ok = commands[fields[0]]
		if !ok {
			notify("unknown command " + fields[0])
			continue
		}
		uci.fields = fields[1:]
		cmd()
	}
}

// notify emits a diagnostic as a UCI "info string" line, which GUIs display
// without treating it as search output.
func notify(msg string) {
	fmt.Printf("info string %s\n", msg)
}

func (uci *UciProtocol) uciCommand() {
	var name, author = uci.engine.GetInfo()
	fmt.Printf("id name %s\n", name)
	fmt.Printf("id author %s\n", author)
	for _, option := range uci.engine.GetOptions() {
		switch option := option.(type) {
		case *engine.BoolOption:
			fmt.Printf("option name %v type check default %v\n",
				option.Name(), option.Value)
		case *engine.IntOption:
			fmt.Printf("option name %v type spin default %v min %v max %v\n",
				option.Name(), option.Value, option.Min, option.Max)
		}
	}
	fmt.Println("uciok")
}

func (uci *UciProtocol) setOptionCommand() {
	var name, value, ok = parseSetOption(uci.fields)
	if !ok {
		return
	}
	for _, option := range uci.engine.GetOptions() {
		if !strings.EqualFold(option.Name(), name) {
			continue
		}
		switch option := option.(type) {
		case *engine.BoolOption:
			if v, err := strconv.ParseBool(value); err == nil {
				option.Value = v
			}
		case *engine.IntOption:
			var v, err = strconv.Atoi(value)
			if err == nil && v >= option.Min && v <= option.Max {
				option.Value = v
			}
		}
		return
	}
}

// parseSetOption splits a "name <id...> value <v...>" argument list into its
// two halves. Option names may span several tokens.
func parseSetOption(args []string) (name, value string, ok bool) {
	if len(args) == 0 || args[0] != "name" {
		return "", "", false
	}
	var i = 1
	for i < len(args) && args[i] != "value" {
		i++
	}
	if i == 1 || i+1 >= len(args) {
		return "", "", false
	}
	return strings.Join(args[1:i], " "), strings.Join(args[i+1:], " "), true
}

func (uci *UciProtocol) isReadyCommand() {
	uci.engine.Prepare()
	fmt.Println("readyok")
}

func (uci *UciProtocol) uciNewGameCommand() {
	uci.position = board.NewInitialPosition()
	uci.moveHistory = nil
	uci.engine.NewGame()
}

func (uci *UciProtocol) positionCommand() {
	var args = uci.fields
	if len(args) == 0 {
		notify("position: missing arguments")
		return
	}
	var setup, moves = splitAtToken(args, "moves")
	var fen string
	switch setup[0] {
	case "startpos":
		fen = board.InitialPositionFEN
	case "fen":
		fen = strings.Join(setup[1:], " ")
	default:
		notify("position: expected startpos or fen")
		return
	}
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		notify("position: " + err.Error())
		return
	}
	var history []string
	for _, lan := range moves {
		if !p.PlayUCIMove(lan) {
			notify("position: illegal move " + lan)
			return
		}
		history = append(history, lan)
	}
	uci.position = p
	uci.moveHistory = history
}

// splitAtToken cuts args around the first occurrence of token; after is nil
// when the token is absent.
func splitAtToken(args []string, token string) (before, after []string) {
	for i, a := range args {
		if a == token {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func (uci *UciProtocol) goCommand() {
	var limits = parseLimits(uci.fields)

	if m, ok := bookMove(&uci.position, uci.moveHistory, uci.book); ok {
		fmt.Printf("info string bookhit move=%v\n", m)
		fmt.Printf("bestmove %v\n", m)
		return
	}

	var result = uci.engine.Search(engine.SearchParams{
		Position: &uci.position,
		Limits:   limits,
		Progress: printSearchInfo,
	})
	if len(result.PV) == 0 {
		if uci.position.IsCheck() {
			fmt.Println("info depth 0 score mate 0")
		} else {
			fmt.Println("info depth 0 score cp 0")
		}
		fmt.Println("bestmove 0000")
		return
	}
	fmt.Printf("bestmove %v\n", result.PV[0])
}

func printSearchInfo(si engine.Info) {
	var score string
	if mate, ok := engine.ScoreToMate(si.Score); ok {
		score = fmt.Sprintf("mate %d", mate)
	} else {
		score = fmt.Sprintf("cp %d", si.Score)
	}
	var moves = make([]string, len(si.PV))
	for i, m := range si.PV {
		moves[i] = m.String()
	}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	fmt.Printf("info depth %d score %s nodes %d time %d nps %d pv %s\n",
		si.Depth, score, si.Nodes, si.Time, nps, strings.Join(moves, " "))
}

func parseLimits(args []string) engine.Limits {
	var limits engine.Limits
	var numeric = map[string]*int{
		"wtime":    &limits.WhiteTime,
		"btime":    &limits.BlackTime,
		"winc":     &limits.WhiteInc,
		"binc":     &limits.BlackInc,
		"depth":    &limits.Depth,
		"movetime": &limits.MoveTime,
	}
	for i := 0; i < len(args); i++ {
		if args[i] == "infinite" {
			limits.Infinite = true
			continue
		}
		if dst, ok := numeric[args[i]]; ok && i+1 < len(args) {
			*dst, _ = strconv.Atoi(args[i+1])
			i++
		}
	}
	return limits
}
