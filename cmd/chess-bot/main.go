package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benjamacias/chess-bot/board"
	"github.com/benjamacias/chess-bot/book"
	"github.com/benjamacias/chess-bot/engine"
	"github.com/benjamacias/chess-bot/shell"
)

func main() {
	var args = os.Args[1:]
	if len(args) == 0 {
		var uci = shell.NewUciProtocol(engine.NewEngine(), selectedBook())
		uci.Run()
		return
	}
	if err := runDiagnostic(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// selectedBook picks the opening-book strategy: BOOK_MODE=deterministic
// plays the single-line repertoire, anything else the weighted one.
func selectedBook() book.Book {
	if os.Getenv("BOOK_MODE") == "deterministic" {
		return book.Deterministic{}
	}
	return book.Weighted{}
}

// runDiagnostic handles the perft/divide console modes:
// perft N | perftfen <fen> N | divide N | dividefen <fen> N.
func runDiagnostic(args []string) error {
	var command = args[0]
	var fen = board.InitialPositionFEN
	var rest = args[1:]

	switch command {
	case "perftfen", "dividefen":
		if len(rest) < 2 {
			return fmt.Errorf("usage: %v <fen> <depth>", command)
		}
		fen = strings.Join(rest[:len(rest)-1], " ")
		rest = rest[len(rest)-1:]
	case "perft", "divide":
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: %v <depth>", command)
	}
	var depth, err = strconv.Atoi(rest[0])
	if err != nil || depth < 1 {
		return fmt.Errorf("bad depth %q", rest[0])
	}

	if strings.HasPrefix(command, "perft") {
		return shell.RunPerft(fen, depth)
	}
	return shell.RunDivide(fen, depth)
}
