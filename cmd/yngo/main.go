// Command yngo is a line-oriented front end for the engine: type
// "move <notation>" to play a move in the engine's notation, or "genmove"
// to have the engine pick its own, until the game ends.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/temhelk/yngine-go/pkg/mcts"
	"github.com/temhelk/yngine-go/pkg/yinsh"
)

func main() {
	memoryMB := flag.Int("memory", 512, "node pool size in megabytes")
	threads := flag.Int("threads", 1, "number of search worker goroutines")
	movetimeMS := flag.Int("movetime", 1000, "default genmove thinking time in milliseconds")
	seed := flag.Int64("seed", 0, "pin the search RNG seed for reproducible genmove sequences (0 = time-based)")
	verbose := flag.Bool("verbose", false, "log every engine decision at debug level")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	engine := mcts.NewEngine(uint64(*memoryMB) << 20)
	if *seed != 0 {
		engine.Reseed(*seed)
	}

	limits := mcts.DefaultLimits().SetMovetime(*movetimeMS).SetThreads(*threads)

	profile := termenv.ColorProfile()
	fmt.Println(profile.String("yngo — Yinsh engine").Bold())
	board := engine.Board()
	fmt.Println(board.String())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := dispatch(line, engine, limits, profile); err != nil {
			if err == errQuit {
				return
			}
			fmt.Println(profile.String(err.Error()).Foreground(profile.Color("#FF5F5F")))
		}
	}
}

var errQuit = fmt.Errorf("quit")

func dispatch(line string, engine *mcts.Engine, limits *mcts.Limits, profile termenv.Profile) error {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "quit", "exit":
		return errQuit

	case "new":
		engine.SetBoard(yinsh.New())
		board := engine.Board()
		fmt.Println(board.String())
		return nil

	case "board":
		board := engine.Board()
		fmt.Println(board.String())
		return nil

	case "move":
		if len(fields) != 2 {
			return fmt.Errorf("usage: move <notation>")
		}
		move, err := yinsh.ParseMove(fields[1])
		if err != nil {
			return err
		}
		engine.ApplyMove(move)
		board := engine.Board()
		fmt.Println(board.String())
		return nil

	case "genmove":
		move := engine.Search(limits)
		engine.ApplyMove(move)
		fmt.Println(profile.String(move.String()).Bold())
		board := engine.Board()
		fmt.Println(board.String())
		return nil

	case "movetime":
		if len(fields) != 2 {
			return fmt.Errorf("usage: movetime <milliseconds>")
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid movetime %q", fields[1])
		}
		limits.SetMovetime(ms)
		return nil

	case "result":
		board := engine.Board()
		if board.NextAction != yinsh.ActionDone {
			fmt.Println("game in progress")
			return nil
		}
		fmt.Println(board.GameResult().String())
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
