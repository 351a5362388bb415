// Package uci implements the Universal Chess Interface protocol loop
// on top of the engine package's controller.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/engine"
	"github.com/corvidchess/corvid/internal/perftcache"
)

// UCI drives the stdin/stdout command loop.
type UCI struct {
	eng   *engine.Engine
	cfg   engine.Config
	log   *zap.Logger
	perft *perftcache.Cache // nil unless a perft cache path was given (-perftcache or PERFT_CACHE_DB)

	searching bool
	searchEnd chan struct{}
}

// New builds a UCI handler wrapping an already-constructed Engine. perft
// may be nil, in which case "perft" simply skips regression checking.
func New(eng *engine.Engine, cfg engine.Config, log *zap.Logger, perft *perftcache.Cache) *UCI {
	return &UCI{eng: eng, cfg: cfg, log: log, perft: perft}
}

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.eng.NewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Print(u.eng.Board().String())
		case "perft":
			u.handlePerft(args)
		case "quit":
			u.handleStop()
			u.eng.Quit()
			return
		default:
			u.log.Warn("malformed or unrecognized UCI command", zap.String("line", line))
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Printf("id name %s\n", u.cfg.Name)
	fmt.Printf("id author %s\n", u.cfg.Author)
	fmt.Printf("option name Hash type spin default 64 min %d max %d\n", engine.MinHashMB, engine.MaxHashMB)
	fmt.Println("uciok")
}

// handlePosition parses:
//
//	position startpos [moves ...]
//	position fen <6 FEN fields> [moves ...]
//
// The "moves" token is searched for literally rather than assumed to
// sit at a fixed offset, since a FEN's en-passant field can itself
// look like a square ("moves" never collides with a legal FEN token,
// so a plain string scan is unambiguous).
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	var rest []string

	switch args[0] {
	case "startpos":
		rest = args[1:]
	case "fen":
		movesIdx := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				movesIdx = i
				break
			}
		}
		fen = strings.Join(args[1:movesIdx], " ")
		rest = args[movesIdx:]
	default:
		return
	}

	var moves []string
	if len(rest) > 0 && rest[0] == "moves" {
		moves = rest[1:]
	}

	if err := u.eng.SetPosition(fen, moves); err != nil {
		fmt.Fprintf(os.Stderr, "info string invalid position: %v\n", err)
		u.log.Warn("position command rejected", zap.Error(err))
	}
}

type goOptions struct {
	depth    int
	moveTime time.Duration
	infinite bool
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.moveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.infinite = true
		}
	}
	return opts
}

func (u *UCI) handleGo(args []string) {
	if strings.Contains(strings.Join(args, " "), "perft") {
		u.handleGoPerft(args)
		return
	}

	opts := parseGoOptions(args)
	moveTimeSeconds := 0.0
	if !opts.infinite {
		if opts.moveTime > 0 {
			moveTimeSeconds = opts.moveTime.Seconds()
		} else {
			moveTimeSeconds = float64(u.cfg.DefaultMoveTimeMs) / 1000
		}
	}

	u.searching = true
	u.searchEnd = make(chan struct{})
	start := time.Now()

	u.eng.StartSearch(opts.depth, moveTimeSeconds, func(info engine.Info) {
		u.sendInfo(info, time.Since(start))
	}, func(best board.Move) {
		// Printed even when best is NoMove, per the UCI convention of
		// reporting "bestmove 0000" on checkmate or stalemate.
		fmt.Printf("bestmove %s\n", best.String())
		u.searching = false
		close(u.searchEnd)
	})
}

func (u *UCI) handleGoPerft(args []string) {
	depth := 1
	for i, a := range args {
		if a == "perft" && i+1 < len(args) {
			depth, _ = strconv.Atoi(args[i+1])
		}
	}
	entries, total := u.eng.PerftDivide(depth)
	for _, e := range entries {
		fmt.Printf("%s: %d\n", e.Move.String(), e.Nodes)
	}
	fmt.Printf("\nNodes searched: %d\n", total)
}

func (u *UCI) sendInfo(info engine.Info, elapsed time.Duration) {
	var score string
	if info.Score > engine.MateScore-engine.MaxPly {
		score = fmt.Sprintf("mate %d", (engine.MateScore-info.Score+1)/2)
	} else if info.Score < -engine.MateScore+engine.MaxPly {
		score = fmt.Sprintf("mate %d", -(engine.MateScore+info.Score+1)/2)
	} else {
		score = fmt.Sprintf("cp %d", info.Score)
	}

	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(info.Nodes) / elapsed.Seconds())
	}

	fmt.Printf("info depth %d score %s nodes %d time %d nps %d pv %s\n",
		info.Depth, score, info.Nodes, elapsed.Milliseconds(), nps, info.BestMove.String())
}

func (u *UCI) handleStop() {
	if !u.searching {
		return
	}
	u.eng.StopSearch()
	<-u.searchEnd
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false
	for _, a := range args {
		switch a {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				name = joinField(name, a)
			} else if readingValue {
				value = joinField(value, a)
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err == nil && mb > 0 {
			u.eng.SetHashSizeMB(mb)
		}
	}
}

func joinField(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + " " + next
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}
	start := time.Now()
	nodes := u.eng.Perft(depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}

	if u.perft == nil {
		return
	}
	fen := u.eng.Board().WriteFEN()
	result, err := u.perft.Check(fen, depth, nodes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "info string perft cache error: %v\n", err)
		return
	}
	if result.Regressed {
		fmt.Fprintf(os.Stderr, "info string PERFT REGRESSION at depth %d: expected %d, got %d\n", depth, result.Prior, nodes)
	}
}
