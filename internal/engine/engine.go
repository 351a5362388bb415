package engine

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/corvidchess/corvid/internal/board"
)

// State is the engine's position in the UCI session lifecycle.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateQuitting
)

// Info is a progress report emitted once per completed iterative-
// deepening depth, for the UCI "info" line.
type Info struct {
	Depth    int
	Score    int
	Nodes    uint64
	BestMove board.Move
}

// Engine is the UCI-facing controller: it owns the board, the
// transposition table, and the worker goroutine a search runs on, while
// the caller's command loop keeps reading stdin. Each StartSearch starts
// a new worker goroutine; no goroutine outlives its search.
type Engine struct {
	mu    sync.Mutex
	state State

	board    *board.Board
	tt       *TranspositionTable
	searcher *Searcher
	config   Config
	log      *zap.Logger

	searchCtx *SearchContext
	wg        errgroup.Group
}

// New builds an Engine ready to receive UCI commands.
func New(cfg Config, log *zap.Logger) *Engine {
	tt := NewTranspositionTable(cfg.HashMB)
	return &Engine{
		state:    StateIdle,
		board:    board.NewBoard(),
		tt:       tt,
		searcher: NewSearcher(tt),
		config:   cfg,
		log:      log,
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Board exposes the current position for UCI's "d" debug command.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board
}

// NewGame resets the board, clears the transposition table, and aborts
// any in-flight search, as required before starting a fresh UCI game.
func (e *Engine) NewGame() {
	e.StopSearch()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = board.NewBoard()
	e.tt.Clear()
	e.log.Debug("ucinewgame: board and transposition table reset")
}

// SetPosition replaces the current board with one built from fen (or
// the standard start position when fen is empty) and then applies
// moves in UCI coordinate notation in order.
func (e *Engine) SetPosition(fen string, moves []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := board.NewBoard()
	if fen != "" {
		if err := b.SetupWithFEN(fen); err != nil {
			e.log.Warn("position fen rejected, previous board kept", zap.String("fen", fen), zap.Error(err))
			return err
		}
	}
	for _, uciMove := range moves {
		m, err := board.ParseUCIMove(b, uciMove)
		if err != nil {
			e.log.Warn("position moves rejected, previous board kept", zap.String("move", uciMove), zap.Error(err))
			return err
		}
		b.Make(m)
	}
	e.board = b
	return nil
}

// StartSearch launches a search on a background goroutine, bounded by
// maxDepth (0 means MaxPly) and an optional movetime in seconds (0
// means unbounded). onInfo is invoked once per completed depth and
// onDone once when the search finishes or is stopped; both are called
// from the search goroutine, never concurrently with each other.
func (e *Engine) StartSearch(maxDepth int, moveTimeSeconds float64, onInfo func(Info), onDone func(board.Move)) {
	e.mu.Lock()
	if e.state == StateSearching {
		e.mu.Unlock()
		return
	}
	e.state = StateSearching
	b := e.board
	sc := NewSearchContext(moveTimeSeconds)
	e.searchCtx = sc
	e.mu.Unlock()

	depth := maxDepth
	if depth <= 0 {
		depth = MaxPly
	}
	e.log.Debug("search starting", zap.Int("max_depth", depth), zap.Float64("movetime_s", moveTimeSeconds))

	e.wg.Go(func() error {
		result := e.searcher.IterativeDeepening(b, sc, depth, func(r SearchResult) {
			e.log.Debug("iteration complete",
				zap.Int("depth", r.Depth), zap.Int("score", r.Score),
				zap.Uint64("nodes", r.Nodes), zap.Duration("elapsed", sc.Elapsed()))
			if onInfo != nil {
				onInfo(Info{Depth: r.Depth, Score: r.Score, Nodes: r.Nodes, BestMove: r.BestMove})
			}
		})

		e.mu.Lock()
		e.state = StateIdle
		e.mu.Unlock()
		e.log.Debug("search finished", zap.Bool("cancelled", result.Cancelled), zap.String("bestmove", result.BestMove.String()))

		if onDone != nil {
			onDone(result.BestMove)
		}
		return nil
	})
}

// StopSearch requests cancellation of any in-flight search and blocks
// until the worker goroutine has observed it and returned to idle.
func (e *Engine) StopSearch() {
	e.mu.Lock()
	sc := e.searchCtx
	e.mu.Unlock()
	if sc != nil {
		sc.Stop()
	}
	e.wg.Wait()
}

// Quit marks the engine as shutting down and stops any active search.
func (e *Engine) Quit() {
	e.StopSearch()
	e.mu.Lock()
	e.state = StateQuitting
	e.mu.Unlock()
}

// Hash size bounds for "setoption name Hash value N", per SPEC_FULL.md
// §4.8.
const (
	MinHashMB = 1
	MaxHashMB = 1024
)

// SetHashSizeMB resizes the transposition table, discarding its
// contents, in response to a UCI "setoption name Hash value N". mb is
// clamped to [MinHashMB, MaxHashMB].
func (e *Engine) SetHashSizeMB(mb int) {
	if mb < MinHashMB {
		mb = MinHashMB
	} else if mb > MaxHashMB {
		mb = MaxHashMB
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Resize(mb)
}

// Perft runs a perft count on the current position without disturbing
// search state.
func (e *Engine) Perft(depth int) uint64 {
	e.mu.Lock()
	b := e.board
	e.mu.Unlock()
	return board.Perft(b, depth)
}

// PerftDivide runs perft divide mode on the current position.
func (e *Engine) PerftDivide(depth int) ([]board.DivideEntry, uint64) {
	e.mu.Lock()
	b := e.board
	e.mu.Unlock()
	return board.PerftDivide(b, depth)
}
