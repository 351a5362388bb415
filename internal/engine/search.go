package engine

import (
	"sync/atomic"
	"time"

	"github.com/corvidchess/corvid/internal/board"
)

// Search score constants, in centipawns.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// SearchContext bundles the cooperative-cancellation state for one
// search: an atomic stop flag plus a time budget. It is created fresh
// per search rather than held as a package-level singleton, so multiple
// Engine instances (or concurrent tests) never share cancellation state.
type SearchContext struct {
	stop     atomic.Bool
	start    time.Time
	maxSecs  float64 // 0 means no time limit
	maxNodes uint64  // 0 means no node limit
	nodes    uint64
}

// NewSearchContext builds a context with an optional movetime budget.
// maxSecs of 0 disables the time check; the caller is expected to call
// Stop() directly (or let depth/node limits end the search instead).
func NewSearchContext(maxSecs float64) *SearchContext {
	return &SearchContext{start: time.Now(), maxSecs: maxSecs}
}

// Stop requests cancellation of the in-flight search. Safe to call from
// any goroutine; a UCI "stop" command handler is the typical caller.
func (sc *SearchContext) Stop() { sc.stop.Store(true) }

// Nodes returns the number of nodes visited so far.
func (sc *SearchContext) Nodes() uint64 { return sc.nodes }

// Elapsed returns the time since the search began.
func (sc *SearchContext) Elapsed() time.Duration { return time.Since(sc.start) }

// cancelled reports whether the search should unwind immediately: an
// explicit Stop(), a blown time budget, or an exhausted node budget.
// Checked every 2048 nodes to keep the cost of the clock read down.
func (sc *SearchContext) cancelled() bool {
	if sc.stop.Load() {
		return true
	}
	if sc.nodes&2047 == 0 {
		if sc.maxSecs > 0 && time.Since(sc.start).Seconds() >= sc.maxSecs {
			return true
		}
	}
	if sc.maxNodes > 0 && sc.nodes >= sc.maxNodes {
		return true
	}
	return false
}

// SearchResult is the outcome of a completed (or cancelled) search.
type SearchResult struct {
	BestMove  board.Move
	Score     int
	Depth     int
	Nodes     uint64
	Cancelled bool
}

// Searcher runs iterative-deepening negamax with alpha-beta pruning, a
// quiescence search extension, and transposition-table probing against
// one Board. It owns no position state of its own: every call mutates
// and restores b via Make/Unmake.
type Searcher struct {
	tt *TranspositionTable
}

// NewSearcher returns a Searcher backed by tt.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// IterativeDeepening searches b from depth 1 up to maxDepth (or until sc
// is cancelled), returning the deepest completed result. If sc is
// cancelled mid-iteration the partially searched depth's result is
// discarded and the previous iteration's result is returned instead,
// since an interrupted negamax pass cannot be trusted.
func (s *Searcher) IterativeDeepening(b *board.Board, sc *SearchContext, maxDepth int, onDepth func(SearchResult)) SearchResult {
	var best SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		score, move, cancelled := s.searchRoot(b, sc, depth)
		if cancelled {
			best.Cancelled = true
			break
		}
		best = SearchResult{BestMove: move, Score: score, Depth: depth, Nodes: sc.Nodes()}
		if onDepth != nil {
			onDepth(best)
		}
		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
	}
	return best
}

func (s *Searcher) searchRoot(b *board.Board, sc *SearchContext, depth int) (score int, best board.Move, cancelled bool) {
	moves := board.GenerateLegal(b, false)
	if moves.Len() == 0 {
		if b.InCheck() {
			return -MateScore, board.NoMove, false
		}
		return 0, board.NoMove, false
	}

	var ttMove board.Move
	if _, _, _, m, ok := s.tt.Probe(b.ZobristHash()); ok {
		ttMove = m
	}
	orderMoves(b, &moves, ttMove)

	alpha, beta := -Infinity, Infinity
	bestScore := -Infinity
	best = moves.Get(0)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.Make(m)
		childScore := -s.negamax(b, sc, depth-1, 1, -beta, -alpha)
		b.Unmake()

		if sc.cancelled() {
			return 0, board.NoMove, true
		}

		if childScore > bestScore {
			bestScore = childScore
			best = m
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	s.tt.Store(b.ZobristHash(), bestScore, depth, BoundExact, best)
	return bestScore, best, false
}

// negamax searches b to depth plies from ply, returning a score from
// the side-to-move's perspective. Terminal conditions are checked in a
// fixed order: cancellation, then threefold repetition, then the
// fifty-move rule, then a sufficiently deep transposition-table hit,
// then (at depth 0) quiescence, then checkmate/stalemate.
func (s *Searcher) negamax(b *board.Board, sc *SearchContext, depth, ply int, alpha, beta int) int {
	sc.nodes++
	if sc.cancelled() {
		return 0
	}

	if ply > 0 {
		if b.RepetitionCount() >= 3 {
			return 0
		}
		if b.HalfmoveClock() >= 100 {
			return 0
		}
	}

	hash := b.ZobristHash()
	var ttMove board.Move
	if ttScore, ttDepth, ttBound, m, ok := s.tt.Probe(hash); ok {
		ttMove = m
		if ttDepth >= depth {
			switch ttBound {
			case BoundExact:
				return ttScore
			case BoundLower:
				if ttScore > alpha {
					alpha = ttScore
				}
			case BoundUpper:
				if ttScore < beta {
					beta = ttScore
				}
			}
			if alpha >= beta {
				return ttScore
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(b, sc, ply, alpha, beta)
	}

	moves := board.GenerateLegal(b, false)
	if moves.Len() == 0 {
		if b.InCheck() {
			return -MateScore + ply
		}
		return 0
	}

	orderMoves(b, &moves, ttMove)

	bestScore := -Infinity
	best := moves.Get(0)
	bound := BoundUpper

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.Make(m)
		score := -s.negamax(b, sc, depth-1, ply+1, -beta, -alpha)
		b.Unmake()

		if sc.cancelled() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			best = m
		}
		if bestScore > alpha {
			alpha = bestScore
			bound = BoundExact
		}
		if alpha >= beta {
			bound = BoundLower
			break
		}
	}

	s.tt.Store(hash, bestScore, depth, bound, best)
	return bestScore
}

// quiescence extends the search along capture lines only, until the
// position is quiet, to avoid the horizon effect at the search's leaf
// nodes. standPat lets a side that has no good capture simply keep its
// current static evaluation rather than being forced to capture.
func (s *Searcher) quiescence(b *board.Board, sc *SearchContext, ply int, alpha, beta int) int {
	sc.nodes++
	if sc.cancelled() {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(b)
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := board.GenerateLegal(b, true)
	orderMoves(b, &moves, board.Invalid)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.Make(m)
		score := -s.quiescence(b, sc, ply+1, -beta, -alpha)
		b.Unmake()

		if sc.cancelled() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
