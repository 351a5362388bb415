package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/board"
)

func TestIterativeDeepeningFindsAMoveFromStartPosition(t *testing.T) {
	b := board.NewBoard()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	sc := NewSearchContext(0)

	result := s.IterativeDeepening(b, sc, 3, nil)

	require.False(t, result.Cancelled)
	assert.NotEqual(t, board.NoMove, result.BestMove)
	assert.True(t, result.Depth >= 1)
}

func TestIterativeDeepeningDetectsBackRankCheckmate(t *testing.T) {
	b := board.NewBoard()
	require.NoError(t, b.SetupWithFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1"))

	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	sc := NewSearchContext(0)

	result := s.IterativeDeepening(b, sc, 1, nil)

	assert.Equal(t, board.NoMove, result.BestMove)
	assert.Equal(t, -MateScore, result.Score)
}

func TestIterativeDeepeningDetectsStalemate(t *testing.T) {
	b := board.NewBoard()
	// The textbook stalemate: Black's king on a8 has no legal move, and
	// is not in check.
	require.NoError(t, b.SetupWithFEN("k7/P7/1K6/8/8/8/8/8 b - - 0 1"))

	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	sc := NewSearchContext(0)

	result := s.IterativeDeepening(b, sc, 1, nil)

	assert.Equal(t, board.NoMove, result.BestMove)
	assert.Equal(t, 0, result.Score)
}

func TestSearchContextCancellationStopsEarly(t *testing.T) {
	b := board.NewBoard()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	sc := NewSearchContext(0)
	sc.Stop()

	result := s.IterativeDeepening(b, sc, 10, nil)
	assert.True(t, result.Cancelled)
}

func TestPVMoveIsAlwaysLegal(t *testing.T) {
	b := board.NewBoard()
	tt := NewTranspositionTable(1)
	s := NewSearcher(tt)
	sc := NewSearchContext(0)

	result := s.IterativeDeepening(b, sc, 3, nil)
	require.NotEqual(t, board.NoMove, result.BestMove)

	legal := board.GenerateLegal(b, false)
	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == result.BestMove {
			found = true
			break
		}
	}
	assert.True(t, found, "search returned a move not in the legal move list: %v", result.BestMove)
}
