package engine

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
)

func TestEvaluateStartPositionIsSymmetric(t *testing.T) {
	b := board.NewBoard()
	if got := Evaluate(b); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0 (symmetric material and centralization)", got)
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := board.NewBoard()
	// White is up a queen.
	if err := b.SetupWithFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1"); err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}
	if got := Evaluate(b); got <= 0 {
		t.Errorf("Evaluate = %d, want a positive score for the side to move with a material edge", got)
	}
}

func TestEvaluateFlipsSignWithSideToMove(t *testing.T) {
	white := board.NewBoard()
	if err := white.SetupWithFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1"); err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}
	black := board.NewBoard()
	if err := black.SetupWithFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1"); err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}

	if Evaluate(white) != -Evaluate(black) {
		t.Errorf("Evaluate should negate when only side to move changes: white=%d black=%d", Evaluate(white), Evaluate(black))
	}
}
