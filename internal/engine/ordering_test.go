package engine

import (
	"testing"

	"github.com/corvidchess/corvid/internal/board"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	b := board.NewBoard()
	moves := board.GenerateLegal(b, false)
	ttMove := moves.Get(moves.Len() - 1)

	orderMoves(b, &moves, ttMove)

	if moves.Get(0) != ttMove {
		t.Errorf("expected TT move %v first, got %v", ttMove, moves.Get(0))
	}
}

func TestOrderMovesRanksCapturesByMVVLVA(t *testing.T) {
	b := board.NewBoard()
	// A position where a pawn and a knight can each capture the queen.
	if err := b.SetupWithFEN("4k3/8/8/3q4/4P3/2N5/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}

	moves := board.GenerateLegal(b, false)
	orderMoves(b, &moves, board.Invalid)

	best := moves.Get(0)
	if !best.IsCapture() {
		t.Fatalf("expected a capture to be ordered first, got %v", best)
	}
	// The pawn capture (lower-value attacker on a higher-value victim)
	// must outrank the knight capture of the same victim.
	mover := b.PieceAt(best.From()).Kind()
	if mover != board.Pawn {
		t.Errorf("expected the pawn's dxQ capture to be ranked first by MVV-LVA, got mover kind %v capturing from %v", mover, best.From())
	}
}
