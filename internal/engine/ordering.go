package engine

import (
	"sort"

	"github.com/corvidchess/corvid/internal/board"
)

// orderMoves scores and sorts moves descending by:
//   - +50 for a checking move
//   - MVV/LVA for captures: 10*value(captured) - value(mover)
//   - +value(promoted kind) for promotions
//   - the TT's refutation move, promoted to the front when present
type scoredMove struct {
	move  board.Move
	score int
}

func orderMoves(b *board.Board, list *board.MoveList, ttMove board.Move) {
	moves := list.Slice()
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: scoreMove(b, m, ttMove)}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for i, sm := range scored {
		list.Set(i, sm.move)
	}
}

func scoreMove(b *board.Board, m board.Move, ttMove board.Move) int {
	if m == ttMove {
		return 1 << 20
	}

	score := 0
	if m.IsCheckMove {
		score += 50
	}

	if m.IsCapture() {
		mover := b.PieceAt(m.From()).Kind()
		var captured board.Piece
		if m.IsEnPassant() {
			captured = board.Pawn
		} else {
			captured = b.PieceAt(m.To()).Kind()
		}
		score += 10*captured.Value() - mover.Value()
	}

	if m.IsPromotion() {
		score += m.PromotionKind().Value()
	}

	return score
}
