// Package engine implements iterative-deepening alpha-beta search,
// quiescence, transposition-table probing, and the UCI-facing command
// controller built on top of the board package.
package engine

import "github.com/corvidchess/corvid/internal/board"

// centralizationMax is the per-kind scale (in centipawns) of the
// centralization bonus for a knight, bishop, or pawn: the bonus is
// (7 - Manhattan distance from the board center) / 7 times this value,
// so a piece on one of the four center squares (distance 1) receives
// 6/7 of it, before the game-phase weight is applied.
var centralizationMax = map[board.Piece]float64{
	board.Knight: 12,
	board.Bishop: 10,
	board.Pawn:   4,
}

// Evaluate returns a static score in centipawns from the side-to-move's
// perspective: material, plus centralization of minor pieces and
// pawns weighted by game phase, plus an endgame king-activity bonus.
func Evaluate(b *board.Board) int {
	white := evalSide(b, board.White)
	black := evalSide(b, board.Black)

	whiteMaterial, blackMaterial := materialOf(b, board.White), materialOf(b, board.Black)
	white += endgameKingDriveBonus(b, board.White, whiteMaterial, blackMaterial)
	black += endgameKingDriveBonus(b, board.Black, blackMaterial, whiteMaterial)

	score := white - black
	if b.SideToMove() == board.Black {
		score = -score
	}
	return score
}

func materialOf(b *board.Board, c board.Piece) int {
	m := 0
	for _, kind := range board.Kinds {
		if kind == board.King {
			continue
		}
		m += b.PieceBitboard(c, kind).PopCount() * board.MakePiece(kind, c).Value()
	}
	return m
}

func evalSide(b *board.Board, c board.Piece) int {
	material := materialOf(b, c)

	opening := gamePhaseOpeningWeight(b)
	late := 1 - opening
	knightWeight := 0.3*opening + 1.0*late
	bishopWeight := 0.2*opening + 0.8*late
	pawnWeight := 0.2 * opening

	central := 0.0
	central += centralization(b, c, board.Knight) * knightWeight
	central += centralization(b, c, board.Bishop) * bishopWeight
	central += centralization(b, c, board.Pawn) * pawnWeight

	return material + int(central)
}

// gamePhaseOpeningWeight is 1 - fullmove/50 (0.98 at move 1), linearly
// falling to 0 by move 50 and staying there after.
func gamePhaseOpeningWeight(b *board.Board) float64 {
	w := 1 - float64(b.FullmoveNumber())/50
	if w < 0 {
		return 0
	}
	return w
}

func centralization(b *board.Board, c, kind board.Piece) float64 {
	max := centralizationMax[kind]
	total := 0.0
	for bb := b.PieceBitboard(c, kind); bb != 0; {
		sq := bb.PopLSB()
		dist := manhattanFromCenter(sq)
		total += (7 - dist) / 7 * max
	}
	return total
}

// manhattanFromCenter returns the Manhattan distance from sq to the
// board center (3.5, 3.5), computed in float64 so the half-integer
// center needs no special handling.
func manhattanFromCenter(sq board.Square) float64 {
	file, rank := float64(sq.File()), float64(sq.Rank())
	return abs(file-3.5) + abs(rank-3.5)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// endgameKingDriveBonus rewards driving the enemy king toward the edge
// and toward the friendly king once material is low enough (or queens
// are off the board and material is moderately low), scaled down as
// the position gets further from a clean endgame.
func endgameKingDriveBonus(b *board.Board, us board.Piece, usMaterial, themMaterial int) int {
	total := usMaterial + themMaterial
	endgameFactor := float64(total) / 7800
	noQueens := b.PieceBitboard(board.White, board.Queen) == 0 && b.PieceBitboard(board.Black, board.Queen) == 0

	inEndgame := endgameFactor < 0.5 || (noQueens && endgameFactor < 0.7)
	if !inEndgame {
		return 0
	}
	if usMaterial <= themMaterial {
		return 0
	}

	them := us.Opponent()
	themKing := b.KingSquare(them)
	usKing := b.KingSquare(us)

	themKingCenterDist := chebyshevFromCenter(themKing)
	kingToKingDist := chebyshevDistance(usKing, themKing)

	bonus := 10 * (themKingCenterDist + (14 - kingToKingDist)) * (1 - endgameFactor)
	return int(bonus)
}

func chebyshevFromCenter(sq board.Square) float64 {
	file, rank := float64(sq.File()), float64(sq.Rank())
	df, dr := abs(file-3.5), abs(rank-3.5)
	if df > dr {
		return df
	}
	return dr
}

func chebyshevDistance(a, b board.Square) float64 {
	df := abs(float64(a.File()) - float64(b.File()))
	dr := abs(float64(a.Rank()) - float64(b.Rank()))
	if df > dr {
		return df
	}
	return dr
}
