package board

// LegalMoveInfo is a read-only, per-ply precomputation consulted by the
// move generator to turn pseudo-legal generation into legal generation
// without a make/unmake round trip per candidate move.
type LegalMoveInfo struct {
	// AttackedByEnemy is every square the enemy attacks, computed with
	// the friendly king removed from occupancy so sliding attacks see
	// through it (the king may not step along a ray it is blocking).
	AttackedByEnemy Bitboard

	Checkers     [2]Square
	CheckerCount int

	// CheckEvasionMask is the set of squares a non-king move may target
	// to resolve check: capture-or-block for a single checker, the
	// universal set for no checkers, empty for double check.
	CheckEvasionMask Bitboard

	// Pinned is the bitboard of friendly pieces pinned to the king.
	Pinned Bitboard
	// PinRay[sq] is the legal destination set for the pinned piece on
	// sq (the king-to-pinner line, pinner included). Only meaningful
	// when sq is set in Pinned.
	PinRay [64]Bitboard
}

// ComputeLegalMoveInfo runs the check/pin precomputation pass for the
// side to move.
func ComputeLegalMoveInfo(b *Board) LegalMoveInfo {
	var info LegalMoveInfo
	info.CheckEvasionMask = Universe

	us := b.sideToMove
	them := us.Opponent()
	kingSq := b.KingSquare(us)

	// Occupancy with the friendly king removed, for the x-ray attack
	// computation used to keep the king off rays it currently blocks.
	occNoKing := b.allOccupied &^ SquareBB(kingSq)

	info.CheckerCount = 0
	info.Checkers[0], info.Checkers[1] = NoSquare, NoSquare

	addChecker := func(sq Square, contribution Bitboard) {
		if info.CheckerCount == 0 {
			info.CheckEvasionMask = contribution
		} else if info.CheckerCount == 1 {
			info.CheckEvasionMask &= contribution
		}
		if info.CheckerCount < 2 {
			info.Checkers[info.CheckerCount] = sq
		}
		info.CheckerCount++
	}

	enemyPawns := b.PieceBitboard(them, Pawn)
	for bb := enemyPawns; bb != 0; {
		sq := bb.PopLSB()
		attacks := PawnAttacks(them, sq)
		info.AttackedByEnemy |= attacks
		if attacks.IsSet(kingSq) {
			addChecker(sq, SquareBB(sq))
		}
	}

	enemyKnights := b.PieceBitboard(them, Knight)
	for bb := enemyKnights; bb != 0; {
		sq := bb.PopLSB()
		attacks := KnightAttacks(sq)
		info.AttackedByEnemy |= attacks
		if attacks.IsSet(kingSq) {
			addChecker(sq, SquareBB(sq))
		}
	}

	for _, kind := range [3]Piece{Bishop, Rook, Queen} {
		for bb := b.PieceBitboard(them, kind); bb != 0; {
			sq := bb.PopLSB()
			var attacks Bitboard
			switch kind {
			case Bishop:
				attacks = BishopAttacks(sq, occNoKing)
			case Rook:
				attacks = RookAttacks(sq, occNoKing)
			default:
				attacks = QueenAttacks(sq, occNoKing)
			}
			info.AttackedByEnemy |= attacks
			if attacks.IsSet(kingSq) {
				addChecker(sq, between[sq][kingSq]|SquareBB(sq))
			}
		}
	}

	enemyKingSq := b.KingSquare(them)
	info.AttackedByEnemy |= KingAttacks(enemyKingSq)

	if info.CheckerCount >= 2 {
		info.CheckEvasionMask = Empty
	}

	b.currentInCheck = info.CheckerCount >= 1

	// Pin detection: walk each of the eight directions from the king.
	friendly := b.Occupied(us)
	enemy := b.Occupied(them)
	for _, dir := range AllDirections {
		var candidate Square = NoSquare
		cur := int(kingSq)
		for step := 1; step <= squaresToEdge[kingSq][dir]; step++ {
			cur += dir.Offset()
			sq := Square(cur)
			if friendly.IsSet(sq) {
				if candidate != NoSquare {
					break // a second friendly piece blocks any pin
				}
				candidate = sq
				continue
			}
			if enemy.IsSet(sq) {
				if candidate == NoSquare {
					break // no friendly piece to pin; enemy piece just attacks/blocks
				}
				kind := b.PieceAt(sq).Kind()
				compatible := (!dir.IsDiagonal() && (kind == Rook || kind == Queen)) ||
					(dir.IsDiagonal() && (kind == Bishop || kind == Queen))
				if compatible {
					info.Pinned |= SquareBB(candidate)
					info.PinRay[candidate] = between[kingSq][sq] | SquareBB(sq)
				}
				break
			}
		}
	}

	return info
}

// Opponent returns the opposite color for a Piece carrying only a color
// bit (White or Black), complementing Piece.Color()'s masking.
func (p Piece) Opponent() Piece {
	if p == White {
		return Black
	}
	return White
}
