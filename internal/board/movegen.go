package board

// GeneratePseudo produces every move ignoring king safety.
func GeneratePseudo(b *Board) MoveList {
	var list MoveList
	us := b.sideToMove
	generatePawnMoves(b, us, &list, false)
	generateKnightMoves(b, us, &list, false)
	generateSlidingMoves(b, us, Bishop, &list, false)
	generateSlidingMoves(b, us, Rook, &list, false)
	generateSlidingMoves(b, us, Queen, &list, false)
	generateKingMoves(b, us, &list, nil, false)
	return list
}

// GenerateLegal produces only legal moves for the side to move. When
// capturesOnly is true (quiescence search) only captures, en-passant
// captures, and capture-promotions are returned.
func GenerateLegal(b *Board, capturesOnly bool) MoveList {
	info := ComputeLegalMoveInfo(b)

	var pseudo MoveList
	us := b.sideToMove
	generateKingMoves(b, us, &pseudo, &info, capturesOnly)
	if info.CheckerCount < 2 {
		generatePawnMoves(b, us, &pseudo, capturesOnly)
		generateKnightMoves(b, us, &pseudo, capturesOnly)
		generateSlidingMoves(b, us, Bishop, &pseudo, capturesOnly)
		generateSlidingMoves(b, us, Rook, &pseudo, capturesOnly)
		generateSlidingMoves(b, us, Queen, &pseudo, capturesOnly)
	}

	var legal MoveList
	kingSq := b.KingSquare(us)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		from := m.From()

		if from == kingSq {
			// King moves were already filtered against AttackedByEnemy
			// (and, for castling, against the intervening squares) at
			// generation time.
			legal.Add(m)
			continue
		}

		if info.Pinned.IsSet(from) && !info.PinRay[from].IsSet(m.To()) {
			continue
		}

		if info.CheckerCount == 1 {
			target := m.To()
			if m.IsEnPassant() {
				target = NewSquare(m.To().File(), from.Rank())
			}
			if !info.CheckEvasionMask.IsSet(target) {
				continue
			}
		}

		if m.IsEnPassant() && !enPassantDiscoveredCheckSafe(b, m) {
			continue
		}

		legal.Add(m)
	}

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		b.Make(m)
		checking := b.currentInCheckNaive(us.Opponent())
		b.Unmake()
		m.IsCheckMove = checking
		legal.Set(i, m)
	}

	return legal
}

// currentInCheckNaive reports whether color c's king is attacked, used
// only to tag moves with IsCheckMove for move ordering after a
// speculative make/unmake.
func (b *Board) currentInCheckNaive(c Piece) bool {
	kingSq := b.KingSquare(c)
	them := c.Opponent()
	occ := b.allOccupied
	// A them-colored pawn attacks kingSq iff kingSq lies on a c-colored
	// pawn's attack pattern from the pawn's square, so the attacker set
	// is PawnAttacks(c, kingSq) intersected with them's pawns.
	if PawnAttacks(c, kingSq)&b.PieceBitboard(them, Pawn) != 0 {
		return true
	}
	if KnightAttacks(kingSq)&b.PieceBitboard(them, Knight) != 0 {
		return true
	}
	if KingAttacks(kingSq)&b.PieceBitboard(them, King) != 0 {
		return true
	}
	if BishopAttacks(kingSq, occ)&(b.PieceBitboard(them, Bishop)|b.PieceBitboard(them, Queen)) != 0 {
		return true
	}
	if RookAttacks(kingSq, occ)&(b.PieceBitboard(them, Rook)|b.PieceBitboard(them, Queen)) != 0 {
		return true
	}
	return false
}

func generateKnightMoves(b *Board, us Piece, list *MoveList, capturesOnly bool) {
	own := b.Occupied(us)
	enemy := b.Occupied(us.Opponent())
	for bb := b.PieceBitboard(us, Knight); bb != 0; {
		from := bb.PopLSB()
		targets := KnightAttacks(from) &^ own
		for t := targets; t != 0; {
			to := t.PopLSB()
			if enemy.IsSet(to) {
				list.Add(NewMove(from, to, FlagCapture))
			} else if !capturesOnly {
				list.Add(NewMove(from, to, FlagQuiet))
			}
		}
	}
}

func generateSlidingMoves(b *Board, us, kind Piece, list *MoveList, capturesOnly bool) {
	own := b.Occupied(us)
	enemy := b.Occupied(us.Opponent())
	occ := b.allOccupied
	for bb := b.PieceBitboard(us, kind); bb != 0; {
		from := bb.PopLSB()
		var targets Bitboard
		switch kind {
		case Bishop:
			targets = BishopAttacks(from, occ)
		case Rook:
			targets = RookAttacks(from, occ)
		default:
			targets = QueenAttacks(from, occ)
		}
		targets &^= own
		for t := targets; t != 0; {
			to := t.PopLSB()
			if enemy.IsSet(to) {
				list.Add(NewMove(from, to, FlagCapture))
			} else if !capturesOnly {
				list.Add(NewMove(from, to, FlagQuiet))
			}
		}
	}
}

var promoFlags = [4]uint16{FlagPromoteKnight, FlagPromoteBishop, FlagPromoteRook, FlagPromoteQueen}
var promoCaptureFlags = [4]uint16{FlagPromoteKnightCapture, FlagPromoteBishopCapture, FlagPromoteRookCapture, FlagPromoteQueenCapture}

func generatePawnMoves(b *Board, us Piece, list *MoveList, capturesOnly bool) {
	them := us.Opponent()
	enemy := b.Occupied(them)
	occ := b.allOccupied

	forward := 1
	startRank, promoRank := 1, 7
	if us == Black {
		forward = -1
		startRank, promoRank = 6, 0
	}

	for bb := b.PieceBitboard(us, Pawn); bb != 0; {
		from := bb.PopLSB()
		file, rank := from.File(), from.Rank()

		if !capturesOnly {
			oneStep := NewSquare(file, rank+forward)
			if rank+forward >= 0 && rank+forward <= 7 && !occ.IsSet(oneStep) {
				if oneStep.Rank() == promoRank {
					for _, f := range promoFlags {
						list.Add(NewMove(from, oneStep, f))
					}
				} else {
					list.Add(NewMove(from, oneStep, FlagQuiet))
					if rank == startRank {
						twoStep := NewSquare(file, rank+2*forward)
						if !occ.IsSet(twoStep) {
							list.Add(NewMove(from, twoStep, FlagDoublePawnPush))
						}
					}
				}
			}
		}

		attacks := PawnAttacks(us, from)
		for t := attacks; t != 0; {
			to := t.PopLSB()
			if enemy.IsSet(to) {
				if to.Rank() == promoRank {
					for _, f := range promoCaptureFlags {
						list.Add(NewMove(from, to, f))
					}
				} else {
					list.Add(NewMove(from, to, FlagCapture))
				}
			} else if to == b.enPassantSquare && b.enPassantSquare.Valid() {
				list.Add(NewMove(from, to, FlagEnPassant))
			}
		}
	}
}

func generateKingMoves(b *Board, us Piece, list *MoveList, info *LegalMoveInfo, capturesOnly bool) {
	from := b.KingSquare(us)
	own := b.Occupied(us)
	enemy := b.Occupied(us.Opponent())
	targets := KingAttacks(from) &^ own

	for t := targets; t != 0; {
		to := t.PopLSB()
		if info != nil && info.AttackedByEnemy.IsSet(to) {
			continue
		}
		if enemy.IsSet(to) {
			list.Add(NewMove(from, to, FlagCapture))
		} else if !capturesOnly {
			list.Add(NewMove(from, to, FlagQuiet))
		}
	}

	if capturesOnly || (info != nil && info.CheckerCount != 0) {
		return
	}

	// Without legal-move info (pseudo-legal generation) castling only
	// needs the right and empty squares; attacked squares are ignored.
	var attacked Bitboard
	if info != nil {
		attacked = info.AttackedByEnemy
	}

	rank := 0
	if us == Black {
		rank = 7
	}
	occ := b.allOccupied

	kingSideRight, queenSideRight := WhiteKingSide, WhiteQueenSide
	if us == Black {
		kingSideRight, queenSideRight = BlackKingSide, BlackQueenSide
	}

	if b.castlingRights&kingSideRight != 0 {
		passThrough := NewSquare(5, rank)
		dest := NewSquare(6, rank)
		if !occ.IsSet(passThrough) && !occ.IsSet(dest) &&
			!attacked.IsSet(passThrough) && !attacked.IsSet(dest) {
			list.Add(NewMove(from, dest, FlagKingCastle))
		}
	}
	if b.castlingRights&queenSideRight != 0 {
		passThrough := NewSquare(3, rank)
		dest := NewSquare(2, rank)
		knightSq := NewSquare(1, rank)
		if !occ.IsSet(passThrough) && !occ.IsSet(dest) && !occ.IsSet(knightSq) &&
			!attacked.IsSet(passThrough) && !attacked.IsSet(dest) {
			list.Add(NewMove(from, dest, FlagQueenCastle))
		}
	}
}

// enPassantDiscoveredCheckSafe simulates removing both the capturing
// pawn and the captured pawn, then checks whether any enemy slider now
// attacks the friendly king along a rank, file, or diagonal through
// it — the one case the pin/check precomputation above cannot catch,
// since it only tracks a single blocker per ray.
func enPassantDiscoveredCheckSafe(b *Board, m Move) bool {
	us := b.sideToMove
	them := us.Opponent()
	from := m.From()
	capturedSq := NewSquare(m.To().File(), from.Rank())

	occ := b.allOccupied
	occ &^= SquareBB(from)
	occ &^= SquareBB(capturedSq)
	occ |= SquareBB(m.To())

	kingSq := b.KingSquare(us)
	enemyBishopsQueens := b.PieceBitboard(them, Bishop) | b.PieceBitboard(them, Queen)
	if BishopAttacks(kingSq, occ)&enemyBishopsQueens != 0 {
		return false
	}
	enemyRooksQueens := b.PieceBitboard(them, Rook) | b.PieceBitboard(them, Queen)
	if RookAttacks(kingSq, occ)&enemyRooksQueens != 0 {
		return false
	}
	return true
}
