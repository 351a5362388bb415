package board

// EmptyUndoStackError marks an internal assertion failure: Unmake was
// called with nothing to undo. It is never returned to a caller; it is
// only ever panicked with, per the "should be treated as an assertion"
// contract.
type EmptyUndoStackError struct{}

func (EmptyUndoStackError) Error() string { return "board: unmake called with empty undo stack" }

// Make applies move m, assumed to have been produced by the move
// generator for the current position (or equivalently validated), and
// pushes an UndoRecord so Unmake can reverse it exactly.
func (b *Board) Make(m Move) {
	us := b.sideToMove
	them := us.Opponent()
	from, to := m.From(), m.To()
	flag := m.Flag()

	moved := b.squares[from]
	captured := None
	capturedSquare := NoSquare

	rec := UndoRecord{
		Move:               m,
		PrevEnPassant:      b.enPassantSquare,
		PrevCastlingRights: b.castlingRights,
		PrevHalfmoveClock:  b.halfmoveClock,
		PrevFullmoveNumber: b.fullmoveNumber,
		PrevZobristHash:    b.zobristHash,
		PrevInCheck:        b.currentInCheck,
		MovedPiece:         moved,
	}

	irreversible := moved.Kind() == Pawn || m.IsCapture()

	// Determine the captured piece and its square before mutating
	// anything, since en passant captures a square other than `to`.
	switch flag {
	case FlagEnPassant:
		capturedSquare = NewSquare(to.File(), from.Rank())
		captured = b.squares[capturedSquare]
	default:
		if !b.squares[to].IsNone() {
			capturedSquare = to
			captured = b.squares[to]
		}
	}
	rec.CapturedPiece = captured
	rec.CapturedSquare = capturedSquare

	if !captured.IsNone() {
		b.remove(captured, capturedSquare)
		b.zobristHash ^= zobristFor(captured, capturedSquare)
	}

	b.remove(moved, from)
	b.zobristHash ^= zobristFor(moved, from)

	placed := moved
	if m.IsPromotion() {
		placed = MakePiece(m.PromotionKind(), us)
	}
	b.place(placed, to)
	b.zobristHash ^= zobristFor(placed, to)

	if flag == FlagKingCastle || flag == FlagQueenCastle {
		rookFrom, rookTo := castleRookSquares(us, flag)
		rook := b.squares[rookFrom]
		b.remove(rook, rookFrom)
		b.zobristHash ^= zobristFor(rook, rookFrom)
		b.place(rook, rookTo)
		b.zobristHash ^= zobristFor(rook, rookTo)
	}

	// Castling rights: cleared whenever the king moves, a rook moves
	// off its home square, or a rook is captured on its home square.
	newRights := b.castlingRights
	if moved.Kind() == King {
		if us == White {
			newRights &^= WhiteKingSide | WhiteQueenSide
		} else {
			newRights &^= BlackKingSide | BlackQueenSide
		}
	}
	newRights = clearCastlingRightForSquare(newRights, from)
	newRights = clearCastlingRightForSquare(newRights, capturedSquare)
	if newRights != b.castlingRights {
		b.zobristHash ^= zobristCastlingKey[b.castlingRights]
		b.zobristHash ^= zobristCastlingKey[newRights]
		b.castlingRights = newRights
	}

	// En passant target: set only after a double pawn push.
	if b.enPassantSquare.Valid() {
		b.zobristHash ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	if flag == FlagDoublePawnPush {
		b.enPassantSquare = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		b.zobristHash ^= zobristEnPassant[b.enPassantSquare.File()]
	} else {
		b.enPassantSquare = NoSquare
	}

	if irreversible {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	if us == Black {
		b.fullmoveNumber++
	}

	b.sideToMove = them
	b.zobristHash ^= zobristSideToMove

	rec.prevRepetitionHistory = append([]uint64(nil), b.repetitionHistory...)
	if irreversible {
		b.repetitionHistory = b.repetitionHistory[:0]
	}
	b.repetitionHistory = append(b.repetitionHistory, b.zobristHash)

	b.undoStack = append(b.undoStack, rec)
}

// Unmake reverses the most recently applied Make call exactly,
// restoring every piece of state including the Zobrist hash.
func (b *Board) Unmake() {
	n := len(b.undoStack)
	if n == 0 {
		panic(EmptyUndoStackError{})
	}
	rec := b.undoStack[n-1]
	b.undoStack = b.undoStack[:n-1]
	b.repetitionHistory = rec.prevRepetitionHistory

	them := b.sideToMove
	us := them.Opponent()
	m := rec.Move
	from, to := m.From(), m.To()

	placed := b.squares[to]
	b.remove(placed, to)
	b.place(rec.MovedPiece, from)

	if m.Flag() == FlagKingCastle || m.Flag() == FlagQueenCastle {
		rookFrom, rookTo := castleRookSquares(us, m.Flag())
		rook := b.squares[rookTo]
		b.remove(rook, rookTo)
		b.place(rook, rookFrom)
	}

	if !rec.CapturedPiece.IsNone() {
		b.place(rec.CapturedPiece, rec.CapturedSquare)
	}

	b.sideToMove = us
	b.enPassantSquare = rec.PrevEnPassant
	b.castlingRights = rec.PrevCastlingRights
	b.halfmoveClock = rec.PrevHalfmoveClock
	b.fullmoveNumber = rec.PrevFullmoveNumber
	b.zobristHash = rec.PrevZobristHash
	b.currentInCheck = rec.PrevInCheck
}

// castleRookSquares returns the rook's origin and destination for a
// castling move by color c.
func castleRookSquares(c Piece, flag uint16) (from, to Square) {
	rank := 0
	if c == Black {
		rank = 7
	}
	if flag == FlagKingCastle {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// clearCastlingRightForSquare drops whichever castling right, if any,
// is anchored on sq (a king or rook home square).
func clearCastlingRightForSquare(cr CastlingRights, sq Square) CastlingRights {
	switch sq {
	case NewSquare(7, 0):
		return cr &^ WhiteKingSide
	case NewSquare(0, 0):
		return cr &^ WhiteQueenSide
	case NewSquare(7, 7):
		return cr &^ BlackKingSide
	case NewSquare(0, 7):
		return cr &^ BlackQueenSide
	default:
		return cr
	}
}
