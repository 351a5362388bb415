package board

// CastlingRights is a 4-bit mask: bit 0 white king-side, bit 1 white
// queen-side, bit 2 black king-side, bit 3 black queen-side.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// pieceList is a fixed-capacity, append/swap-remove list of occupied
// squares for one (color, kind) bucket. 10 is enough headroom for any
// legally reachable position (promotions notwithstanding perft fuzz,
// which never exceeds single digits of extra material in practice);
// Board additionally keeps a parallel bitboard so popcount/membership
// never need to scan this list.
type pieceList struct {
	squares [10]Square
	n       int
}

func (l *pieceList) add(sq Square) {
	l.squares[l.n] = sq
	l.n++
}

func (l *pieceList) remove(sq Square) {
	for i := 0; i < l.n; i++ {
		if l.squares[i] == sq {
			l.n--
			l.squares[i] = l.squares[l.n]
			return
		}
	}
}

func (l *pieceList) len() int { return l.n }

// UndoRecord carries everything needed to reverse exactly one Make call.
type UndoRecord struct {
	Move                  Move
	PrevEnPassant         Square
	PrevCastlingRights    CastlingRights
	PrevHalfmoveClock     int
	PrevFullmoveNumber    int
	PrevZobristHash       uint64
	PrevInCheck           bool
	MovedPiece            Piece // pre-promotion piece
	CapturedPiece         Piece // None if no capture
	CapturedSquare        Square
	prevRepetitionHistory []uint64
}

// Board is a mailbox-plus-bitboards chess position with full
// incremental make/unmake support.
type Board struct {
	squares [64]Piece

	// pieces[colorIndex][kindIndex] is the occupied-square list;
	// bitboards[colorIndex][kindIndex] is the matching bitboard. The two
	// are always mutually consistent with squares.
	pieces    [2][6]pieceList
	bitboards [2][6]Bitboard

	occupied    [2]Bitboard
	allOccupied Bitboard

	sideToMove       Piece // White or Black
	castlingRights   CastlingRights
	enPassantSquare  Square
	halfmoveClock    int
	fullmoveNumber   int
	currentInCheck   bool
	zobristHash      uint64

	undoStack []UndoRecord

	// repetitionHistory holds the Zobrist hash reached at every ply
	// since the last irreversible move (pawn move or capture), for
	// threefold detection.
	repetitionHistory []uint64
}

// StartFEN is the FEN of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoard returns a Board set to the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	if err := b.SetupWithFEN(StartFEN); err != nil {
		panic("board: starting FEN must always parse: " + err.Error())
	}
	return b
}

// SideToMove returns White or Black.
func (b *Board) SideToMove() Piece { return b.sideToMove }

// CastlingRights returns the current castling rights mask.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target, or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// HalfmoveClock returns plies since the last pawn move or capture.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the 1-based full move counter.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// ZobristHash returns the incrementally maintained Zobrist hash.
func (b *Board) ZobristHash() uint64 { return b.zobristHash }

// InCheck reports whether the side to move is in check, as cached by
// the most recent legal-move-info pass.
func (b *Board) InCheck() bool { return b.currentInCheck }

// PieceAt returns the piece occupying sq, or None.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// Occupied returns the bitboard of every square occupied by c (White or
// Black).
func (b *Board) Occupied(c Piece) Bitboard { return b.occupied[ColorIndex(c)] }

// AllOccupied returns the bitboard of every occupied square.
func (b *Board) AllOccupied() Bitboard { return b.allOccupied }

// PieceBitboard returns the bitboard of color c's pieces of kind k.
func (b *Board) PieceBitboard(c, k Piece) Bitboard { return b.bitboards[ColorIndex(c)][KindIndex(k)] }

// KingSquare returns the square of color c's king.
func (b *Board) KingSquare(c Piece) Square {
	list := &b.pieces[ColorIndex(c)][KindIndex(King)]
	return list.squares[0]
}

// UndoDepth returns how many Make calls are currently pending Unmake.
func (b *Board) UndoDepth() int { return len(b.undoStack) }

// RepetitionCount returns how many times the current Zobrist hash has
// occurred in the repetition history (including the current position).
func (b *Board) RepetitionCount() int {
	count := 0
	for _, h := range b.repetitionHistory {
		if h == b.zobristHash {
			count++
		}
	}
	return count
}

// clear resets the board to the all-empty zero state.
func (b *Board) clear() {
	for i := range b.squares {
		b.squares[i] = None
	}
	b.pieces = [2][6]pieceList{}
	b.bitboards = [2][6]Bitboard{}
	b.occupied = [2]Bitboard{}
	b.allOccupied = 0
	b.sideToMove = White
	b.castlingRights = NoCastling
	b.enPassantSquare = NoSquare
	b.halfmoveClock = 0
	b.fullmoveNumber = 1
	b.currentInCheck = false
	b.zobristHash = 0
	b.undoStack = b.undoStack[:0]
	b.repetitionHistory = b.repetitionHistory[:0]
}

// place puts piece p on sq, keeping squares/lists/bitboards consistent.
// It does not touch the Zobrist hash; callers XOR that separately.
func (b *Board) place(p Piece, sq Square) {
	b.squares[sq] = p
	ci, ki := ColorIndex(p.Color()), KindIndex(p.Kind())
	b.pieces[ci][ki].add(sq)
	bb := SquareBB(sq)
	b.bitboards[ci][ki] |= bb
	b.occupied[ci] |= bb
	b.allOccupied |= bb
}

// remove takes piece p off sq, keeping squares/lists/bitboards
// consistent. It does not touch the Zobrist hash.
func (b *Board) remove(p Piece, sq Square) {
	b.squares[sq] = None
	ci, ki := ColorIndex(p.Color()), KindIndex(p.Kind())
	b.pieces[ci][ki].remove(sq)
	bb := SquareBB(sq)
	b.bitboards[ci][ki] &^= bb
	b.occupied[ci] &^= bb
	b.allOccupied &^= bb
}

// computeHashFromScratch recomputes the Zobrist hash from current
// board state, ignoring the incrementally maintained one. Used to
// validate incremental updates in tests.
func (b *Board) computeHashFromScratch() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if !p.IsNone() {
			h ^= zobristFor(p, sq)
		}
	}
	h ^= zobristCastlingKey[b.castlingRights]
	if b.enPassantSquare.Valid() {
		h ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	if b.sideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}

// String renders an ASCII board for debugging (the UCI "d" command).
func (b *Board) String() string {
	out := make([]byte, 0, 200)
	for rank := 7; rank >= 0; rank-- {
		out = append(out, byte('1'+rank), ' ')
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			c := p.Char()
			if c == ' ' {
				c = '.'
			}
			out = append(out, c, ' ')
		}
		out = append(out, '\n')
	}
	out = append(out, "  a b c d e f g h\n"...)
	return string(out)
}
