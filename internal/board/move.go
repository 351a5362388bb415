package board

// Move flags, packed into the low four bits of a Move.
const (
	FlagQuiet uint16 = iota
	FlagDoublePawnPush
	FlagKingCastle
	FlagQueenCastle
	FlagCapture
	FlagEnPassant
	FlagPromoteKnight
	FlagPromoteBishop
	FlagPromoteRook
	FlagPromoteQueen
	FlagPromoteKnightCapture
	FlagPromoteBishopCapture
	FlagPromoteRookCapture
	FlagPromoteQueenCapture
)

const (
	flagMask = 0x000F
	toShift  = 4
	toMask   = 0x03F0
	fromShift = 10
)

// Move packs a from-square, a to-square and a flag into 16 bits:
// bits 10..15 from, bits 4..9 to, bits 0..3 flag.
//
//	from(6) | to(6) | flag(4)
type Move struct {
	bits        uint16
	IsCheckMove bool
}

// invalidBits is the reserved sentinel bit pattern behind Invalid.
const invalidBits uint16 = 0xFFFF

// Invalid is the zero-value-free invalid move.
var Invalid = Move{bits: invalidBits}

// NoMove is the null move printed when no legal move exists ("0000").
var NoMove = Move{bits: 0, IsCheckMove: false}

// NewMove builds a move from its three packed fields.
func NewMove(from, to Square, flag uint16) Move {
	return Move{bits: uint16(from)<<fromShift | uint16(to)<<toShift | (flag & flagMask)}
}

// From returns the origin square.
func (m Move) From() Square { return Square((m.bits >> fromShift) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m.bits >> toShift) & 0x3F) }

// Flag returns the packed move flag.
func (m Move) Flag() uint16 { return m.bits & flagMask }

// IsValid reports whether m is not the reserved invalid sentinel.
func (m Move) IsValid() bool { return m.bits != invalidBits }

// IsNull reports whether m is the null/no-move sentinel ("0000").
func (m Move) IsNull() bool { return m.bits == 0 }

// IsCapture reports whether m captures a piece (including en passant and
// capture-promotions).
func (m Move) IsCapture() bool {
	switch m.Flag() {
	case FlagCapture, FlagEnPassant,
		FlagPromoteKnightCapture, FlagPromoteBishopCapture, FlagPromoteRookCapture, FlagPromoteQueenCapture:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.Flag() {
	case FlagPromoteKnight, FlagPromoteBishop, FlagPromoteRook, FlagPromoteQueen,
		FlagPromoteKnightCapture, FlagPromoteBishopCapture, FlagPromoteRookCapture, FlagPromoteQueenCapture:
		return true
	default:
		return false
	}
}

// IsCastle reports whether m is a king-side or queen-side castle.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagKingCastle || f == FlagQueenCastle
}

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsDoublePawnPush reports whether m is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool { return m.Flag() == FlagDoublePawnPush }

// PromotionKind extracts the promoted-to piece kind from m's flag. The
// result is meaningless unless IsPromotion reports true.
func (m Move) PromotionKind() Piece {
	switch m.Flag() {
	case FlagPromoteKnight, FlagPromoteKnightCapture:
		return Knight
	case FlagPromoteBishop, FlagPromoteBishopCapture:
		return Bishop
	case FlagPromoteRook, FlagPromoteRookCapture:
		return Rook
	default:
		return Queen
	}
}

// String returns the UCI representation of m, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() || !m.IsValid() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.PromotionKind().Char())
	}
	return s
}

// MoveList is a bounded sequence of moves; 256 comfortably exceeds the
// maximum legal move count of any reachable chess position.
type MoveList struct {
	moves [256]Move
	n     int
}

// Len returns the number of moves currently stored.
func (l *MoveList) Len() int { return l.n }

// Get returns the move at index i.
func (l *MoveList) Get(i int) Move { return l.moves[i] }

// Set overwrites the move at index i, used by move-ordering sorts.
func (l *MoveList) Set(i int, m Move) { l.moves[i] = m }

// Add appends a move to the list.
func (l *MoveList) Add(m Move) {
	l.moves[l.n] = m
	l.n++
}

// Reset empties the list for reuse.
func (l *MoveList) Reset() { l.n = 0 }

// Slice returns the stored moves as a plain slice, for iteration and
// sorting convenience.
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }
