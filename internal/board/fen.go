package board

import (
	"strconv"
	"strings"
)

// SetupWithFEN parses the six-field FEN form and rebuilds every piece
// of derived state (mailbox, lists, bitboards, hash) from scratch. On
// failure it returns a typed error and leaves b unmodified.
func (b *Board) SetupWithFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return InvalidFENError{FEN: fen, Reason: "need at least 4 space-separated fields"}
	}

	var next Board
	next.clear()

	if err := parsePlacement(&next, fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		next.sideToMove = White
	case "b":
		next.sideToMove = Black
	default:
		return InvalidFENError{FEN: fen, Reason: "side to move must be 'w' or 'b'"}
	}

	rights, err := parseCastlingRights(fields[2])
	if err != nil {
		return InvalidFENError{FEN: fen, Reason: err.Error()}
	}
	next.castlingRights = rights

	if len(fields) > 3 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil || (sq.Rank() != 2 && sq.Rank() != 5) {
			return InvalidFENError{FEN: fen, Reason: "en-passant target must be on rank 3 or rank 6"}
		}
		next.enPassantSquare = sq
	} else {
		next.enPassantSquare = NoSquare
	}

	next.halfmoveClock = 0
	if len(fields) > 4 {
		hc, err := strconv.Atoi(fields[4])
		if err != nil || hc < 0 {
			return InvalidFENError{FEN: fen, Reason: "halfmove clock must be a non-negative integer"}
		}
		next.halfmoveClock = hc
	}

	next.fullmoveNumber = 1
	if len(fields) > 5 {
		fn, err := strconv.Atoi(fields[5])
		if err != nil || fn < 1 {
			return InvalidFENError{FEN: fen, Reason: "fullmove number must be a positive integer"}
		}
		next.fullmoveNumber = fn
	}

	if next.pieces[ColorIndex(White)][KindIndex(King)].len() != 1 ||
		next.pieces[ColorIndex(Black)][KindIndex(King)].len() != 1 {
		return InvalidFENError{FEN: fen, Reason: "position must have exactly one king per side"}
	}

	next.zobristHash = next.computeHashFromScratch()
	next.repetitionHistory = append(next.repetitionHistory, next.zobristHash)

	*b = next
	return nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return InvalidFENError{FEN: placement, Reason: "piece placement needs exactly 8 ranks"}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range []byte(rankStr) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return InvalidFENError{FEN: placement, Reason: "rank overflows 8 files"}
			}
			p, err := CharToPiece(c)
			if err != nil {
				return err
			}
			b.place(p, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return InvalidFENError{FEN: placement, Reason: "rank does not sum to 8 files"}
		}
	}
	return nil
}

func parseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for _, c := range []byte(s) {
		switch c {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		default:
			return 0, InvalidFENError{FEN: s, Reason: "castling rights must be a permutation of KQkq or '-'"}
		}
	}
	return cr, nil
}

// WriteFEN renders b back into the six-field FEN form.
func (b *Board) WriteFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))

	return sb.String()
}
