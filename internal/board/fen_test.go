package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}

	for _, fen := range fens {
		b := NewBoard()
		if err := b.SetupWithFEN(fen); err != nil {
			t.Fatalf("parsing %q: %v", fen, err)
		}
		got := b.WriteFEN()
		if got != fen {
			t.Errorf("round trip mismatch: parsed %q, wrote %q", fen, got)
		}
	}
}

func TestInvalidFENLeavesBoardUnchanged(t *testing.T) {
	b := NewBoard()
	before := b.WriteFEN()

	badFENs := []string{
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYZQ - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
	}

	for _, fen := range badFENs {
		if err := b.SetupWithFEN(fen); err == nil {
			t.Errorf("expected error parsing invalid FEN %q", fen)
		}
		if got := b.WriteFEN(); got != before {
			t.Errorf("board mutated by failed parse of %q: now %q, want %q", fen, got, before)
		}
	}
}

func TestParseCastlingRightsRejectsGarbage(t *testing.T) {
	if _, err := parseCastlingRights("KQkqZ"); err == nil {
		t.Error("expected error for castling rights string with an invalid character")
	}
	if cr, err := parseCastlingRights("-"); err != nil || cr != NoCastling {
		t.Errorf("parseCastlingRights(\"-\") = (%v, %v), want (NoCastling, nil)", cr, err)
	}
}

func TestEnPassantSquareMustBeOnRank3Or6(t *testing.T) {
	b := NewBoard()
	err := b.SetupWithFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1")
	if err == nil {
		t.Error("expected error for en-passant target not on rank 3 or 6")
	}
}
