package board

// ParseUCIMove parses a UCI move string ("e2e4", "e7e8q", ...) against
// the legal moves available in b, returning the fully-flagged Move the
// generator produced. Matching against generated moves (rather than
// reconstructing flags from the string alone) is what lets a bare
// "e1g1" disambiguate into a king-side castle, a capture, or a plain
// king step depending on the position.
func ParseUCIMove(b *Board, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Invalid, InvalidCoordError{Coord: s}
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Invalid, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Invalid, err
	}
	var promo Piece = None
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return Invalid, InvalidCoordError{Coord: s}
		}
	}

	legal := GenerateLegal(b, false)
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if promo == None || m.PromotionKind() != promo {
				continue
			}
		} else if promo != None {
			continue
		}
		return m, nil
	}
	return Invalid, InvalidCoordError{Coord: s}
}
