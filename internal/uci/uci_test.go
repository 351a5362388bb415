package uci

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/corvidchess/corvid/internal/board"
	"github.com/corvidchess/corvid/internal/engine"
)

func testUCI(t *testing.T) *UCI {
	t.Helper()
	cfg := engine.Config{Name: "Corvid", Author: "test", HashMB: 1, DefaultMoveTimeMs: 100}
	eng := engine.New(cfg, zap.NewNop())
	return New(eng, cfg, zap.NewNop(), nil)
}

func TestHandlePositionStartposWithMoves(t *testing.T) {
	u := testUCI(t)
	u.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})

	if got := u.eng.Board().SideToMove(); got != board.White {
		t.Errorf("side to move = %v, want White after e2e4 e7e5", got)
	}
}

func TestHandlePositionFenDetectsMovesTokenAfterSixFields(t *testing.T) {
	u := testUCI(t)
	u.handlePosition([]string{"fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", "w", "KQkq", "-", "0", "1", "moves", "e2e4"})

	if got := u.eng.Board().SideToMove(); got != board.Black {
		t.Errorf("side to move = %v, want Black after fen + e2e4", got)
	}
}

func TestHandlePositionInvalidFenKeepsPriorBoard(t *testing.T) {
	u := testUCI(t)
	u.handlePosition([]string{"startpos", "moves", "e2e4"})
	before := u.eng.Board().WriteFEN()

	u.handlePosition([]string{"fen", "not-a-real-fen", "w", "-", "-", "0", "1"})

	if got := u.eng.Board().WriteFEN(); got != before {
		t.Errorf("board changed after malformed fen: got %q, want %q", got, before)
	}
}

func TestParseGoOptionsMoveTimeAndDepth(t *testing.T) {
	opts := parseGoOptions([]string{"depth", "6", "movetime", "1500"})
	if opts.depth != 6 {
		t.Errorf("depth = %d, want 6", opts.depth)
	}
	if opts.moveTime != 1500*time.Millisecond {
		t.Errorf("moveTime = %v, want 1500ms", opts.moveTime)
	}
	if opts.infinite {
		t.Errorf("infinite should be false")
	}
}

func TestParseGoOptionsInfinite(t *testing.T) {
	opts := parseGoOptions([]string{"infinite"})
	if !opts.infinite {
		t.Errorf("expected infinite = true")
	}
}

func TestHandleSetOptionAcceptsHash(t *testing.T) {
	u := testUCI(t)
	// Should not panic and should accept a well-formed Hash option.
	u.handleSetOption([]string{"name", "Hash", "value", "16"})
}
