package engine

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/corvidchess/corvid/internal/board"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{Name: "Corvid", Author: "test", HashMB: 1, DefaultMoveTimeMs: 100}, zap.NewNop())
}

func TestSetPositionFromStartpos(t *testing.T) {
	e := testEngine(t)
	if err := e.SetPosition("", []string{"e2e4", "e7e5"}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if e.Board().SideToMove() != board.White {
		t.Errorf("after e2e4 e7e5, expected White to move")
	}
}

func TestSetPositionFromFEN(t *testing.T) {
	e := testEngine(t)
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := e.SetPosition(fen, nil); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if got := e.Board().WriteFEN(); got != fen {
		t.Errorf("WriteFEN = %q, want %q", got, fen)
	}
}

func TestSetPositionRejectsIllegalMove(t *testing.T) {
	e := testEngine(t)
	if err := e.SetPosition("", []string{"e2e5"}); err == nil {
		t.Error("expected an error for an illegal move in the moves list")
	}
}

func TestNewGameResetsBoardAndTable(t *testing.T) {
	e := testEngine(t)
	e.SetPosition("", []string{"e2e4"})
	e.NewGame()

	if e.Board().WriteFEN() != board.StartFEN {
		t.Errorf("NewGame did not reset the board to the starting position")
	}
}

func TestSetHashSizeMBClampsToBounds(t *testing.T) {
	e := testEngine(t)

	e.SetHashSizeMB(0)
	if got := len(e.tt.entries); got == 0 {
		t.Error("SetHashSizeMB(0) should clamp up to MinHashMB, not leave an empty table")
	}

	e.SetHashSizeMB(MaxHashMB * 4)
	clamped := len(e.tt.entries)

	e.SetHashSizeMB(MaxHashMB)
	if len(e.tt.entries) != clamped {
		t.Errorf("SetHashSizeMB above MaxHashMB should clamp to the same table size as MaxHashMB itself")
	}
}

func TestStartSearchThenStopReturnsToIdle(t *testing.T) {
	e := testEngine(t)
	done := make(chan board.Move, 1)

	e.StartSearch(0, 5, nil, func(best board.Move) {
		done <- best
	})

	e.StopSearch()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("onDone callback never fired after StopSearch")
	}

	if e.State() != StateIdle {
		t.Errorf("State() = %v, want StateIdle after StopSearch", e.State())
	}
}

func TestStartSearchIgnoredWhileAlreadySearching(t *testing.T) {
	e := testEngine(t)
	done := make(chan board.Move, 2)

	e.StartSearch(0, 5, nil, func(best board.Move) { done <- best })
	e.StartSearch(0, 5, nil, func(best board.Move) { done <- best })
	e.StopSearch()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected at least one completion callback")
	}
}
