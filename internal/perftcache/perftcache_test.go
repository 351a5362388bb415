package perftcache

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "perftcache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating cache dir: %v", err)
	}
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	c := openTestCache(t)
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	if _, ok, err := c.Get(fen, 4); err != nil {
		t.Fatalf("Get: %v", err)
	} else if ok {
		t.Fatal("expected a miss before any Put")
	}

	if err := c.Put(fen, 4, 197281); err != nil {
		t.Fatalf("Put: %v", err)
	}

	nodes, ok, err := c.Get(fen, 4)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || nodes != 197281 {
		t.Errorf("Get = (%d, %v), want (197281, true)", nodes, ok)
	}
}

func TestCheckSeedsOnFirstRunAndDetectsRegression(t *testing.T) {
	c := openTestCache(t)
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	first, err := c.Check(fen, 2, 2039)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if first.Cached || first.Regressed {
		t.Errorf("first Check should seed, not compare: %+v", first)
	}

	same, err := c.Check(fen, 2, 2039)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !same.Cached || same.Regressed {
		t.Errorf("matching node count should not be flagged as a regression: %+v", same)
	}

	regressed, err := c.Check(fen, 2, 2038)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !regressed.Regressed || regressed.Prior != 2039 {
		t.Errorf("differing node count should be flagged as a regression: %+v", regressed)
	}
}

func TestDifferentDepthsAreDistinctKeys(t *testing.T) {
	c := openTestCache(t)
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	if err := c.Put(fen, 1, 20); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put(fen, 2, 400); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n1, _, _ := c.Get(fen, 1)
	n2, _, _ := c.Get(fen, 2)
	if n1 != 20 || n2 != 400 {
		t.Errorf("depth-keyed entries collided: depth1=%d depth2=%d", n1, n2)
	}
}
