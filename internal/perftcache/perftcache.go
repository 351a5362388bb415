// Package perftcache records perft(fen, depth) -> node-count results in
// a BadgerDB store, so that a perft regression suite can flag a
// move-generator change that silently altered a previously-verified
// node count. It is opt-in test tooling: nothing in engine play reads
// or writes this cache, and omitting it changes no search behavior.
package perftcache

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Cache wraps a BadgerDB database keyed by xxhash(fen|depth).
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) a perft cache at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func cacheKey(fen string, depth int) []byte {
	h := xxhash.Sum64String(fmt.Sprintf("%s|%d", fen, depth))
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], h)
	return key[:]
}

// Get returns a previously recorded node count for (fen, depth), if
// any. ok is false on a cache miss.
func (c *Cache) Get(fen string, depth int) (nodes uint64, ok bool, err error) {
	key := cacheKey(fen, depth)
	err = c.db.View(func(txn *badger.Txn) error {
		item, e := txn.Get(key)
		if e == badger.ErrKeyNotFound {
			return nil
		}
		if e != nil {
			return e
		}
		ok = true
		return item.Value(func(val []byte) error {
			nodes = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	return nodes, ok, err
}

// Put records the node count computed for (fen, depth), overwriting
// any prior value.
func (c *Cache) Put(fen string, depth int, nodes uint64) error {
	key := cacheKey(fen, depth)
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], nodes)
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val[:])
	})
}

// CheckResult is the outcome of comparing a freshly computed node
// count against any cached value for the same (fen, depth).
type CheckResult struct {
	Cached    bool
	Prior     uint64
	Regressed bool
}

// Check compares got against the cached value for (fen, depth),
// recording got as the new cached value regardless of outcome. A
// cache miss is not a regression; it simply seeds the cache.
func (c *Cache) Check(fen string, depth int, got uint64) (CheckResult, error) {
	prior, ok, err := c.Get(fen, depth)
	if err != nil {
		return CheckResult{}, err
	}
	result := CheckResult{Cached: ok, Prior: prior, Regressed: ok && prior != got}
	if err := c.Put(fen, depth, got); err != nil {
		return result, err
	}
	return result, nil
}
