// Package cache persists fetched holder snapshots in a local bbolt
// database so repeated proof runs against the same (chain, token, block)
// skip the subgraph round trips. Cached data is as untrusted as its
// source; the verifier still re-reads everything through the ledger.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"go.etcd.io/bbolt"

	"github.com/chebykin/top-n-holders-go/topn"
)

var bucketSnapshots = []byte("snapshots")

// HolderEntry is one holder row in its stored form. Balances are
// big-endian minimal byte strings, the canonical uint256 encoding.
type HolderEntry struct {
	Address [20]byte `cbor:"1,keyasint"`
	Balance []byte   `cbor:"2,keyasint"`
}

// Entry is one cached holder snapshot.
type Entry struct {
	ChainSpec   string        `cbor:"1,keyasint"`
	Token       [20]byte      `cbor:"2,keyasint"`
	Block       uint64        `cbor:"3,keyasint"`
	FetchedAt   time.Time     `cbor:"4,keyasint"`
	TotalSupply []byte        `cbor:"5,keyasint"`
	Holders     []HolderEntry `cbor:"6,keyasint"`
}

// NewEntry builds a cache entry from a fetched holder set.
func NewEntry(spec string, token common.Address, block uint64, supply *uint256.Int, holders []topn.Holder) *Entry {
	e := &Entry{
		ChainSpec:   spec,
		Token:       token,
		Block:       block,
		FetchedAt:   time.Now().UTC(),
		TotalSupply: supply.Bytes(),
		Holders:     make([]HolderEntry, 0, len(holders)),
	}
	for _, h := range holders {
		e.Holders = append(e.Holders, HolderEntry{Address: h.Address, Balance: h.Balance.Bytes()})
	}
	return e
}

// HolderSet converts the entry back into planner input records.
func (e *Entry) HolderSet() []topn.Holder {
	holders := make([]topn.Holder, 0, len(e.Holders))
	for _, h := range e.Holders {
		holders = append(holders, topn.Holder{
			Address: common.Address(h.Address),
			Balance: new(uint256.Int).SetBytes(h.Balance),
		})
	}
	return holders
}

// Supply returns the stored (advisory) total supply.
func (e *Entry) Supply() *uint256.Int {
	return new(uint256.Int).SetBytes(e.TotalSupply)
}

// Cache wraps a bbolt database holding holder snapshots.
type Cache struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: create bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// snapshotKey builds the bucket key for a (chain, token, block) triple.
func snapshotKey(spec string, token common.Address, block uint64) []byte {
	return []byte(fmt.Sprintf("%s|%s|%d", spec, strings.ToLower(token.Hex()), block))
}

// Put stores an entry, overwriting any previous snapshot for the same
// (chain, token, block).
func (c *Cache) Put(e *Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	data, err := cbor.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: encode entry: %w", err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		key := snapshotKey(e.ChainSpec, common.Address(e.Token), e.Block)
		if err := tx.Bucket(bucketSnapshots).Put(key, data); err != nil {
			return fmt.Errorf("cache: put snapshot: %w", err)
		}
		return nil
	})
}

// Get retrieves the snapshot for (spec, token, block).
func (c *Cache) Get(spec string, token common.Address, block uint64) (*Entry, error) {
	var entry Entry
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get(snapshotKey(spec, token, block))
		if data == nil {
			return ErrNotFound
		}
		if err := cbor.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("cache: decode snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes the snapshot for (spec, token, block), if present.
func (c *Cache) Delete(spec string, token common.Address, block uint64) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSnapshots).Delete(snapshotKey(spec, token, block)); err != nil {
			return fmt.Errorf("cache: delete snapshot: %w", err)
		}
		return nil
	})
}
