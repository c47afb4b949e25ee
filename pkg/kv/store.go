package kv

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/dgraph-io/badger/v4"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

type Entry struct {
	Key   []byte
	Value []byte
}

// Store minimal key-value backend used by KVDB. Get returns ErrKeyNotFound for missing keys
// whatever the backend.
type Store interface {
	Get(key []byte) ([]byte, error)
	PutBatch(ctx context.Context, entries []Entry) error
	Close() error
}

type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a badger db at dir, or a throwaway in-memory one.
func NewBadgerStore(dir string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (s *BadgerStore) PutBatch(ctx context.Context, entries []Entry) error {
	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Set(e.Key, e.Value); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving batch: %v", err)
		return err
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens a pebble db at dir. inMemory keeps every file on an in-memory vfs.
func NewPebbleStore(dir string, inMemory bool) (*PebbleStore, error) {
	opts := &pebble.Options{}
	if inMemory {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble %q: %w", dir, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// val is only valid until closer is closed
	valCopy := make([]byte, len(val))
	copy(valCopy, val)
	return valCopy, nil
}

func (s *PebbleStore) PutBatch(ctx context.Context, entries []Entry) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return err
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		log.Printf("error saving batch: %v", err)
		return err
	}
	return nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

// OpenStore picks the backend by name, "badger" or "pebble".
func OpenStore(backend, dir string, inMemory bool) (Store, error) {
	switch backend {
	case "", "badger":
		return NewBadgerStore(dir, inMemory)
	case "pebble":
		return NewPebbleStore(dir, inMemory)
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}
