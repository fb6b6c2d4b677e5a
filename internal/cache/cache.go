package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"wiki-resolver-go/internal/metrics"
)

const keyPrefix = "wiki/v1/"

// Store caches raw API response bodies in BadgerDB with a TTL. Safe for
// concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration
	log *logrus.Entry
}

// Open opens (or creates) an on-disk cache in dir.
func Open(dir string, ttl time.Duration, log *logrus.Entry) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache dir is required")
	}
	return open(badger.DefaultOptions(dir).WithLogger(nil), ttl, log)
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory(ttl time.Duration, log *logrus.Entry) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), ttl, log)
}

func open(opts badger.Options, ttl time.Duration, log *logrus.Entry) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{db: db, ttl: ttl, log: log.WithField("component", "cache")}, nil
}

// Key derives the storage key for a request URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached value for key. A missing or expired key is a miss,
// not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		metrics.RecordCacheLookup("miss")
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordCacheLookup("error")
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	metrics.RecordCacheLookup("hit")
	return val, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	s.log.WithField("key", key).WithField("bytes", len(value)).Debug("cached response")
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
