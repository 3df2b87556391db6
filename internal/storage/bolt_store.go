package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	versionBucket   = "versions"
	timestampPrefix = 8
)

// boltStore implements a Store backed by BoltDB. Values are an 8-byte
// big-endian unix-millis timestamp followed by the version string.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(versionBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Version returns the last recorded version for kind.
func (b *boltStore) Version(kind string) (Record, bool, error) {
	if b == nil || b.db == nil {
		return Record{}, false, nil
	}
	key, err := versionKey(kind)
	if err != nil {
		return Record{}, false, err
	}

	var (
		rec   Record
		found bool
	)
	err = b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(versionBucket))
		if bucket == nil {
			return fmt.Errorf("version bucket missing")
		}
		rec, found = decodeRecord(bucket.Get(key))
		return nil
	})
	return rec, found, err
}

// SetVersion records version for kind, replacing any earlier value.
func (b *boltStore) SetVersion(kind, version string, at time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}
	key, err := versionKey(kind)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(versionBucket))
		if bucket == nil {
			return fmt.Errorf("version bucket missing")
		}
		return bucket.Put(key, encodeRecord(version, at))
	})
}

func versionKey(kind string) ([]byte, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, fmt.Errorf("version kind is empty")
	}
	return []byte(kind), nil
}

func encodeRecord(version string, at time.Time) []byte {
	buf := make([]byte, timestampPrefix+len(version))
	binary.BigEndian.PutUint64(buf, uint64(at.UnixMilli()))
	copy(buf[timestampPrefix:], version)
	return buf
}

// decodeRecord copies out of value; bbolt memory is only valid inside the transaction.
func decodeRecord(value []byte) (Record, bool) {
	if len(value) < timestampPrefix {
		return Record{}, false
	}
	millis := int64(binary.BigEndian.Uint64(value[:timestampPrefix]))
	return Record{
		Version:    string(value[timestampPrefix:]),
		RecordedAt: time.UnixMilli(millis),
	}, true
}
