package persist

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boltBucket = "state"

// Bolt persists the snapshot in a bbolt file. This is the default backend.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bbolt file at the given path and ensures
// the state bucket exists.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Load implements Adapter.
func (b *Bolt) Load() ([]byte, error) {
	if b == nil || b.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(EntryName))
		if v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// Save implements Adapter.
func (b *Bolt) Save(data []byte) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(EntryName), data)
	})
}

// Delete implements Adapter.
func (b *Bolt) Delete() error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(EntryName))
	})
}

// Close implements Adapter.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
