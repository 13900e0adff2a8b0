package store

import (
	. "github.com/luisbebop/histline/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize metadata table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		return err
	}
}

// Meta gets the value of a metadata key, such as the stifle limit of a shared
// history.
func (s *dbStore) Meta(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoMeta
		}
		value = string(v)
		return nil
	})
	return value, err
}

// SetMeta sets the value of a metadata key.
func (s *dbStore) SetMeta(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		return b.Put([]byte(key), []byte(value))
	})
}

// DelMeta deletes a metadata key. Deleting a key that is not set is not an
// error.
func (s *dbStore) DelMeta(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		return b.Delete([]byte(key))
	})
}
