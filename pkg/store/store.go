// Package store persists command history in a bbolt database.
package store

import (
	"time"

	"github.com/luisbebop/histline/pkg/logutil"
	"github.com/luisbebop/histline/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

var logger = logutil.GetLogger("[store] ")

// Bucket names.
const (
	bucketCmd  = "cmd"
	bucketMeta = "meta"
)

// Initializers of the database, run in one transaction when a store is
// created. Each file of this package registers the buckets it uses.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for command history.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	db, err := bolt.Open(dbname, 0644,
		&bolt.Options{
			Timeout: time.Second,
		})
	return db, err
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				logger.Println("failed to", name, ":", err)
				return err
			}
		}
		return nil
	})
	return st, err
}

// Close releases the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
