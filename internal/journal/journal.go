// Package journal keeps a local write-ahead record of uploads whose object
// has been (or is about to be) written but whose asset row is not yet committed.
package journal

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const prefix = "intent/"

// Intent describes one staged upload.
type Intent struct {
	ID        string    `json:"id"`
	BucketKey string    `json:"bucket_key"`
	UserID    int64     `json:"user_id"`
	AssetName string    `json:"asset_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal is a badger-backed intent store.
type Journal struct {
	db *badger.DB
}

// Open opens (or creates) the journal in dir. An empty dir opens an in-memory journal.
func Open(dir string) (*Journal, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Stage records a new intent and returns it with ID and CreatedAt filled in.
func (j *Journal) Stage(bucketKey string, userID int64, assetName string) (Intent, error) {
	in := Intent{
		ID:        uuid.NewString(),
		BucketKey: bucketKey,
		UserID:    userID,
		AssetName: assetName,
		CreatedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(in)
	if err != nil {
		return Intent{}, err
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefix+in.ID), b)
	})
	if err != nil {
		return Intent{}, err
	}
	return in, nil
}

// Resolve removes an intent once its outcome is settled. Unknown ids are ignored.
func (j *Journal) Resolve(id string) error {
	return j.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(prefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Pending returns all unresolved intents.
func (j *Journal) Pending() ([]Intent, error) {
	var out []Intent
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var in Intent
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &in)
			})
			if err != nil {
				return err
			}
			out = append(out, in)
		}
		return nil
	})
	return out, err
}
