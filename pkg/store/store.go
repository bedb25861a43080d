// Package store provides the editor's persistent input history, backed by
// a bolt database file.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const bucketInput = "input"

// ErrNoMatchingInput is returned when a history query completes with no
// result.
var ErrNoMatchingInput = errors.New("no matching input")

// Input is an entry in the input history.
type Input struct {
	Text string
	Seq  int
}

// Store is an interface satisfied by the persistent storage service.
type Store interface {
	// NextInputSeq returns the sequence number the next added input will
	// get.
	NextInputSeq() (int, error)
	// AddInput adds a new entry to the input history.
	AddInput(text string) (int, error)
	// DelInput deletes the entry with the given sequence number.
	DelInput(seq int) error
	// Input queries the entry with the given sequence number.
	Input(seq int) (string, error)
	// InputsWithSeq returns all entries with sequence numbers in the range
	// [from, upto).
	InputsWithSeq(from, upto int) ([]Input, error)
	// NextInput finds the first entry at or after the given sequence
	// number with the given prefix.
	NextInput(from int, prefix string) (Input, error)
	// PrevInput finds the last entry before the given sequence number
	// with the given prefix.
	PrevInput(upto int, prefix string) (Input, error)
	// Close waits for outstanding operations and releases the database.
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens a Store at the given file, creating it if it does not
// exist.
func NewStore(dbname string) (Store, error) {
	db, err := bolt.Open(dbname, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from an open bolt DB.
func NewStoreFromDB(db *bolt.DB) (Store, error) {
	st := &dbStore{db: db}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketInput))
		if err != nil {
			return fmt.Errorf("initialize input history bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Println("opened store at", db.Path())
	return st, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}
