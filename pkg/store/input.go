package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
)

func (s *dbStore) NextInputSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

func (s *dbStore) AddInput(text string) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

func (s *dbStore) DelInput(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

func (s *dbStore) Input(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingInput
		}
		text = string(v)
		return nil
	})
	return text, err
}

func (s *dbStore) InputsWithSeq(from, upto int) ([]Input, error) {
	var inputs []Input
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			inputs = append(inputs, Input{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return inputs, err
}

func (s *dbStore) NextInput(from int, prefix string) (Input, error) {
	var input Input
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		c := b.Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, p) {
				input = Input{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingInput
	})
	return input, err
}

func (s *dbStore) PrevInput(upto int, prefix string) (Input, error) {
	var input Input
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketInput))
		c := b.Cursor()
		p := []byte(prefix)

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil {
			// upto is past the last entry; start from the last one.
			k, v = c.Last()
			if k == nil {
				return ErrNoMatchingInput
			}
		} else {
			k, v = c.Prev()
		}

		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				input = Input{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingInput
	})
	return input, err
}

// History keys are big-endian sequence numbers, so that cursor order is
// chronological order.
func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
