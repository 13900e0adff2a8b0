package store

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	. "github.com/luisbebop/histline/pkg/store/storedefs"
	bolt "go.etcd.io/bbolt"
)

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// A command is stored as the big-endian Unix time in seconds followed by the
// text. noTime marks a command without a timestamp. A value shorter than the
// time prefix is all text and has no timestamp.
const (
	timeLen = 8
	noTime  = math.MinInt64
)

// NextCmdSeq returns the next sequence number of the command history.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd adds a new command to the command history. A zero t records no
// timestamp.
func (s *dbStore) AddCmd(cmd string, t time.Time) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalCmd(cmd, t))
	})
	return int(seq), err
}

// DelCmd deletes a command history item with the given sequence number.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd queries the command history item with the specified sequence number.
func (s *dbStore) Cmd(seq int) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		k := marshalSeq(uint64(seq))
		v := b.Get(k)
		if v == nil {
			return ErrNoMatchingCmd
		}
		cmd = unmarshalCmd(k, v)
		return nil
	})
	return cmd, err
}

// IterateCmds iterates all the commands in the specified range, and calls the
// callback with the content of each command sequentially.
func (s *dbStore) IterateCmds(from, upto int, f func(Cmd)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			f(unmarshalCmd(k, v))
		}
		return nil
	})
}

// CmdsWithSeq returns all commands within the specified range.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.IterateCmds(from, upto, func(cmd Cmd) {
		cmds = append(cmds, cmd)
	})
	return cmds, err
}

// NextCmd finds the first command after the given sequence number (inclusive)
// with the given prefix.
func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(cmdText(v), p) {
				cmd = unmarshalCmd(k, v)
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last command before the given sequence number (exclusive)
// with the given prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		p := []byte(prefix)

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil { // upto > LAST
			k, v = c.Last()
			if k == nil {
				return ErrNoMatchingCmd
			}
		} else {
			k, v = c.Prev() // upto exists, find the previous one
		}

		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(cmdText(v), p) {
				cmd = unmarshalCmd(k, v)
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

func marshalCmd(text string, t time.Time) []byte {
	sec := int64(noTime)
	if !t.IsZero() {
		sec = t.Unix()
	}
	b := make([]byte, timeLen, timeLen+len(text))
	binary.BigEndian.PutUint64(b, uint64(sec))
	return append(b, text...)
}

func cmdText(value []byte) []byte {
	if len(value) < timeLen {
		return value
	}
	return value[timeLen:]
}

// The value returned by bbolt is only valid within the transaction, so the
// text is copied.
func unmarshalCmd(key, value []byte) Cmd {
	cmd := Cmd{Text: string(cmdText(value)), Seq: int(unmarshalSeq(key))}
	if len(value) < timeLen {
		return cmd
	}
	if sec := int64(binary.BigEndian.Uint64(value)); sec != noTime {
		cmd.Time = time.Unix(sec, 0)
	}
	return cmd
}
