package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"checkers/game"
	"checkers/qlearn"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	prefixQ     = "q/"
	keyTraining = "training"
)

const qKeyLen = len(prefixQ) + game.KeyLen + 1

// ErrCorrupt reports a stored entry with an unexpected layout.
var ErrCorrupt = errors.New("corrupt entry")

// TrainingInfo describes how the stored table was produced
type TrainingInfo struct {
	Config        qlearn.Config `json:"config"`
	Entries       int           `json:"entries"`
	FinalEpsilon  float64       `json:"final_epsilon"`
	FinalVsRandom float64       `json:"final_vs_random"`
	FinalVsHeur   float64       `json:"final_vs_heuristic"`
	SavedAt       time.Time     `json:"saved_at"`
}

// Storage wraps BadgerDB for Q-table persistence
type Storage struct {
	db *badger.DB
}

// Open opens or creates a database in dir
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that is discarded on Close
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTable replaces the stored Q-table with table in one transaction. A table
// too large for one transaction is written through a batch instead, which
// commits in several steps.
func (s *Storage) SaveTable(table *qlearn.Table) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		stale, err := tableKeys(txn)
		if err != nil {
			return fmt.Errorf("list old table: %w", err)
		}
		return replaceTable(stale, table, txn.Delete, txn.Set)
	})
	if errors.Is(err, badger.ErrTxnTooBig) {
		return s.saveTableBatched(table)
	}
	return err
}

func (s *Storage) saveTableBatched(table *qlearn.Table) error {
	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stale, err = tableKeys(txn)
		return err
	})
	if err != nil {
		return fmt.Errorf("list old table: %w", err)
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	if err := replaceTable(stale, table, batch.Delete, batch.Set); err != nil {
		return err
	}
	return batch.Flush()
}

func replaceTable(stale [][]byte, table *qlearn.Table, del func(key []byte) error, set func(key, val []byte) error) error {
	for _, key := range stale {
		if err := del(key); err != nil {
			return fmt.Errorf("delete old entry: %w", err)
		}
	}
	var err error
	table.Range(func(entry qlearn.Entry, value float64) bool {
		err = set(encodeKey(entry), encodeValue(value))
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

func tableKeys(txn *badger.Txn) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	prefix := []byte(prefixQ)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

// LoadTable reads the stored Q-table, empty if none was saved
func (s *Storage) LoadTable() (*qlearn.Table, error) {
	table := qlearn.NewTable()

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixQ)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			entry, err := decodeKey(item.Key())
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				value, err := decodeValue(val)
				if err != nil {
					return err
				}
				table.Set(entry.Key, entry.Action, value)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return table, err
}

// SaveTrainingInfo saves metadata about the stored table
func (s *Storage) SaveTrainingInfo(info TrainingInfo) error {
	info.SavedAt = time.Now()

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTraining), data)
	})
}

// LoadTrainingInfo loads training metadata, reporting false if none was saved
func (s *Storage) LoadTrainingInfo() (TrainingInfo, bool, error) {
	var info TrainingInfo
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTraining))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		})
	})

	return info, found, err
}

func encodeKey(entry qlearn.Entry) []byte {
	key := make([]byte, 0, qKeyLen)
	key = append(key, prefixQ...)
	key = append(key, entry.Key[:]...)
	return append(key, uint8(entry.Action))
}

func decodeKey(key []byte) (qlearn.Entry, error) {
	if len(key) != qKeyLen {
		return qlearn.Entry{}, fmt.Errorf("%w: key length %d", ErrCorrupt, len(key))
	}
	var entry qlearn.Entry
	copy(entry.Key[:], key[len(prefixQ):])
	entry.Action = int(key[qKeyLen-1])
	return entry, nil
}

func encodeValue(value float64) []byte {
	return binary.BigEndian.AppendUint64(nil, math.Float64bits(value))
}

func decodeValue(val []byte) (float64, error) {
	if len(val) != 8 {
		return 0, fmt.Errorf("%w: value length %d", ErrCorrupt, len(val))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(val)), nil
}
