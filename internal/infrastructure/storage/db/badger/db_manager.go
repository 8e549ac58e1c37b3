package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds the badgerhold stores and the badger-backed sequences in a
// single data structure. It implements domain.SequenceRepository.
type DbManager struct {
	AccountStore *badgerhold.Store
	LedgerStore  *badgerhold.Store

	seqLock   sync.Mutex
	sequences map[string]*badger.Sequence
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. It creates a dedicated
// directory for accounts and ledger entries.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	accountDb, err := createDb(baseDbDir+"/account", logger)
	if err != nil {
		return nil, fmt.Errorf("opening account db: %w", err)
	}

	ledgerDb, err := createDb(baseDbDir+"/ledger", logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &DbManager{
		AccountStore: accountDb,
		LedgerStore:  ledgerDb,
		sequences:    map[string]*badger.Sequence{},
	}, nil
}

// NextSequenceNumber atomically increments and returns the strictly
// increasing counter scoped by the given key. The first returned value is 1.
// Counters are backed by badger sequences with bandwidth 1, so concurrent
// callers never observe the same value; unused values are never reissued,
// which may leave harmless gaps across restarts.
func (d *DbManager) NextSequenceNumber(
	_ context.Context, key string,
) (uint32, error) {
	d.seqLock.Lock()
	defer d.seqLock.Unlock()

	seq, ok := d.sequences[key]
	if !ok {
		var err error
		seq, err = d.AccountStore.Badger().GetSequence([]byte("seq::"+key), 1)
		if err != nil {
			return 0, err
		}
		d.sequences[key] = seq
	}

	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if next >= math.MaxUint32 {
		return 0, fmt.Errorf("sequence %s exhausted", key)
	}

	return uint32(next) + 1, nil
}

// Close releases the sequences and closes the underlying stores.
func (d *DbManager) Close() error {
	d.seqLock.Lock()
	for _, seq := range d.sequences {
		//nolint:errcheck
		seq.Release()
	}
	d.sequences = map[string]*badger.Sequence{}
	d.seqLock.Unlock()

	if err := d.AccountStore.Close(); err != nil {
		return err
	}
	return d.LedgerStore.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 1,
		Options:          opts,
	})

	return
}
