package provstore

import (
	"context"
	"errors"
	"iter"
	"log"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/perceptlab/stimkit/pkg/stim"
)

// Badger is a Store implementation backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB in memory-only mode (no disk persistence).
	// Useful for testing with a real badger engine.
	InMemory bool

	// Logger sets the badger logger. If nil, a quiet logger that only
	// surfaces warnings and errors is used.
	Logger badger.Logger
}

// NewBadger creates a new BadgerDB-backed Store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("provstore: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(opts.Logger)
	} else {
		dbOpts = dbOpts.WithLogger(quietLogger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Put(_ context.Context, e *stim.Entry) error {
	kvs, err := encodeChain(e)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		for _, kv := range kvs {
			if _, err := txn.Get([]byte(kv.key)); err == nil {
				continue // link already stored; entries are immutable
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set([]byte(kv.key), kv.value); err != nil {
				return err
			}
		}
		return txn.Set([]byte(headPrefix+e.ID()), nil)
	})
}

func (b *Badger) Get(_ context.Context, id string) (*stim.Entry, error) {
	var entry *stim.Entry
	err := b.db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(headPrefix + id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		e, err := rebuild(id, func(key string) ([]byte, bool, error) {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			val, err := item.ValueCopy(nil)
			return val, err == nil, err
		})
		entry = e
		return err
	})
	return entry, err
}

func (b *Badger) List(ctx context.Context) iter.Seq2[*stim.Entry, error] {
	return func(yield func(*stim.Entry, error) bool) {
		// Collect head IDs first; rebuilding reads entry keys outside the
		// head prefix, so it happens in a second pass.
		var ids []string
		err := b.db.View(func(txn *badger.Txn) error {
			prefix := []byte(headPrefix)
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.Prefix = prefix
			iterOpts.PrefetchValues = false
			it := txn.NewIterator(iterOpts)
			defer it.Close()
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				key := string(it.Item().KeyCopy(nil))
				ids = append(ids, strings.TrimPrefix(key, headPrefix))
			}
			return nil
		})
		if err != nil {
			yield(nil, err)
			return
		}
		for _, id := range ids {
			e, err := b.Get(ctx, id)
			if !yield(e, err) {
				return
			}
		}
	}
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// quietLogger surfaces only warnings and errors from badger.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{}) { log.Printf("[badger] ERROR: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) {
	log.Printf("[badger] WARN: "+f, v...)
}
func (quietLogger) Infof(string, ...interface{})  {}
func (quietLogger) Debugf(string, ...interface{}) {}

var _ Store = (*Badger)(nil)
