// Package provstore persists transformation provenance chains so pipeline
// lineage can be audited across process runs.
//
// Chains are stored link by link: each entry is msgpack-encoded under its
// ID, and the entry a chain was saved by is additionally marked as a head.
// Because entries are immutable and identified by ID, saving a chain whose
// prefix is already stored is idempotent, and two chains sharing a prefix
// share its stored links.
//
// The package includes a BadgerDB-backed implementation for production use
// and an in-memory implementation for testing.
package provstore

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/perceptlab/stimkit/pkg/stim"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no chain head has the requested ID.
	ErrNotFound = errors.New("provstore: not found")
)

// Store persists provenance chains.
type Store interface {
	// Put stores the full chain ending at e and marks e as a head.
	// Storing an already-stored link is a no-op.
	Put(ctx context.Context, e *stim.Entry) error

	// Get rebuilds the chain whose head has the given ID.
	// Returns ErrNotFound if no such head exists.
	Get(ctx context.Context, id string) (*stim.Entry, error)

	// List iterates over all stored chain heads, rebuilt. The iteration
	// order is lexicographic by head ID.
	List(ctx context.Context) iter.Seq2[*stim.Entry, error]

	// Close releases any resources held by the store.
	Close() error
}

// Key prefixes. Entries are shared between chains; heads mark the entries
// a chain was saved by.
const (
	entryPrefix = "entry:"
	headPrefix  = "head:"
)

// encodeChain walks the chain ending at e and returns the encoded links,
// newest first.
func encodeChain(e *stim.Entry) ([]keyedValue, error) {
	if e == nil {
		return nil, stim.ErrNoHistory
	}
	var kvs []keyedValue
	for cur := e; cur != nil; cur = cur.Parent() {
		data, err := msgpack.Marshal(cur.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("provstore: encode entry %s: %w", cur.ID(), err)
		}
		kvs = append(kvs, keyedValue{key: entryPrefix + cur.ID(), value: data})
	}
	return kvs, nil
}

// keyedValue is one encoded link ready for storage.
type keyedValue struct {
	key   string
	value []byte
}

// decodeEntry decodes one stored link.
func decodeEntry(data []byte) (stim.Snapshot, error) {
	var s stim.Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return stim.Snapshot{}, fmt.Errorf("provstore: decode entry: %w", err)
	}
	return s, nil
}

// rebuild loads the chain rooted at headID using get to fetch encoded
// links, then relinks the snapshots oldest-first.
func rebuild(headID string, get func(key string) ([]byte, bool, error)) (*stim.Entry, error) {
	var snaps []stim.Snapshot
	for id := headID; id != ""; {
		data, ok, err := get(entryPrefix + id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("provstore: chain %s: missing link %s", headID, id)
		}
		s, err := decodeEntry(data)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
		id = s.ParentID
	}

	var parent *stim.Entry
	for i := len(snaps) - 1; i >= 0; i-- {
		parent = stim.FromSnapshot(snaps[i], parent)
	}
	return parent, nil
}
