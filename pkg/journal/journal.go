package journal

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

var bucketPublishes = []byte("publishes")

// Journal is a bbolt-backed ledger of what was last sent to the remote sink,
// keyed by (name, instrument). It drives the publish cooldown: an identical
// payload for the same key is suppressed until the cooldown elapses, across
// process restarts. The journal never feeds the state store.
type Journal struct {
	db *bolt.DB
}

type entry struct {
	Hash        string    `json:"hash"`
	PublishedAt time.Time `json:"published_at"`
}

// Open opens or creates the journal file at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPublishes)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal bucket: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// ShouldPublish reports whether a payload with the given content hash should
// go to the remote sink now. Changed content always publishes; identical
// content publishes only after cooldown has elapsed since the last send.
// A non-positive cooldown disables the policy and always publishes.
func (j *Journal) ShouldPublish(key types.StatusKey, hash string, now time.Time, cooldown time.Duration) (bool, error) {
	var en *entry
	err := j.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketPublishes).Get(keyBytes(key))
		if data == nil {
			return nil
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		en = &e
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("read journal entry: %w", err)
	}

	if cooldown <= 0 || en == nil || en.Hash != hash {
		return true, nil
	}
	return now.Sub(en.PublishedAt) >= cooldown, nil
}

// MarkPublished records a successful send for key.
func (j *Journal) MarkPublished(key types.StatusKey, hash string, now time.Time) error {
	data, err := json.Marshal(entry{Hash: hash, PublishedAt: now})
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPublishes).Put(keyBytes(key), data)
	})
}

// keyBytes joins name and instrument with a NUL, which cannot appear in
// either field.
func keyBytes(k types.StatusKey) []byte {
	b := make([]byte, 0, len(k.Name)+1+len(k.Instrument))
	b = append(b, k.Name...)
	b = append(b, 0)
	b = append(b, k.Instrument...)
	return b
}
