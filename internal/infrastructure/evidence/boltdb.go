package evidence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const bucketName = "evidence"

// Item is one stored evidence submission. The gateway keeps the actual
// binary; FileID is its reference on that side.
type Item struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	TaskID      string    `json:"task_id"`
	FileID      string    `json:"file_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.SubmittedAt.IsZero() {
		i.SubmittedAt = time.Now()
	}
}

// Store wraps BoltDB to persist evidence submissions keyed by user, task
// and submission time.
type Store struct {
	db     *bolt.DB
	bucket []byte
	logger *zap.Logger
}

// Open snapshots any pre-existing database file to a timestamped sibling,
// then opens the store and ensures the bucket exists. The snapshot is
// best-effort: a failure is logged and never blocks startup.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	if backupPath, err := snapshot(path); err != nil {
		logger.Warn("evidence store snapshot failed", zap.String("path", path), zap.Error(err))
	} else if backupPath != "" {
		logger.Info("evidence store snapshot created", zap.String("backup", backupPath))
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucketName),
		logger: logger,
	}, nil
}

// Put stores an evidence item.
func (s *Store) Put(item Item) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	item.normalize()

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}

	key := buildKey(item)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), payload)
	})
}

// ListByUser returns every stored submission for the user, oldest first.
func (s *Store) ListByUser(userID int64) ([]Item, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	prefix := []byte(fmt.Sprintf("%d_", userID))

	var items []Item
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

// Size returns the number of stored submissions.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes submissions older than the provided timestamp and
// reports how many were dropped.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			if item.SubmittedAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

func buildKey(item Item) string {
	return fmt.Sprintf("%d_%s_%020d", item.UserID, item.TaskID, item.SubmittedAt.UnixNano())
}

func snapshot(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(backupPath)
		return "", err
	}
	return backupPath, nil
}
