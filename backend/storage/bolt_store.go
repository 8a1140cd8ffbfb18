package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"quizapp/backend/models"
)

var usersBucket = []byte("Users")

// BoltBackend stores users as JSON values in a bbolt bucket. Each call
// runs in its own transaction, so a completed Update is on disk.
type BoltBackend struct {
	db *bbolt.DB
}

func NewBoltBackend(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Create(u *models.User) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(usersBucket)
		if bucket.Get([]byte(u.Username)) != nil {
			return ErrUsernameTaken
		}
		return putUser(bucket, u)
	})
}

func (b *BoltBackend) Get(username string) (*models.User, error) {
	var out *models.User
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(usersBucket).Get([]byte(username))
		if v == nil {
			return ErrUserNotFound
		}
		u, err := decodeUser(username, v)
		if err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoltBackend) Update(u *models.User) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(usersBucket)
		if bucket.Get([]byte(u.Username)) == nil {
			return ErrUserNotFound
		}
		return putUser(bucket, u)
	})
}

func (b *BoltBackend) List() ([]models.User, error) {
	var out []models.User
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(usersBucket).ForEach(func(k, v []byte) error {
			u, err := decodeUser(string(k), v)
			if err != nil {
				return err
			}
			out = append(out, *u)
			return nil
		})
	})
	return out, err
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func putUser(bucket *bbolt.Bucket, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return bucket.Put([]byte(u.Username), data)
}

func decodeUser(key string, v []byte) (*models.User, error) {
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("%w: user %s: %v", ErrCorruptRecord, key, err)
	}
	if u.Username != key {
		return nil, fmt.Errorf("%w: user %s stored under key %s", ErrCorruptRecord, u.Username, key)
	}
	u.FillScores()
	return &u, nil
}
