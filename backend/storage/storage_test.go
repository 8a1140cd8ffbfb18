package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"quizapp/backend/config"
	"quizapp/backend/models"
)

// opener returns a fresh backend rooted in dir; calling it twice with the
// same dir must reopen the same data.
type opener func(t *testing.T, dir string) Backend

func backends() map[string]opener {
	return map[string]opener{
		"json": func(t *testing.T, dir string) Backend {
			b, err := NewJSONBackend(filepath.Join(dir, "users.json"))
			require.NoError(t, err)
			return b
		},
		"files": func(t *testing.T, dir string) Backend {
			b, err := NewFileBackend(filepath.Join(dir, "users"))
			require.NoError(t, err)
			return b
		},
		"bolt": func(t *testing.T, dir string) Backend {
			b, err := NewBoltBackend(filepath.Join(dir, "users.db"))
			require.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T, dir string) Backend {
			cfg := &config.Config{StoreDriver: "sqlite", SQLitePath: filepath.Join(dir, "quiz.db")}
			b, err := Open(cfg, nil)
			require.NoError(t, err)
			return b
		},
	}
}

func TestBackendContract(t *testing.T) {
	all := backends()
	all["memory"] = func(t *testing.T, dir string) Backend { return NewMemoryBackend() }

	for name, open := range all {
		t.Run(name, func(t *testing.T) {
			b := open(t, t.TempDir())
			defer b.Close()

			alice := models.NewUser("alice", "Alice", "alice@example.com", "555-0100", "pw1")
			require.NoError(t, b.Create(alice))

			got, err := b.Get("alice")
			require.NoError(t, err)
			assert.Equal(t, alice, got)

			dup := models.NewUser("alice", "Mallory", "m@example.com", "0", "other")
			assert.ErrorIs(t, b.Create(dup), ErrUsernameTaken)

			got, err = b.Get("alice")
			require.NoError(t, err)
			assert.Equal(t, "Alice", got.Name)
			assert.Equal(t, "pw1", got.Password)

			_, err = b.Get("bob")
			assert.ErrorIs(t, err, ErrUserNotFound)

			got.RaiseScore(models.SubjectDSA, 60)
			require.NoError(t, b.Update(got))

			again, err := b.Get("alice")
			require.NoError(t, err)
			assert.Equal(t, 60.0, again.BestScore(models.SubjectDSA))
			assert.Zero(t, again.BestScore(models.SubjectPython))

			assert.ErrorIs(t, b.Update(models.NewUser("ghost", "", "", "", "x")), ErrUserNotFound)

			require.NoError(t, b.Create(models.NewUser("bob", "Bob", "", "", "pw2")))
			users, err := b.List()
			require.NoError(t, err)
			require.Len(t, users, 2)
			assert.Equal(t, "alice", users[0].Username)
			assert.Equal(t, "bob", users[1].Username)
		})
	}
}

func TestBackendDurableAcrossReopen(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			b := open(t, dir)
			u := models.NewUser("alice", "Alice", "a@example.com", "555", "pw1")
			require.NoError(t, b.Create(u))
			u.RaiseScore(models.SubjectPython, 2.0/3.0*100)
			require.NoError(t, b.Update(u))
			require.NoError(t, b.Close())

			b = open(t, dir)
			defer b.Close()

			got, err := b.Get("alice")
			require.NoError(t, err)
			assert.Equal(t, 2.0/3.0*100, got.BestScore(models.SubjectPython))
			assert.Equal(t, "a@example.com", got.Email)
		})
	}
}

func TestJSONBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	b, err := NewJSONBackend(path)
	require.NoError(t, err)

	_, err = b.Get("alice")
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestJSONBackendReadsPlainDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	doc := `{"alice": {"name": "Alice", "email": "a@x", "phone": "1", "password": "pw1", "scores": {"Python": 80.0, "DSA": 0}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	b, err := NewJSONBackend(path)
	require.NoError(t, err)

	u, err := b.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, 80.0, u.BestScore(models.SubjectPython))
	assert.Zero(t, u.BestScore(models.SubjectDBMS))
}

func TestFileBackendFormat(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Create(models.NewUser("alice", "Alice", "a@x", "1", "p:w")))

	data, err := os.ReadFile(filepath.Join(dir, "alice.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Name:Alice\nEmail:a@x\nPhone:1\nPassword:p:w\nScores:Python:0,DSA:0,DBMS:0\n", string(data))

	u, err := b.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "p:w", u.Password)
}

func TestFileBackendCorruptRecords(t *testing.T) {
	tests := map[string]string{
		"missing colon":  "Name Alice\n",
		"missing fields": "Name:Alice\nEmail:a@x\n",
		"bad score":      "Name:A\nEmail:e\nPhone:p\nPassword:pw\nScores:Python:lots\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.txt"), []byte(content), 0644))

			b, err := NewFileBackend(dir)
			require.NoError(t, err)

			_, err = b.Get("alice")
			assert.ErrorIs(t, err, ErrCorruptRecord)
		})
	}
}

func TestFileBackendRejectsPathUsernames(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, b.Create(models.NewUser("../evil", "", "", "", "x")))
	_, err = b.Get("../evil")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBoltBackendCorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	b, err := NewBoltBackend(path)
	require.NoError(t, err)
	defer b.Close()

	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(usersBucket).Put([]byte("alice"), []byte("{"))
	})
	require.NoError(t, err)

	_, err = b.Get("alice")
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{StoreDriver: "cassandra"}, nil)
	assert.Error(t, err)
}
