package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetry = 25 * time.Millisecond

type fileEntry struct {
	Token    Token     `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// FileStore keeps the token in a small JSON document. Every access takes an
// exclusive flock on "<path>.lock"; writes go through temp file + rename.
type FileStore struct {
	mu   sync.Mutex // flock is per-process, this serializes goroutines
	path string
	lock *flock.Flock
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock"), now: time.Now}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	ok, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("lock session file: %w", err)
	}
	if !ok {
		return fmt.Errorf("lock session file: %s is busy", s.path)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *FileStore) read() (map[string]fileEntry, error) {
	doc := map[string]fileEntry{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return doc, nil
}

func (s *FileStore) write(doc map[string]fileEntry) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Issue(ctx context.Context, tok Token) error {
	return s.withLock(ctx, func() error {
		doc, err := s.read()
		if err != nil {
			// file rusak: timpa saja, login baru lebih penting
			doc = map[string]fileEntry{}
		}
		doc[StorageKey] = fileEntry{Token: tok, IssuedAt: s.now().UTC()}
		return s.write(doc)
	})
}

func (s *FileStore) Current(ctx context.Context) (Token, bool, error) {
	var (
		tok Token
		ok  bool
	)
	err := s.withLock(ctx, func() error {
		doc, err := s.read()
		if err != nil {
			return err
		}
		e, found := doc[StorageKey]
		tok, ok = e.Token, found && e.Token != ""
		return nil
	})
	return tok, ok, err
}

func (s *FileStore) Clear(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		doc, err := s.read()
		if err != nil {
			doc = map[string]fileEntry{}
		}
		delete(doc, StorageKey)
		if len(doc) == 0 {
			if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		}
		return s.write(doc)
	})
}

// DefaultPath returns $XDG_CONFIG_HOME/catalogctl/session.json, falling back
// to the platform config dir and finally the temp dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "catalogctl", "session.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "catalogctl", "session.json")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "catalogctl", "session.json")
	}
	return filepath.Join(home, ".config", "catalogctl", "session.json")
}
