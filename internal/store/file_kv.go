package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"

	"ustat/internal/crypto"
	"ustat/internal/domain"
)

const (
	plainFilename  = "tokens.json"
	sealedFilename = "tokens.enc"
)

// FileKV keeps all keys in one JSON object on disk. With a passphrase the
// object is sealed (scrypt + ChaCha20-Poly1305) before it is written.
type FileKV struct {
	dir        string
	passphrase string
	params     crypto.Params
	mu         sync.Mutex
}

// FileOption configures a FileKV.
type FileOption func(*FileKV)

// WithPassphrase seals the file with passphrase.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileKV) { s.passphrase = passphrase }
}

// WithScryptParams overrides the key-derivation costs used when sealing.
func WithScryptParams(p crypto.Params) FileOption {
	return func(s *FileKV) { s.params = p }
}

// NewFileKV returns a FileKV rooted at dir.
func NewFileKV(dir string, opts ...FileOption) *FileKV {
	s := &FileKV{dir: dir, params: crypto.DefaultParams}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path is the file backing the store.
func (s *FileKV) Path() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, sealedFilename)
	}
	return filepath.Join(s.dir, plainFilename)
}

// Get returns the value stored under key.
func (s *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *FileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	m[key] = value
	if err := s.save(m); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing an absent key leaves the file untouched.
func (s *FileKV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	if err := s.save(m); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (s *FileKV) load() (map[string]string, error) {
	m := make(map[string]string)
	b, err := readFile(s.Path())
	if err != nil || b == nil {
		return m, err
	}
	if s.passphrase != "" {
		pt, err := crypto.Open(s.passphrase, b)
		if err != nil {
			return nil, err
		}
		defer crypto.Wipe(pt)
		b = pt
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FileKV) save(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		sealed, err := crypto.Seal(s.passphrase, b, s.params)
		crypto.Wipe(b)
		if err != nil {
			return err
		}
		b = sealed
	}
	return writeFile(s.Path(), b, 0o600)
}

// Compile-time assertion that FileKV implements domain.KV.
var _ domain.KV = (*FileKV)(nil)
