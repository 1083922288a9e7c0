package keystore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// secureFile is the on-disk layout of a Secure store
type secureFile struct {
	Salt    string            `json:"salt"`
	Entries map[string]string `json:"entries"`
}

// Secure keeps values AES-256-GCM encrypted in a 0600 JSON file, with the
// key derived from a passphrase
type Secure struct {
	path       string
	passphrase string

	mu sync.Mutex
}

// NewSecure returns a store backed by the file at path. The file is created
// on first Set.
func NewSecure(path, passphrase string) (*Secure, error) {
	if passphrase == "" {
		return nil, errors.New("secure store needs a passphrase")
	}
	return &Secure{path: path, passphrase: passphrase}, nil
}

func (s *Secure) load() (*secureFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &secureFile{Entries: map[string]string{}}, nil
	}
	if err != nil {
		return nil, err
	}

	f := &secureFile{}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("corrupted secure store: %w", err)
	}
	if f.Entries == nil {
		f.Entries = map[string]string{}
	}
	return f, nil
}

func (s *Secure) save(f *secureFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	// write then rename so a crash never leaves a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Secure) box(f *secureFile) (*cipherBox, error) {
	if f.Salt == "" {
		salt, err := generateSalt()
		if err != nil {
			return nil, err
		}
		f.Salt = base64.StdEncoding.EncodeToString(salt)
	}
	salt, err := base64.StdEncoding.DecodeString(f.Salt)
	if err != nil {
		return nil, fmt.Errorf("corrupted salt: %w", err)
	}
	return newCipherBox(s.passphrase, salt), nil
}

func (s *Secure) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return "", wrap("get", key, err)
	}
	encoded, ok := f.Entries[key]
	if !ok {
		return "", nil
	}

	box, err := s.box(f)
	if err != nil {
		return "", wrap("get", key, err)
	}
	plain, err := box.open(key, encoded)
	if err != nil {
		return "", wrap("get", key, err)
	}
	return string(plain), nil
}

func (s *Secure) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return wrap("set", key, err)
	}
	box, err := s.box(f)
	if err != nil {
		return wrap("set", key, err)
	}
	sealed, err := box.seal(key, []byte(value))
	if err != nil {
		return wrap("set", key, err)
	}
	f.Entries[key] = sealed
	return wrap("set", key, s.save(f))
}

func (s *Secure) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return wrap("delete", key, err)
	}
	if _, ok := f.Entries[key]; !ok {
		return nil
	}
	delete(f.Entries, key)
	return wrap("delete", key, s.save(f))
}

// Close is a no-op; every operation reopens the file
func (s *Secure) Close() error {
	return nil
}
