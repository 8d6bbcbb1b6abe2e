package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/zalando/go-keyring"
)

// KeyringService is the keychain service that holds system passwords, keyed
// by system name.
const KeyringService = "fadp"

// StoreFile is the structure of systems.toml.
type StoreFile struct {
	Systems []Endpoint `toml:"system"`
}

// Store keeps saved backend systems in a TOML file. Passwords never reach the
// file; they live in the OS keychain.
type Store struct {
	Path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads all saved systems sorted by name. A missing file yields none.
func (s *Store) Load() ([]Endpoint, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat system store %s: %w", s.Path, err)
	}

	var file StoreFile
	if _, err := toml.DecodeFile(s.Path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode system store %s: %w", s.Path, err)
	}
	sort.Slice(file.Systems, func(i, j int) bool { return file.Systems[i].Name < file.Systems[j].Name })
	for i := range file.Systems {
		if file.Systems[i].Username == "" {
			continue
		}
		// Without a keychain entry the password comes from the flags or FADP_PASSWORD.
		if password, err := keyring.Get(KeyringService, file.Systems[i].Name); err == nil {
			file.Systems[i].Password = password
		}
	}
	return file.Systems, nil
}

// Save replaces the store content with systems.
func (s *Store) Save(systems []Endpoint) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.Path, err)
	}
	file, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create/truncate system store %s: %w", s.Path, err)
	}
	defer func() { _ = file.Close() }()

	if err := toml.NewEncoder(file).Encode(StoreFile{Systems: systems}); err != nil {
		return fmt.Errorf("failed to encode system store %s: %w", s.Path, err)
	}
	for _, e := range systems {
		if e.Password == "" {
			continue
		}
		if err := keyring.Set(KeyringService, e.Name, e.Password); err != nil {
			return fmt.Errorf("failed to store password of system %s in the keychain: %w", e.Name, err)
		}
	}
	return nil
}

// Get returns the saved system called name.
func (s *Store) Get(name string) (*Endpoint, error) {
	systems, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range systems {
		if systems[i].Name == name {
			return &systems[i], nil
		}
	}
	return nil, nil
}

// Add saves e, replacing a system with the same name.
func (s *Store) Add(e Endpoint) error {
	if e.Name == "" {
		return fmt.Errorf("system name cannot be empty")
	}
	systems, err := s.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range systems {
		if systems[i].Name == e.Name {
			systems[i] = e
			replaced = true
		}
	}
	if !replaced {
		systems = append(systems, e)
	}
	return s.Save(systems)
}

// Remove deletes the system called name and reports whether it existed.
func (s *Store) Remove(name string) (bool, error) {
	systems, err := s.Load()
	if err != nil {
		return false, err
	}
	kept := systems[:0]
	for _, e := range systems {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(systems) {
		return false, nil
	}
	if err := s.Save(kept); err != nil {
		return true, err
	}
	// An unavailable keychain holds no password either.
	_ = keyring.Delete(KeyringService, name)
	return true, nil
}
