package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

const (
	billsDir    = "bills"
	keysDir     = "bills_keys"
	identityDir = "identity"

	identityFile = "identity.json"
	peerKeyFile  = "peer_key"
)

// FileStore keeps one indented JSON file per bill under <root>/bills and the
// bill keys under <root>/bills_keys.
type FileStore struct {
	root string
}

// NewFileStore creates the directory layout under root.
func NewFileStore(root string) (*FileStore, error) {
	for _, dir := range []string{billsDir, keysDir, identityDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o700); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", dir, err)
		}
	}
	return &FileStore{root: root}, nil
}

type chainFile struct {
	Blocks []model.Block `json:"blocks"`
}

func (s *FileStore) billPath(billName string) (string, error) {
	if err := validName(billName); err != nil {
		return "", err
	}
	return filepath.Join(s.root, billsDir, billName+".json"), nil
}

func (s *FileStore) keysPath(billName string) (string, error) {
	if err := validName(billName); err != nil {
		return "", err
	}
	return filepath.Join(s.root, keysDir, billName+".json"), nil
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\,`) || name == "." || name == ".." {
		return fmt.Errorf("invalid bill name %q", name)
	}
	return nil
}

// LoadBlocks reads the chain file of billName.
func (s *FileStore) LoadBlocks(_ context.Context, billName string) ([]model.Block, error) {
	path, err := s.billPath(billName)
	if err != nil {
		return nil, err
	}
	var file chainFile
	if err := readJSON(path, &file); err != nil {
		return nil, fmt.Errorf("read chain %s: %w", billName, err)
	}
	return file.Blocks, nil
}

// SaveBlocks replaces the chain file of billName.
func (s *FileStore) SaveBlocks(_ context.Context, billName string, blocks []model.Block) error {
	path, err := s.billPath(billName)
	if err != nil {
		return err
	}
	if err := writeJSON(path, chainFile{Blocks: blocks}); err != nil {
		return fmt.Errorf("write chain %s: %w", billName, err)
	}
	return nil
}

// HasBill reports whether a chain file exists for billName.
func (s *FileStore) HasBill(_ context.Context, billName string) (bool, error) {
	path, err := s.billPath(billName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat chain %s: %w", billName, err)
	}
}

// ListBills returns the names of all stored bills, sorted.
func (s *FileStore) ListBills(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, billsDir))
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadKeys reads the key file of billName.
func (s *FileStore) LoadKeys(_ context.Context, billName string) (model.BillKeys, error) {
	path, err := s.keysPath(billName)
	if err != nil {
		return model.BillKeys{}, err
	}
	var keys model.BillKeys
	if err := readJSON(path, &keys); err != nil {
		return model.BillKeys{}, fmt.Errorf("read keys %s: %w", billName, err)
	}
	return keys, nil
}

// SaveKeys writes the key file of billName.
func (s *FileStore) SaveKeys(_ context.Context, billName string, keys model.BillKeys) error {
	path, err := s.keysPath(billName)
	if err != nil {
		return err
	}
	if err := writeJSON(path, keys); err != nil {
		return fmt.Errorf("write keys %s: %w", billName, err)
	}
	return nil
}

// LoadIdentity reads the local identity.
func (s *FileStore) LoadIdentity(_ context.Context) (model.LocalIdentity, error) {
	var identity model.LocalIdentity
	if err := readJSON(filepath.Join(s.root, identityDir, identityFile), &identity); err != nil {
		return model.LocalIdentity{}, fmt.Errorf("read identity: %w", err)
	}
	return identity, nil
}

// SaveIdentity writes the local identity.
func (s *FileStore) SaveIdentity(_ context.Context, identity model.LocalIdentity) error {
	if err := writeJSON(filepath.Join(s.root, identityDir, identityFile), identity); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}

// LoadPeerKey reads the marshaled network private key.
func (s *FileStore) LoadPeerKey(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, identityDir, peerKeyFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read peer key: %w", err)
	}
	return data, nil
}

// SavePeerKey writes the marshaled network private key.
func (s *FileStore) SavePeerKey(_ context.Context, key []byte) error {
	if err := writeFile(filepath.Join(s.root, identityDir, peerKeyFile), key); err != nil {
		return fmt.Errorf("write peer key: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, data)
}

// writeFile replaces path atomically so a crash never leaves a truncated chain.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
