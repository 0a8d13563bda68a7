package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the session as two files in a directory: the raw
// credential and the JSON profile.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("session dir path is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Load(_ context.Context) (string, []byte, error) {
	token, err := os.ReadFile(b.path(TokenKey))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", TokenKey, err)
	}

	profile, err := os.ReadFile(b.path(ProfileKey))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", nil, fmt.Errorf("read %s: %w", ProfileKey, err)
	}
	return string(token), profile, nil
}

// Save writes both files to temporaries first and renames them into place.
func (b *FileBackend) Save(_ context.Context, token string, profile []byte) error {
	tokenTmp, err := b.writeTemp(TokenKey, []byte(token))
	if err != nil {
		return err
	}
	profileTmp, err := b.writeTemp(ProfileKey, profile)
	if err != nil {
		os.Remove(tokenTmp)
		return err
	}
	if err := os.Rename(profileTmp, b.path(ProfileKey)); err != nil {
		os.Remove(tokenTmp)
		os.Remove(profileTmp)
		return fmt.Errorf("rename %s: %w", ProfileKey, err)
	}
	if err := os.Rename(tokenTmp, b.path(TokenKey)); err != nil {
		os.Remove(tokenTmp)
		return fmt.Errorf("rename %s: %w", TokenKey, err)
	}
	return nil
}

// Delete removes the credential before the profile.
func (b *FileBackend) Delete(_ context.Context) error {
	for _, key := range []string{TokenKey, ProfileKey} {
		if err := os.Remove(b.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key)
}

func (b *FileBackend) writeTemp(key string, data []byte) (string, error) {
	f, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", key, err)
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return name, nil
}
