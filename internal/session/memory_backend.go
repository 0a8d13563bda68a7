package session

import (
	"context"
	"sync"
)

// MemoryBackend lives only as long as the process.
type MemoryBackend struct {
	mu      sync.Mutex
	token   string
	profile []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(_ context.Context) (string, []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.token == "" {
		return "", nil, ErrNotFound
	}
	return b.token, append([]byte(nil), b.profile...), nil
}

func (b *MemoryBackend) Save(_ context.Context, token string, profile []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
	b.profile = append([]byte(nil), profile...)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = ""
	b.profile = nil
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
