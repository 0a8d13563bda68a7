package session

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/internal/domain"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleProfile() domain.UserProfile {
	return domain.UserProfile{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, Phone: "+84901234567"}
}

func TestStore_SetThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), quietLogger())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "tok123", sampleProfile()))

	snap := store.Get()
	assert.Equal(t, "tok123", snap.Token)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, sampleProfile(), *snap.Profile)
	assert.True(t, snap.Present())
}

func TestStore_GetReturnsCallerOwnedProfile(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tok", sampleProfile()))

	snap := store.Get()
	snap.Profile.Name = "changed"

	assert.Equal(t, "Admin", store.Get().Profile.Name)
}

func TestStore_ClearRemovesBoth(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store, err := Open(ctx, backend, quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tok", sampleProfile()))

	require.NoError(t, store.Clear(ctx))

	snap := store.Get()
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.Present())
	_, _, err = backend.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SetRejectsEmptyCredential(t *testing.T) {
	store, err := Open(context.Background(), NewMemoryBackend(), quietLogger())
	require.NoError(t, err)

	assert.Error(t, store.Set(context.Background(), "", sampleProfile()))
	assert.False(t, store.Get().Present())
}

func TestStore_EmptyBackendIsAbsent(t *testing.T) {
	store, err := Open(context.Background(), NewMemoryBackend(), quietLogger())
	require.NoError(t, err)

	snap := store.Get()
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.Profile)
}

func TestFileBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store, err := Open(ctx, backend, quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tok123", sampleProfile()))
	require.NoError(t, store.Close())

	reopenedBackend, err := NewFileBackend(dir)
	require.NoError(t, err)
	reopened, err := Open(ctx, reopenedBackend, quietLogger())
	require.NoError(t, err)

	snap := reopened.Get()
	assert.Equal(t, "tok123", snap.Token)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, sampleProfile(), *snap.Profile)

	raw, err := os.ReadFile(filepath.Join(dir, TokenKey))
	require.NoError(t, err)
	assert.Equal(t, "tok123", string(raw))
}

func TestFileBackend_CorruptedProfileLoadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TokenKey), []byte("tok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProfileKey), []byte("{not json"), 0o600))

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store, err := Open(ctx, backend, quietLogger())
	require.NoError(t, err)

	snap := store.Get()
	assert.Equal(t, "tok", snap.Token)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.Present())
}

func TestFileBackend_ClearRemovesFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store, err := Open(ctx, backend, quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tok", sampleProfile()))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err = os.Stat(filepath.Join(dir, TokenKey))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(dir, ProfileKey))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisBackend_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	backend := NewRedisBackend(client, "test:")

	store, err := Open(ctx, backend, quietLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tok123", sampleProfile()))

	token, err := client.Get(ctx, "test:"+TokenKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	reopened, err := Open(ctx, NewRedisBackend(client, "test:"), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, sampleProfile(), *reopened.Get().Profile)

	require.NoError(t, reopened.Clear(ctx))
	n, err := client.Exists(ctx, "test:"+TokenKey, "test:"+ProfileKey).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisBackend_CorruptedProfile(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	require.NoError(t, client.Set(ctx, "p:"+TokenKey, "tok", 0).Err())
	require.NoError(t, client.Set(ctx, "p:"+ProfileKey, "<<garbage>>", 0).Err())

	store, err := Open(ctx, NewRedisBackend(client, "p:"), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "tok", store.Get().Token)
	assert.Nil(t, store.Get().Profile)
}

func TestNewRedisClient_EmptyURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_ConcurrentReadersSeeWholePairs(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), quietLogger())
	require.NoError(t, err)

	profiles := map[string]domain.UserProfile{
		"tok-a": {ID: "a", Name: "A"},
		"tok-b": {ID: "b", Name: "B"},
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				_ = store.Set(ctx, "tok-a", profiles["tok-a"])
			} else {
				_ = store.Set(ctx, "tok-b", profiles["tok-b"])
			}
		}
		close(stop)
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			return
		default:
		}
		snap := store.Get()
		if snap.Token == "" {
			continue
		}
		require.NotNil(t, snap.Profile)
		assert.Equal(t, profiles[snap.Token].ID, snap.Profile.ID)
	}
}
