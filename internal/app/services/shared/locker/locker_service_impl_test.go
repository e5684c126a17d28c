package locker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	values map[string]string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: make(map[string]string)}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	f.values[key] = `"` + value.(string) + `"`
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = `"` + value.(string) + `"`
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("TryLock acquires a free lock", func(t *testing.T) {
		svc := &lockService{redisRepo: newFakeRedisRepository(), Log: zap.NewNop()}

		acquired, token, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err, "acquiring a free lock should not error")
		assert.True(t, acquired, "free lock should be acquired")
		assert.NotEmpty(t, token, "acquired lock should return a token")
	})

	t.Run("TryLock does not acquire a held lock", func(t *testing.T) {
		repo := newFakeRedisRepository()
		svc := &lockService{redisRepo: repo, Log: zap.NewNop()}

		acquired, _, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)
		assert.True(t, acquired)

		acquired, token, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err, "contended TryLock should not error")
		assert.False(t, acquired, "held lock should not be acquired again")
		assert.Empty(t, token, "contended TryLock should return no token")
	})

	t.Run("Unlock releases an owned lock", func(t *testing.T) {
		repo := newFakeRedisRepository()
		svc := &lockService{redisRepo: repo, Log: zap.NewNop()}

		_, token, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)

		err = svc.Unlock(ctx, "booking:test:lock", token)
		assert.NoError(t, err, "unlocking an owned lock should succeed")

		acquired, _, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)
		assert.True(t, acquired, "lock should be acquirable again after unlock")
	})

	t.Run("Unlock refuses a lock owned by someone else", func(t *testing.T) {
		repo := newFakeRedisRepository()
		svc := &lockService{redisRepo: repo, Log: zap.NewNop()}

		_, _, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)

		err = svc.Unlock(ctx, "booking:test:lock", "some-other-token")
		assert.Error(t, err, "unlocking with the wrong token should fail")

		acquired, _, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)
		assert.False(t, acquired, "lock should still be held after rejected unlock")
	})

	t.Run("Unlock is a no-op when the lock already expired", func(t *testing.T) {
		svc := &lockService{redisRepo: newFakeRedisRepository(), Log: zap.NewNop()}

		err := svc.Unlock(ctx, "booking:test:lock", "stale-token")
		assert.NoError(t, err, "unlocking an absent lock should not error")
	})

	t.Run("Refresh extends an owned lock", func(t *testing.T) {
		repo := newFakeRedisRepository()
		svc := &lockService{redisRepo: repo, Log: zap.NewNop()}

		_, token, err := svc.TryLock(ctx, "booking:test:lock", time.Minute)
		assert.NoError(t, err)

		err = svc.Refresh(ctx, "booking:test:lock", token, time.Minute)
		assert.NoError(t, err, "refreshing an owned lock should succeed")

		err = svc.Refresh(ctx, "booking:test:lock", "some-other-token", time.Minute)
		assert.Error(t, err, "refreshing with the wrong token should fail")
	})
}
