package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type store interface {
	Get(ctx context.Context, chatID int64) (*domain.DialogueState, error)
	Save(ctx context.Context, state *domain.DialogueState) error
	Delete(ctx context.Context, chatID int64) error
}

func newRedisStore(t *testing.T, clock TimeProvider) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour, clock), mr
}

func stores(t *testing.T) map[string]store {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	rs, _ := newRedisStore(t, clock)
	return map[string]store{
		"memory": NewMemoryStore(time.Hour, clock),
		"redis":  rs,
	}
}

func TestStore_RoundTripAndIsolation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := s.Get(ctx, 100)
			require.NoError(t, err)
			assert.Equal(t, int64(100), empty.ChatID)
			assert.Equal(t, domain.StepStart, empty.Step())

			require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 100, SalonID: 1, Date: "2025-01-15", Time: "10:00"}))
			require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 200, SalonID: 2}))

			got, err := s.Get(ctx, 100)
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.SalonID)
			assert.Equal(t, "2025-01-15", got.Date)
			assert.EqualValues(t, "10:00", got.Time)

			other, err := s.Get(ctx, 200)
			require.NoError(t, err)
			assert.Equal(t, int64(2), other.SalonID)
			assert.Empty(t, other.Date)

			require.NoError(t, s.Delete(ctx, 100))
			got, err = s.Get(ctx, 100)
			require.NoError(t, err)
			assert.Zero(t, got.SalonID)
		})
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(time.Hour, clock)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 1, SalonID: 3}))
	require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 2, SalonID: 4}))

	clock.Advance(59 * time.Minute)
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.SalonID)

	clock.Advance(2 * time.Minute)
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, got.SalonID)

	assert.Equal(t, 1, s.Cleanup())
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore(time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 1, SalonID: 3}))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	got.SalonID = 99

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), again.SalonID)
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.DialogueState{ChatID: 7, SalonID: 1}))
	assert.Equal(t, time.Hour, mr.TTL(key(7)))

	mr.FastForward(time.Hour + time.Second)

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, got.SalonID)
}

func TestRedisStore_CorruptedState(t *testing.T) {
	s, mr := newRedisStore(t, nil)

	require.NoError(t, mr.Set(key(5), "{not json"))

	_, err := s.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDecode)
}
