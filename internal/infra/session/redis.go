package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

const keyPrefix = "beauty_bot:dialogue:"

// RedisStore хранит состояние диалогов в Redis с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  TimeProvider
}

// NewRedisStore создает хранилище состояний поверх Redis
func NewRedisStore(client *redis.Client, ttl time.Duration, clock TimeProvider) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &RedisStore{client: client, ttl: ttl, clock: clock}
}

// Get возвращает состояние чата или пустое состояние, если его нет или оно истекло
func (s *RedisStore) Get(ctx context.Context, chatID int64) (*domain.DialogueState, error) {
	data, err := s.client.Get(ctx, key(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.DialogueState{ChatID: chatID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - chat %d: %v", ErrStorage, chatID, err)
	}

	var state domain.DialogueState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: Get - chat %d: %v", ErrDecode, chatID, err)
	}
	state.ChatID = chatID

	return &state, nil
}

// Save сохраняет состояние и продлевает TTL
func (s *RedisStore) Save(ctx context.Context, state *domain.DialogueState) error {
	state.UpdatedAt = s.clock.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: Save - chat %d: %v", ErrEncode, state.ChatID, err)
	}

	if err := s.client.Set(ctx, key(state.ChatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - chat %d: %v", ErrStorage, state.ChatID, err)
	}

	return nil
}

// Delete удаляет состояние чата
func (s *RedisStore) Delete(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, key(chatID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - chat %d: %v", ErrStorage, chatID, err)
	}
	return nil
}

func key(chatID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, chatID)
}
