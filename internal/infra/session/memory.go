package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
)

type entry struct {
	state     domain.DialogueState
	expiresAt time.Time
}

// MemoryStore хранит состояние диалогов в памяти процесса
// Используется, когда Redis не настроен, и в тестах
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]entry
	ttl     time.Duration
	clock   TimeProvider
}

// NewMemoryStore создает хранилище состояний в памяти
func NewMemoryStore(ttl time.Duration, clock TimeProvider) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &MemoryStore{
		entries: make(map[int64]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get возвращает копию состояния чата или пустое состояние
func (s *MemoryStore) Get(_ context.Context, chatID int64) (*domain.DialogueState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[chatID]
	if !ok {
		return &domain.DialogueState{ChatID: chatID}, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.entries, chatID)
		return &domain.DialogueState{ChatID: chatID}, nil
	}

	state := e.state
	return &state, nil
}

// Save сохраняет копию состояния и продлевает TTL
func (s *MemoryStore) Save(_ context.Context, state *domain.DialogueState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	state.UpdatedAt = now
	s.entries[state.ChatID] = entry{state: *state, expiresAt: now.Add(s.ttl)}

	return nil
}

// Delete удаляет состояние чата
func (s *MemoryStore) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, chatID)
	return nil
}

// Len количество хранимых состояний, включая еще не вычищенные истекшие
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup удаляет истекшие состояния и возвращает их количество
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for chatID, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, chatID)
			removed++
		}
	}
	return removed
}

// RunJanitor периодически вызывает Cleanup до отмены контекста
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
