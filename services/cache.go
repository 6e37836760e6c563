package services

import (
	"sync"
	"time"

	"github.com/Dosada05/tournament-aggregator/models"
)

// Clock отделяет кеш от системного времени для тестов.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// StateCache держит ограниченную по времени мемоизацию собранного представления
// турнира. Фоновой очистки нет: свежесть проверяется лениво при чтении,
// единственный способ инвалидации вне TTL это явный Clear при любой мутации.
type StateCache struct {
	mu    sync.Mutex
	entry *models.TournamentState
	ttl   time.Duration
	clock Clock
}

func NewStateCache(ttl time.Duration) *StateCache {
	return NewStateCacheWithClock(ttl, realClock{})
}

func NewStateCacheWithClock(ttl time.Duration, clock Clock) *StateCache {
	return &StateCache{ttl: ttl, clock: clock}
}

// Get возвращает запись, только если force не задан и запись ещё свежа.
func (c *StateCache) Get(force bool) (*models.TournamentState, bool) {
	if force {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return nil, false
	}
	if c.clock.Now().Sub(c.entry.CreatedAt) >= c.ttl {
		c.entry = nil
		return nil, false
	}
	return c.entry, true
}

func (c *StateCache) Put(entry *models.TournamentState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry.CreatedAt = c.clock.Now()
	c.entry = entry
}

func (c *StateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
