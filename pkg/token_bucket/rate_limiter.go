package token_bucket

import (
	"math"
	"sync"
	"time"
)

// Limiter решает, пропустить ли очередное действие.
type Limiter interface {
	Allow() bool
}

// TokenBucket хранит дробный остаток токенов, поэтому медленное пополнение
// (меньше токена за интервал между вызовами) не теряется.
type TokenBucket struct {
	mu sync.Mutex

	capacity   float64
	tokens     float64
	refillRate float64 // токенов в секунду
	lastRefill time.Time
	now        func() time.Time
}

// NewTokenBucket создает полный bucket. Отрицательные значения трактуются как ноль.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	c := math.Max(float64(capacity), 0)

	tb := &TokenBucket{
		capacity:   c,
		tokens:     c,
		refillRate: math.Max(refillRate, 0),
		now:        time.Now,
	}
	tb.lastRefill = tb.now()

	return tb
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.advance(t.now())

	if t.tokens < 1 {
		return false
	}

	t.tokens--

	return true
}

// Available возвращает целое число токенов, доступных прямо сейчас.
func (t *TokenBucket) Available() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.advance(t.now())

	return int(t.tokens)
}

func (t *TokenBucket) advance(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.lastRefill = now
	t.tokens = math.Min(t.capacity, t.tokens+elapsed*t.refillRate)
}
