package token_bucket

import "time"

// SetClock подменяет источник времени и отсчитывает пополнение от now().
func (t *TokenBucket) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.now = now
	t.lastRefill = now()
}
