package keymutex

import (
	"context"
	"sync"
)

// KeyMutex набор мьютексов по строковому ключу.
// Захват учитывает контекст: ожидание прерывается при его отмене.
// Записи о ключах удаляются, когда их никто не держит и не ждет.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*entry),
	}
}

func (m *KeyMutex) Lock(ctx context.Context, key string) error {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		m.release(key, e)
		m.mu.Unlock()
		return ctx.Err()
	}
}

// TryLock захватывает ключ без ожидания.
func (m *KeyMutex) TryLock(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}

	select {
	case e.ch <- struct{}{}:
		e.refs++
		return true
	default:
		if e.refs == 0 {
			delete(m.locks, key)
		}
		return false
	}
}

// Unlock освобождает ранее захваченный ключ. Освобождение незахваченного ключа паникует.
func (m *KeyMutex) Unlock(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.locks[key]
	if !ok {
		panic("keymutex: unlock of unlocked key " + key)
	}

	select {
	case <-e.ch:
	default:
		panic("keymutex: unlock of unlocked key " + key)
	}
	m.release(key, e)
}

// Len количество ключей, которые сейчас держат или ждут.
func (m *KeyMutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.locks)
}

func (m *KeyMutex) release(key string, e *entry) {
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}
