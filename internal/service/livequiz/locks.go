package livequiz

import "sync"

// SessionLocks сериализует переходы состояния по коду сессии.
// Конкурирующие advance/end не должны терять инкременты индекса;
// при ожидаемой нагрузке (десятки участников) мьютекса на код достаточно.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionLocks создает пустой набор блокировок
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock захватывает блокировку кода и возвращает функцию освобождения
func (l *SessionLocks) Lock(code string) func() {
	l.mu.Lock()
	m, ok := l.locks[code]
	if !ok {
		m = &sync.Mutex{}
		l.locks[code] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
