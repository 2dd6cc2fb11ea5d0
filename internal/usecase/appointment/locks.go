package appointment

import "sync"

// DayLocks serializes check-then-write sequences per calendar day
// inside this process. The database transaction covers the rest.
type DayLocks struct {
	mu    sync.Mutex
	locks map[string]*dayLock
}

type dayLock struct {
	mu   sync.Mutex
	refs int
}

func NewDayLocks() *DayLocks {
	return &DayLocks{locks: make(map[string]*dayLock)}
}

// Lock blocks until key is free and returns the matching unlock.
func (l *DayLocks) Lock(key string) func() {
	l.mu.Lock()
	dl, ok := l.locks[key]
	if !ok {
		dl = &dayLock{}
		l.locks[key] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()

	return func() {
		dl.mu.Unlock()

		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
