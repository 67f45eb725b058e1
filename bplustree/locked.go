package bplus

import "sync"

// SyncStore serializes every operation on a Store behind one mutex.
type SyncStore struct {
	mu sync.Mutex
	s  *Store
}

func NewSyncStore(s *Store) *SyncStore {
	return &SyncStore{s: s}
}

func (l *SyncStore) Get(key, out []byte) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Get(key, out)
}

func (l *SyncStore) Lookup(key []byte) ([]byte, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Lookup(key)
}

func (l *SyncStore) Set(key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Set(key, value)
}

func (l *SyncStore) Delete(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Delete(key)
}

// Scan holds the lock for the whole scan; fn must not call back into l.
func (l *SyncStore) Scan(start, end []byte, fn func(key, value []byte) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Scan(start, end, fn)
}

func (l *SyncStore) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Sync()
}

func (l *SyncStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Close()
}
