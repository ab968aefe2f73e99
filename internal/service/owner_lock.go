package service

import "sync"

// ownerLocks 按持有者加锁，最后一个持有或等待者释放后删除条目
type ownerLocks struct {
	mu      sync.Mutex
	entries map[string]*ownerLockEntry
}

type ownerLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{entries: make(map[string]*ownerLockEntry)}
}

// acquire 获取 owner 的锁，返回的函数只能调用一次
func (l *ownerLocks) acquire(owner string) func() {
	l.mu.Lock()
	entry, ok := l.entries[owner]
	if !ok {
		entry = &ownerLockEntry{}
		l.entries[owner] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, owner)
		}
		l.mu.Unlock()
	}
}

func (l *ownerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
