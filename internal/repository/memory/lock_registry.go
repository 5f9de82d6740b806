package memory

import "sync"

// LockRegistry grants at most one in-flight step per session. A second
// TryAcquire for the same session fails until Release, so concurrent
// process-step calls cannot interleave state transitions.
type LockRegistry struct {
	mu     sync.Mutex
	locked map[string]struct{}
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locked: make(map[string]struct{})}
}

func (r *LockRegistry) TryAcquire(sessionId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, held := r.locked[sessionId]; held {
		return false
	}
	r.locked[sessionId] = struct{}{}
	return true
}

func (r *LockRegistry) Release(sessionId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locked, sessionId)
}
