package memory

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLockRegistrySerializesPerSession(t *testing.T) {
	r := NewLockRegistry()

	if !r.TryAcquire("s1") {
		t.Fatal("first acquire should succeed")
	}
	if r.TryAcquire("s1") {
		t.Fatal("second acquire on the same session should fail")
	}
	// Other sessions are unaffected.
	if !r.TryAcquire("s2") {
		t.Fatal("different session should acquire independently")
	}

	r.Release("s1")
	if !r.TryAcquire("s1") {
		t.Fatal("acquire after release should succeed")
	}
}

func TestLockRegistryConcurrentAcquire(t *testing.T) {
	r := NewLockRegistry()

	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryAcquire("contested") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("expected exactly one winner, got %d", got)
	}
}
