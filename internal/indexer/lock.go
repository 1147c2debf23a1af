package indexer

import "sync/atomic"

// IndexLock is a non-blocking lock held for the duration of a catalogue load.
type IndexLock struct {
	state atomic.Int32 // 0 = free, 1 = loading
}

// TryAcquire reports whether the lock was free and is now held by the caller.
func (l *IndexLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release frees the lock. Only the holder may call it.
func (l *IndexLock) Release() {
	l.state.Store(0)
}

// Held reports whether a load is in progress.
func (l *IndexLock) Held() bool {
	return l.state.Load() == 1
}
