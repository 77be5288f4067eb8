// Package keylock serializes mutating ledger operations per owner. All
// read-modify-write sequences for one owner run under the same mutex;
// different owners never contend.
package keylock

import (
	"sync"
)

// KeyLock hands out one mutex per key, created on first use. Mutexes are
// retained for the life of the process: the map holds one entry per key ever
// locked.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

func (k *KeyLock) Lock(key string) {
	k.get(key).Lock()
}

func (k *KeyLock) Unlock(key string) {
	k.get(key).Unlock()
}
