package services

import "sync"

// memberLocks serializes balance-affecting operations per member. Every
// check-then-append sequence (withdraw, share transfer, repay) runs with the
// member's lock held across both the aggregate read and the conditional
// write, so two concurrent withdrawals cannot both observe the same
// pre-withdrawal balance and overdraw the account.
//
// Locks are never released from the map; the member population is small and
// a stale entry is a single mutex.
type memberLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewMemberLocks creates a lock registry shared by the ledger and loan services
func NewMemberLocks() *memberLocks {
	return &memberLocks{locks: make(map[uint]*sync.Mutex)}
}

// For returns the mutex for one member, creating it on first use
func (m *memberLocks) For(userID uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	return lock
}
