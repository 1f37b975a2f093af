package addrwait

import (
	"sync/atomic"
)

// ticketLock is a fair, FIFO spin-lock guarding a Registry.
//
// Unlike sync.Mutex, which allows "barging" (newcomers can steal the lock),
// ticketLock hands the lock out in the exact order Lock was called, so a
// burst of wakers cannot starve a waiter that is trying to get back in
// after its park.
//
// Implementation:
// It uses the classic "ticket" algorithm.
//   - Lock(): Takes a ticket number. Spins/Sleeps until `serving` == `my_ticket`.
//   - Unlock(): Increments `serving`, allowing the next ticket holder to proceed.
//
// Every registry critical section is a map lookup plus a few field updates;
// nothing blocks while the lock is held.
type ticketLock struct {
	_       noCopy
	next    atomic.Uint32
	serving atomic.Uint32
}

// Lock acquires the lock. Blocks until the lock is available.
func (m *ticketLock) Lock() {
	my := m.next.Add(1) - 1
	var spins int
	for {
		if m.serving.Load() == my {
			return
		}
		delay(&spins)
	}
}

// Unlock releases the lock.
func (m *ticketLock) Unlock() {
	m.serving.Add(1)
}
