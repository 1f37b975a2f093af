package addrwait

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/llxisdsh/pb"

	"github.com/llxisdsh/addrwait/internal/opt"
)

// Infinite is the timeout that never elapses.
const Infinite time.Duration = -1

// Registry maps watched addresses to wait slots.
//
// A goroutine calls Wait with an address and a snapshot of the word stored
// there; if the word still equals the snapshot it parks on the slot bound to
// the address until WakeAll/WakeOne is called for that address or its
// timeout elapses. The comparison and the registration happen under the same
// lock that the wake operations take, so a writer that updates the word and
// then wakes can never slip between the two.
//
// A single lock protects the whole registry. It is held for every lookup,
// bind, unbind and count update, and released only while a waiter is
// parked.
//
// It is zero-value usable: a zero Registry is unbounded with the default
// initial capacity.
type Registry struct {
	_  noCopy
	mu ticketLock
	_  [opt.CacheLineSize_ - unsafe.Sizeof(ticketLock{})%opt.CacheLineSize_]byte

	cfg RegistryConfig

	// index maps a watched address to its slot in the arena.
	// It is only touched with mu held.
	index pb.MapOf[uintptr, int32]
	slots []waitSlot
	free  []int32

	// freed parks waiters that found a bounded registry full.
	freed cond

	bound     int
	binds     uint64
	unbinds   uint64
	exhausted uint64
}

// waitSlot is the wait group of one address. A slot is either free
// (addr == 0, no waiters) or bound (addr != 0, waiters >= 1).
type waitSlot struct {
	addr    uintptr
	waiters int
	cond    cond
}

// Stats is a point-in-time view of a Registry.
type Stats struct {
	// Bound is the number of addresses with at least one parked waiter.
	Bound int
	// Capacity is the number of slots in the arena, bound or free.
	Capacity int
	// Binds and Unbinds count slot bindings since creation. They are equal
	// whenever nobody is waiting.
	Binds   uint64
	Unbinds uint64
	// Exhausted counts Wait calls that found a bounded registry full.
	Exhausted uint64
}

// NewRegistry creates a new Registry configured by options.
//
// Example:
//
//	r := NewRegistry(WithMaxSlots(256), WithExhaustPolicy(ExhaustWait))
func NewRegistry(options ...func(*RegistryConfig)) *Registry {
	r := &Registry{}
	for _, o := range options {
		o(&r.cfg)
	}
	r.init()
	return r
}

func (r *Registry) init() {
	if r.slots == nil {
		r.slots = make([]waitSlot, 0, r.cfg.initialCapacity())
	}
}

// Wait blocks the calling goroutine while the size-byte word at addr equals
// the word at expected.
//
// size must be 1, 2, 4 or 8 and addr must be aligned to size. Words of 4 and
// 8 bytes are read atomically; narrower words are read plainly, so their
// writers must be ordered with the waiter by other means.
//
// It returns Signaled immediately if the words already differ, Signaled
// after a wake, or TimedOut once timeout elapses. A negative timeout (see
// Infinite) never elapses. Signaled does not guarantee that the word changed:
// callers re-check their condition and call Wait again in a loop.
func (r *Registry) Wait(addr, expected unsafe.Pointer, size uintptr, timeout time.Duration) (WaitResult, error) {
	return r.WaitContext(context.Background(), addr, expected, size, timeout)
}

// WaitContext is like Wait but also stops waiting when ctx is done, in which
// case it returns Canceled and ctx.Err().
func (r *Registry) WaitContext(
	ctx context.Context,
	addr, expected unsafe.Pointer,
	size uintptr,
	timeout time.Duration,
) (WaitResult, error) {
	if err := checkWord(addr, expected, size); err != nil {
		return Failed, err
	}

	d := newDeadline(timeout)
	defer d.stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()

	key := uintptr(addr)
	for {
		if !equalWord(addr, expected, size) {
			return Signaled, nil
		}
		if idx, ok := r.bind(key); ok {
			return r.parkOn(ctx, idx, d)
		}

		r.exhausted++
		if r.cfg.policy == ExhaustFail {
			return Failed, fmt.Errorf("%w: %d addresses already watched",
				ErrResourceExhausted, r.bound)
		}
		w := r.freed.enqueue()
		err := r.park(ctx, w, d)
		if w.signaled {
			// A slot was released; the word may have changed meanwhile.
			continue
		}
		r.freed.remove(w)
		return outcome(err)
	}
}

// parkOn registers the caller as a waiter of slot idx and parks it.
// The waiter count is dropped on every return path.
func (r *Registry) parkOn(ctx context.Context, idx int32, d *deadline) (WaitResult, error) {
	s := &r.slots[idx]
	s.waiters++
	defer r.leave(idx)

	w := s.cond.enqueue()
	err := r.park(ctx, w, d)
	if w.signaled {
		return Signaled, nil
	}
	// The arena may have grown while we were parked.
	r.slots[idx].cond.remove(w)
	return outcome(err)
}

// park releases the registry lock, blocks on w and reacquires the lock.
func (r *Registry) park(ctx context.Context, w *waiter, d *deadline) error {
	r.mu.Unlock()
	defer r.mu.Lock()
	return w.block(ctx, d)
}

func outcome(err error) (WaitResult, error) {
	if err == errExpired {
		return TimedOut, nil
	}
	return Canceled, err
}

// bind returns the slot bound to key, binding a free one if needed.
// It reports false when a bounded registry has no slot left.
func (r *Registry) bind(key uintptr) (int32, bool) {
	if idx, ok := r.index.Load(key); ok {
		return idx, true
	}

	var idx int32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else if r.cfg.maxSlots > 0 && len(r.slots) >= r.cfg.maxSlots {
		return -1, false
	} else {
		r.slots = append(r.slots, waitSlot{})
		idx = int32(len(r.slots) - 1)
	}

	r.slots[idx].addr = key
	r.index.Store(key, idx)
	r.bound++
	r.binds++
	return idx, true
}

// leave drops one waiter from slot idx and unbinds the slot when it was the
// last one, before the lock is released.
func (r *Registry) leave(idx int32) {
	s := &r.slots[idx]
	s.waiters--
	if s.waiters > 0 {
		return
	}

	r.index.Delete(s.addr)
	*s = waitSlot{}
	r.free = append(r.free, idx)
	r.bound--
	r.unbinds++
	r.freed.broadcast()
}

// WakeAll wakes every goroutine parked on addr and returns how many were
// woken. Waking an address nobody waits on is a no-op.
func (r *Registry) WakeAll(addr unsafe.Pointer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.index.Load(uintptr(addr)); ok {
		return r.slots[idx].cond.broadcast()
	}
	r.wakeStalled()
	return 0
}

// WakeOne wakes one goroutine parked on addr, if any, and returns how many
// were woken (0 or 1).
func (r *Registry) WakeOne(addr unsafe.Pointer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.index.Load(uintptr(addr)); ok {
		return r.slots[idx].cond.signal()
	}
	r.wakeStalled()
	return 0
}

// wakeStalled sends goroutines waiting for a free slot back to their
// compare. They are registered under no address, so a wake for an unbound
// address may be meant for one of them; the others re-park.
// They are not counted in the WakeAll/WakeOne result.
func (r *Registry) wakeStalled() {
	if r.freed.n > 0 {
		r.freed.broadcast()
	}
}

// Waiters returns the number of goroutines currently counted as waiting on
// addr. A woken waiter is counted until it has left its slot.
func (r *Registry) Waiters(addr unsafe.Pointer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.index.Load(uintptr(addr)); ok {
		return r.slots[idx].waiters
	}
	return 0
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Bound:     r.bound,
		Capacity:  len(r.slots),
		Binds:     r.binds,
		Unbinds:   r.unbinds,
		Exhausted: r.exhausted,
	}
}
