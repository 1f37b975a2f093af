package addrwait

import (
	"sync/atomic"
	"time"
	"unsafe"
)

// A Futex is a 32-bit word that goroutines can wait on until it changes,
// backed by the default registry.
//
// A Futex does not change the underlying value, it only reads it before
// parking to prevent lost wake-ups.
//
// It is zero-value usable.
type Futex struct {
	atomic.Uint32
}

// Wait parks the caller while the futex value equals cmp.
// It returns true if the value differed or the caller was woken by Wake or
// WakeAll, and false if timeout elapsed first.
func (f *Futex) Wait(cmp uint32, timeout time.Duration) bool {
	res, err := defaultRegistry.Wait(f.addr(), unsafe.Pointer(&cmp), 4, timeout)
	if err != nil {
		// f is aligned and non-nil and the default registry is unbounded.
		panic(err)
	}
	return res == Signaled
}

// Wake a single waiter.
func (f *Futex) Wake() {
	defaultRegistry.WakeOne(f.addr())
}

// Wake all waiters.
func (f *Futex) WakeAll() {
	defaultRegistry.WakeAll(f.addr())
}

func (f *Futex) addr() unsafe.Pointer {
	return unsafe.Pointer(&f.Uint32)
}
