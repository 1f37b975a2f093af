// Package addrwait lets goroutines block until a word in memory changes,
// and lets other goroutines wake them by address.
//
// It is a user-space emulation of futex-style waiting (WaitOnAddress /
// WakeByAddressAll / WakeByAddressSingle). A Registry keeps one wait slot
// per watched address behind a single lock; the compare of the watched
// word and the registration of the waiter happen atomically with respect
// to wakers, so a writer that stores a new value and then wakes cannot be
// missed.
//
// Typical use is a compare-and-wait loop:
//
//	for {
//		v := atomic.LoadUint32(&state)
//		if ready(v) {
//			break
//		}
//		addrwait.WaitOn(r, &state, v, addrwait.Infinite)
//	}
//
// and on the writer side:
//
//	atomic.StoreUint32(&state, next)
//	addrwait.WakeAllOn(r, &state)
//
// Addresses are compared by identity only. Waiting is in-process; waits on
// several addresses at once are not supported.
package addrwait
