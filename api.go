package addrwait

import (
	"math"
	"time"
	"unsafe"
)

// defaultRegistry backs the package-level functions and Futex.
var defaultRegistry Registry

// Default returns the registry used by the package-level functions.
func Default() *Registry {
	return &defaultRegistry
}

// TimeoutMillis converts a millisecond timeout to a duration, mapping
// math.MaxUint32 to Infinite.
func TimeoutMillis(ms uint32) time.Duration {
	if ms == math.MaxUint32 {
		return Infinite
	}
	return time.Duration(ms) * time.Millisecond
}

// WaitOnAddress waits on the default registry while the size-byte word at
// addr equals the word at compare.
//
// It returns true if the word differed or the caller was woken, and false
// with a nil error if timeout elapsed. A non-nil error is ErrInvalidArgument
// or ErrResourceExhausted.
//
// Unlike the Win32 WaitOnAddress, addr must be aligned to size: a misaligned
// address fails with ErrInvalidArgument, because the 4- and 8-byte words are
// read with atomic loads.
func WaitOnAddress(addr, compare unsafe.Pointer, size uintptr, timeout time.Duration) (bool, error) {
	res, err := defaultRegistry.Wait(addr, compare, size, timeout)
	return res == Signaled, err
}

// WakeByAddressAll wakes all goroutines waiting on addr in the default
// registry.
func WakeByAddressAll(addr unsafe.Pointer) {
	defaultRegistry.WakeAll(addr)
}

// WakeByAddressSingle wakes one goroutine waiting on addr in the default
// registry.
func WakeByAddressSingle(addr unsafe.Pointer) {
	defaultRegistry.WakeOne(addr)
}
