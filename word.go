package addrwait

import (
	"sync/atomic"
	"time"
	"unsafe"
)

// Word is the set of integer types a Registry can watch.
type Word interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// WaitOn is the typed form of Registry.Wait: it blocks while *addr equals
// expected.
func WaitOn[T Word](r *Registry, addr *T, expected T, timeout time.Duration) (WaitResult, error) {
	return r.Wait(unsafe.Pointer(addr), unsafe.Pointer(&expected), unsafe.Sizeof(expected), timeout)
}

// WakeAllOn wakes every goroutine waiting on addr.
func WakeAllOn[T Word](r *Registry, addr *T) int {
	return r.WakeAll(unsafe.Pointer(addr))
}

// WakeOneOn wakes one goroutine waiting on addr.
func WakeOneOn[T Word](r *Registry, addr *T) int {
	return r.WakeOne(unsafe.Pointer(addr))
}

func checkWord(addr, expected unsafe.Pointer, size uintptr) error {
	if addr == nil {
		return invalidArgument("nil address")
	}
	if expected == nil {
		return invalidArgument("nil comparand")
	}
	switch size {
	case 1, 2, 4, 8:
	default:
		return invalidArgument("unsupported word size %d", size)
	}
	if uintptr(addr)%size != 0 {
		return invalidArgument("address %#x not aligned to %d bytes", uintptr(addr), size)
	}
	return nil
}

// equalWord reports whether the words at addr and expected are equal.
// The arguments must have passed checkWord.
func equalWord(addr, expected unsafe.Pointer, size uintptr) bool {
	switch size {
	case 1:
		return *(*uint8)(addr) == *(*uint8)(expected)
	case 2:
		return *(*uint16)(addr) == *(*uint16)(expected)
	case 4:
		return atomic.LoadUint32((*uint32)(addr)) == *(*uint32)(expected)
	default:
		return atomic.LoadUint64((*uint64)(addr)) == *(*uint64)(expected)
	}
}
