package addrwait

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when Wait receives a nil address, a nil
	// comparand, an unsupported word size or a misaligned address. No state
	// is touched when it is returned.
	ErrInvalidArgument = errors.New("addrwait: invalid argument")

	// ErrResourceExhausted is returned when a new address needs a slot but
	// every slot of a bounded registry is bound to another address and the
	// registry is configured with ExhaustFail.
	ErrResourceExhausted = errors.New("addrwait: wait slots exhausted")

	// errExpired is the internal park outcome for an elapsed timeout.
	errExpired = errors.New("addrwait: timeout expired")
)

// WaitResult is the outcome of a Wait that did not fail.
type WaitResult uint8

const (
	// Failed accompanies a non-nil error from argument validation or
	// capacity exhaustion.
	Failed WaitResult = iota
	// Signaled means the watched word already differed from the comparand,
	// or the waiter was woken by WakeAll/WakeOne.
	Signaled
	// TimedOut means the timeout elapsed without a wake.
	TimedOut
	// Canceled means the context passed to WaitContext was done first.
	Canceled
)

func (r WaitResult) String() string {
	switch r {
	case Failed:
		return "failed"
	case Signaled:
		return "signaled"
	case TimedOut:
		return "timed out"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("WaitResult(%d)", uint8(r))
	}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
