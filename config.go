package addrwait

import (
	"fmt"
)

// ============================================================================
// Configuration
// ============================================================================

const (
	// defaultCapacity matches the table size of the classic fixed-size
	// WaitOnAddress emulation. It only sizes the initial slot arena.
	defaultCapacity = 256
)

// ExhaustPolicy selects what Wait does when a bounded registry has no free
// slot for a new address.
type ExhaustPolicy uint8

const (
	// ExhaustFail makes Wait return ErrResourceExhausted.
	ExhaustFail ExhaustPolicy = iota
	// ExhaustWait makes Wait park until a slot is released or its timeout
	// elapses, then re-compare the watched word and retry.
	ExhaustWait
)

func (p ExhaustPolicy) String() string {
	switch p {
	case ExhaustFail:
		return "fail"
	case ExhaustWait:
		return "wait"
	default:
		return fmt.Sprintf("ExhaustPolicy(%d)", uint8(p))
	}
}

// RegistryConfig defines configurable options for Registry initialization.
type RegistryConfig struct {
	// capacity is the number of slots pre-allocated in the arena.
	// If zero or negative, defaultCapacity is used.
	capacity int

	// maxSlots bounds the number of distinct addresses that can be waited
	// on at the same time. Zero means the arena grows without bound.
	maxSlots int

	// policy applies only when maxSlots is positive.
	policy ExhaustPolicy
}

// WithCapacity configures a new Registry with room for cap concurrently
// watched addresses before the slot arena has to grow. If cap is zero or
// negative, the value is ignored.
func WithCapacity(cap int) func(*RegistryConfig) {
	return func(c *RegistryConfig) {
		c.capacity = cap
	}
}

// WithMaxSlots bounds the registry to n concurrently watched addresses,
// reproducing a statically sized wait table. Zero removes the bound.
//
// panic if n < 0.
func WithMaxSlots(n int) func(*RegistryConfig) {
	if n < 0 {
		panic("addrwait: max slots must not be negative")
	}
	return func(c *RegistryConfig) {
		c.maxSlots = n
	}
}

// WithExhaustPolicy sets the behavior of a bounded registry when all of its
// slots are bound. The default is ExhaustFail.
func WithExhaustPolicy(p ExhaustPolicy) func(*RegistryConfig) {
	if p != ExhaustFail && p != ExhaustWait {
		panic("addrwait: unknown exhaust policy")
	}
	return func(c *RegistryConfig) {
		c.policy = p
	}
}

func (c *RegistryConfig) initialCapacity() int {
	n := c.capacity
	if n <= 0 {
		n = defaultCapacity
	}
	if c.maxSlots > 0 && n > c.maxSlots {
		n = c.maxSlots
	}
	return n
}
