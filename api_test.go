package addrwait

import (
	"math"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitOnAddress(t *testing.T) {
	var word uint32
	var compare uint32
	addr := unsafe.Pointer(&word)

	done := make(chan bool, 1)
	go func() {
		ok, err := WaitOnAddress(addr, unsafe.Pointer(&compare), 4, Infinite)
		assert.NoError(t, err)
		done <- ok
	}()
	requireParked(t, Default(), addr, 1)

	atomic.StoreUint32(&word, 1)
	WakeByAddressAll(addr)
	require.True(t, <-done)

	ok, err := WaitOnAddress(addr, unsafe.Pointer(&compare), 4, TimeoutMillis(50))
	require.NoError(t, err)
	require.True(t, ok, "changed value must not block")

	ok, err = WaitOnAddress(nil, unsafe.Pointer(&compare), 4, Infinite)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.False(t, ok)
}

func TestWaitOnAddress_Misaligned(t *testing.T) {
	var words [2]uint64
	var compare uint64
	addr := unsafe.Add(unsafe.Pointer(&words[0]), 4)

	ok, err := WaitOnAddress(addr, unsafe.Pointer(&compare), 8, Infinite)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.False(t, ok)
}

func TestWaitOnAddress_Timeout(t *testing.T) {
	var word, compare uint64
	ok, err := WaitOnAddress(unsafe.Pointer(&word), unsafe.Pointer(&compare), 8, TimeoutMillis(10))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWakeByAddressSingle(t *testing.T) {
	var word uint16
	var compare uint16
	addr := unsafe.Pointer(&word)

	done := make(chan bool, 2)
	for range 2 {
		go func() {
			ok, _ := WaitOnAddress(addr, unsafe.Pointer(&compare), 2, Infinite)
			done <- ok
		}()
	}
	requireParked(t, Default(), addr, 2)

	WakeByAddressSingle(addr)
	require.True(t, <-done)
	select {
	case <-done:
		t.Fatal("WakeByAddressSingle woke two waiters")
	case <-time.After(10 * time.Millisecond):
	}

	WakeByAddressSingle(addr)
	require.True(t, <-done)
	require.Zero(t, Default().Waiters(addr))
}

func TestTimeoutMillis(t *testing.T) {
	require.Equal(t, Infinite, TimeoutMillis(math.MaxUint32))
	require.Equal(t, time.Duration(0), TimeoutMillis(0))
	require.Equal(t, 50*time.Millisecond, TimeoutMillis(50))
}
