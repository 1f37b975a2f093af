package addrwait_test

import (
	"fmt"
	"sync/atomic"

	"github.com/llxisdsh/addrwait"
)

func ExampleWaitOn() {
	r := addrwait.NewRegistry()
	var state uint32
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			v := atomic.LoadUint32(&state)
			if v == 3 {
				return
			}
			addrwait.WaitOn(r, &state, v, addrwait.Infinite)
		}
	}()

	for range 3 {
		atomic.AddUint32(&state, 1)
		addrwait.WakeAllOn(r, &state)
	}
	<-done
	fmt.Println(atomic.LoadUint32(&state))
	// Output: 3
}

func ExampleFutex() {
	var f addrwait.Futex
	done := make(chan struct{})

	go func() {
		defer close(done)
		for f.Load() == 0 {
			f.Wait(0, addrwait.Infinite)
		}
	}()

	f.Store(1)
	f.WakeAll()
	<-done
	fmt.Println("woken")
	// Output: woken
}
