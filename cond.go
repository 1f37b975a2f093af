package addrwait

import (
	"context"
	"time"
)

// waiter is one parked goroutine.
type waiter struct {
	// ch is closed exactly once, by whoever signals the waiter.
	ch chan struct{}
	// signaled and the links are protected by the registry lock.
	signaled bool
	prev     *waiter
	next     *waiter
}

// cond is a FIFO condition queue whose lock lives outside of it.
// Every method must be called with the owning registry lock held.
//
// Unlike sync.Cond it supports parking with a timeout and a context, and a
// waiter that is signaled while its timer fires still observes the signal.
type cond struct {
	head *waiter
	tail *waiter
	n    int
}

func (c *cond) enqueue() *waiter {
	w := &waiter{ch: make(chan struct{})}
	if c.tail == nil {
		c.head = w
	} else {
		c.tail.next = w
		w.prev = c.tail
	}
	c.tail = w
	c.n++
	return w
}

// remove unlinks w. w must be queued on c.
func (c *cond) remove(w *waiter) {
	if w.prev == nil {
		c.head = w.next
	} else {
		w.prev.next = w.next
	}
	if w.next == nil {
		c.tail = w.prev
	} else {
		w.next.prev = w.prev
	}
	w.prev, w.next = nil, nil
	c.n--
}

// signal wakes the oldest waiter and reports how many were woken.
func (c *cond) signal() int {
	w := c.head
	if w == nil {
		return 0
	}
	c.remove(w)
	w.wake()
	return 1
}

// broadcast wakes every queued waiter and reports how many were woken.
func (c *cond) broadcast() int {
	n := 0
	for w := c.head; w != nil; w = c.head {
		c.remove(w)
		w.wake()
		n++
	}
	return n
}

func (w *waiter) wake() {
	w.signaled = true
	close(w.ch)
}

// block waits for w to be signaled, the deadline to pass, or ctx to be done.
// It returns nil when the signal won the race inside the select; the caller
// still has to consult w.signaled under the lock, which is authoritative.
// A ctx that is already done takes precedence over an expired deadline.
func (w *waiter) block(ctx context.Context, d *deadline) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-w.ch:
		return nil
	case <-d.c:
		// a fired timer delivers once; later parks must still see it
		d.c = expired
		return errExpired
	case <-ctx.Done():
		return ctx.Err()
	}
}

// deadline is a single timer shared by every park of one Wait call.
type deadline struct {
	timer *time.Timer
	c     <-chan time.Time
}

// expired is a channel that is always ready, used for zero timeouts.
var expired = func() chan time.Time {
	c := make(chan time.Time)
	close(c)
	return c
}()

func newDeadline(timeout time.Duration) *deadline {
	switch {
	case timeout < 0:
		// nil channel: never ready
		return &deadline{}
	case timeout == 0:
		return &deadline{c: expired}
	default:
		t := time.NewTimer(timeout)
		return &deadline{timer: t, c: t.C}
	}
}

func (d *deadline) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
