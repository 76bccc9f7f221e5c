// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Bridge resolution states. The claimed state is the winner's private
// publication window between the CAS and the outcome store; only
// resolved is observable through Poll and Await.
const (
	statePending uint32 = iota
	stateClaimed
	stateResolved
)

// Cancel-handle slot states. taken is terminal: whoever moves the slot
// to taken owns the single Cancel invocation.
const (
	slotEmpty uint32 = iota
	slotSet
	slotTaken
)

// Bridge is a one-shot handoff cell connecting push-based callbacks to
// a single suspension. Exactly one resolution attempt wins; all later
// attempts are no-ops. A Bridge is created fresh per await and never
// reused.
//
// Resolution attempts may run on arbitrary goroutines, concurrent with
// each other and with Cancel. The state CAS is the single
// linearization point deciding every race.
type Bridge[T any] struct {
	state  atomix.Uint32
	hstate atomix.Uint32
	done   chan struct{}
	value  T
	err    error
	handle Canceller
	serial Serial
}

// Open creates a pending Bridge.
func Open[T any]() *Bridge[T] {
	return &Bridge[T]{
		done:   make(chan struct{}),
		serial: nextSerial(),
	}
}

// Serial returns the serial number assigned to this bridge.
func (b *Bridge[T]) Serial() Serial {
	return b.serial
}

// commit attempts the pending → resolved transition carrying the
// outcome. The outcome fields are written inside the claimed window,
// then published by the resolved store; the done close orders them
// before any Await return.
func (b *Bridge[T]) commit(v T, err error) bool {
	if !b.state.CompareAndSwap(statePending, stateClaimed) {
		return false
	}
	b.value = v
	b.err = err
	b.state.Store(stateResolved)
	close(b.done)
	return true
}

// TryResolve attempts to resolve the bridge with v.
// Reports whether this attempt won the race.
func (b *Bridge[T]) TryResolve(v T) bool {
	return b.commit(v, nil)
}

// TryReject attempts to resolve the bridge with a failure.
// err must be non-nil. Reports whether this attempt won the race.
func (b *Bridge[T]) TryReject(err error) bool {
	var zero T
	return b.commit(zero, err)
}

// Resolve resolves the bridge with v, ignoring the race outcome.
// For call sites where losing is expected behavior: a second value
// arriving after resolution is silently dropped.
func (b *Bridge[T]) Resolve(v T) {
	b.commit(v, nil)
}

// Reject resolves the bridge with a failure, ignoring the race outcome.
// A source error arriving after the bridge was canceled is expected
// collateral of the cancellation and is discarded here.
func (b *Bridge[T]) Reject(err error) {
	var zero T
	b.commit(zero, err)
}

// Cancel attempts to resolve the bridge as canceled by the waiting
// side. On win, the registered cancel handle is invoked exactly once
// and the waiter observes ErrCanceled joined with cause. On loss a
// value or error already committed; cause is discarded.
func (b *Bridge[T]) Cancel(cause error) bool {
	var zero T
	if !b.commit(zero, canceledError(cause)) {
		return false
	}
	b.teardown()
	return true
}

// teardown claims the handle slot on behalf of cancellation. If no
// handle was registered yet, the slot is marked taken so a late
// OnCancel invokes its own handle immediately.
func (b *Bridge[T]) teardown() {
	for {
		switch b.hstate.Load() {
		case slotEmpty:
			if b.hstate.CompareAndSwap(slotEmpty, slotTaken) {
				return
			}
		case slotSet:
			if b.hstate.CompareAndSwap(slotSet, slotTaken) {
				b.handle.Cancel()
				return
			}
		default:
			return
		}
	}
}

// OnCancel registers the source's cancel handle. The handle is invoked
// at most once: by Cancel if cancellation wins, or here immediately if
// the bridge is already resolved at registration time (the
// subscription is obsolete). It is never invoked when the source
// resolves first after a timely registration.
func (b *Bridge[T]) OnCancel(h Canceller) {
	if h == nil {
		return
	}
	b.handle = h
	if !b.hstate.CompareAndSwap(slotEmpty, slotSet) {
		// Cancellation claimed the slot before registration.
		h.Cancel()
		return
	}
	if b.state.Load() != stateResolved {
		return
	}
	if b.hstate.CompareAndSwap(slotSet, slotTaken) {
		h.Cancel()
	}
}

// Poll probes the bridge without blocking.
// Returns iox.ErrWouldBlock while pending (the suspension boundary),
// otherwise the committed outcome.
func (b *Bridge[T]) Poll() (T, error) {
	if b.state.Load() != stateResolved {
		var zero T
		return zero, iox.ErrWouldBlock
	}
	return b.value, b.err
}

// Resolved reports whether an outcome has been committed.
func (b *Bridge[T]) Resolved() bool {
	return b.state.Load() == stateResolved
}

// Await suspends the calling goroutine until the bridge resolves or
// ctx is done. On context cancellation it attempts Cancel with the
// context cause; if that attempt loses the race, the concurrently
// committed outcome is returned instead — exactly one outcome is ever
// observed.
func (b *Bridge[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-b.done:
		return b.value, b.err
	case <-ctx.Done():
		if b.Cancel(context.Cause(ctx)) {
			return b.value, b.err
		}
		// Lost to a terminal event already in its publication window.
		<-b.done
		return b.value, b.err
	}
}
