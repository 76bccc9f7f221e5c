// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"math"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// defaultPipeCapacity is the bounded capacity for the pipe ring.
// 4 keeps the ring within a single cache line while amortizing the
// producer-side cached-index refresh cost.
const defaultPipeCapacity = 4

// Pipe producer states.
const (
	pipeOpen uint32 = iota
	pipeClosed
	pipeFailed
)

// demandUnbounded is the in-flight demand sentinel: once the counter
// saturates, the pump stops decrementing.
const demandUnbounded = math.MaxUint32

// Pipe is a hot, bounded, demand-based Source backed by a lock-free
// SPSC ring. The producer side is Push/Close/Fail on one goroutine;
// Subscribe starts a pump goroutine that delivers elements to the
// subscriber under demand accounting. One producer, one subscriber.
//
// Push is non-blocking: it returns iox.ErrWouldBlock when the ring is
// full (retry after the pump makes progress).
type Pipe[T any] struct {
	q        lfq.SPSC[T]
	slot     T
	err      error
	state    atomix.Uint32
	demand   atomix.Uint32
	canceled atomix.Uint32
	subbed   atomix.Uint32
}

// NewPipe creates a Pipe with the given ring capacity.
// Non-positive capacity falls back to defaultPipeCapacity.
func NewPipe[T any](capacity int) *Pipe[T] {
	if capacity <= 0 {
		capacity = defaultPipeCapacity
	}
	p := &Pipe[T]{}
	p.q.Init(capacity)
	return p
}

// Push enqueues v for delivery.
// Non-blocking: returns iox.ErrWouldBlock when the ring is full.
// Elements pushed after the subscriber canceled are dropped.
// Push after Close or Fail is a producer contract violation.
func (p *Pipe[T]) Push(v T) error {
	if p.state.Load() != pipeOpen {
		panic("await: push on terminated pipe")
	}
	if p.canceled.Load() != 0 {
		return nil
	}
	p.slot = v
	return p.q.Enqueue(&p.slot)
}

// Close marks the sequence complete. The pump delivers all pushed
// elements still covered by demand, then OnCompleted.
func (p *Pipe[T]) Close() {
	p.state.CompareAndSwap(pipeOpen, pipeClosed)
}

// Fail marks the sequence failed with err. The pump drains the ring,
// then delivers OnError(err).
func (p *Pipe[T]) Fail(err error) {
	p.err = err
	p.state.CompareAndSwap(pipeOpen, pipeFailed)
}

// Subscribe implements Source. A Pipe supports exactly one subscriber.
func (p *Pipe[T]) Subscribe(s Subscriber[T]) {
	if !p.subbed.CompareAndSwap(0, 1) {
		panic("await: pipe supports a single subscriber")
	}
	s.OnSubscribe(pipeSubscription[T]{p: p})
	go p.pump(s)
}

type pipeSubscription[T any] struct {
	p *Pipe[T]
}

// Request adds n to the demand counter, saturating at the unbounded
// sentinel.
func (s pipeSubscription[T]) Request(n int) {
	if n <= 0 {
		return
	}
	add := uint32(demandUnbounded)
	if uint64(n) < uint64(demandUnbounded) {
		add = uint32(n)
	}
	for {
		cur := s.p.demand.Load()
		next := cur + add
		if next < cur {
			next = demandUnbounded
		}
		if s.p.demand.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Cancel stops delivery; the pump exits on its next pass.
func (s pipeSubscription[T]) Cancel() {
	s.p.canceled.Store(1)
}

// take1 consumes one unit of demand if any is available.
// The saturated counter is treated as unbounded and never decremented.
func (p *Pipe[T]) take1() bool {
	for {
		cur := p.demand.Load()
		switch {
		case cur == 0:
			return false
		case cur == demandUnbounded:
			return true
		case p.demand.CompareAndSwap(cur, cur-1):
			return true
		}
	}
}

// pump drains the ring to the subscriber under demand accounting,
// waiting with iox.Backoff when the ring is empty or demand is
// exhausted. The terminal event is delivered only after the ring is
// drained; elements never covered by demand are discarded at that
// point.
func (p *Pipe[T]) pump(s Subscriber[T]) {
	var bo iox.Backoff
	var held T
	var has bool
	for {
		if p.canceled.Load() != 0 {
			return
		}
		if !has {
			if v, err := p.q.Dequeue(); err == nil {
				held = v
				has = true
			}
		}
		if has {
			if p.take1() {
				v := held
				var zero T
				held = zero
				has = false
				s.OnNext(v)
				bo.Reset()
				continue
			}
		} else if st := p.state.Load(); st != pipeOpen {
			// Producer terminated; one more drain pass covers a push
			// that completed just before the terminal store.
			if v, err := p.q.Dequeue(); err == nil {
				held = v
				has = true
				continue
			}
			if st == pipeFailed {
				s.OnError(p.err)
			} else {
				s.OnCompleted()
			}
			return
		}
		bo.Wait()
	}
}
