// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import "context"

// Completed suspends until src completes or fails.
// Unit completion resolves with a nil error.
func Completed(ctx context.Context, src CompletableSource) error {
	_, err := OpenCompleted(src).Await(ctx)
	return err
}

// OpenCompleted attaches the completion-only adapter to a fresh bridge.
func OpenCompleted(src CompletableSource) *Bridge[struct{}] {
	b := Open[struct{}]()
	AttachCompletable(b, src)
	return b
}

// One suspends until src emits its single value or fails.
func One[T any](ctx context.Context, src SingleSource[T]) (T, error) {
	return OpenOne(src).Await(ctx)
}

// OpenOne attaches the single-value adapter to a fresh bridge.
func OpenOne[T any](src SingleSource[T]) *Bridge[T] {
	b := Open[T]()
	AttachSingle(b, src)
	return b
}

// First suspends until src emits its first element.
// Fails with ErrNoElement if src completes empty.
func First[T any](ctx context.Context, src Source[T]) (T, error) {
	return OpenFirst(src).Await(ctx)
}

// OpenFirst attaches the multi-value adapter to the first-element view
// of src. Demand is capped at 1; the view unsubscribes upstream as soon
// as the first element is through.
func OpenFirst[T any](src Source[T]) *Bridge[T] {
	b := Open[T]()
	Attach(b, takeSource[T]{src: src})
	return b
}

// Last suspends until src terminates, then resolves with the final
// element. The full sequence is consumed. Fails with ErrNoElement if
// src completes empty.
func Last[T any](ctx context.Context, src Source[T]) (T, error) {
	return OpenLast(src).Await(ctx)
}

// OpenLast attaches the multi-value adapter to the last-element view
// of src.
func OpenLast[T any](src Source[T]) *Bridge[T] {
	b := Open[T]()
	Attach(b, lastSource[T]{src: src})
	return b
}

// Single suspends until src terminates, asserting at most one element.
// Fails with ErrNoElement if src completes empty, or ErrTooMany if a
// second element arrives; on the second element the upstream
// subscription is canceled.
func Single[T any](ctx context.Context, src Source[T]) (T, error) {
	return OpenSingle(src).Await(ctx)
}

// OpenSingle attaches the multi-value adapter to the single-element
// view of src.
func OpenSingle[T any](src Source[T]) *Bridge[T] {
	b := Open[T]()
	Attach(b, singleSource[T]{src: src})
	return b
}

// FirstOrDefault is First with d substituted for the empty sequence.
// Never fails with ErrNoElement.
func FirstOrDefault[T any](ctx context.Context, src Source[T], d T) (T, error) {
	b := Open[T]()
	Attach(b, takeSource[T]{src: defaultSource[T]{src: src, fallback: d}})
	return b.Await(ctx)
}

// FirstOrZero is First with the zero value of T substituted for the
// empty sequence.
func FirstOrZero[T any](ctx context.Context, src Source[T]) (T, error) {
	var zero T
	return FirstOrDefault(ctx, src, zero)
}

// FirstOrElse is First with the empty sequence switched to the single
// element produced by supply. supply is invoked only on empty
// completion; its failure propagates to the waiter.
func FirstOrElse[T any](ctx context.Context, src Source[T], supply func() (T, error)) (T, error) {
	b := Open[T]()
	Attach(b, takeSource[T]{src: switchSource[T]{src: src, supply: supply}})
	return b.Await(ctx)
}

// takeSource truncates a sequence to its first element: the element is
// forwarded, the upstream subscription is canceled by the view itself,
// and the downstream sequence completes. The teardown here belongs to
// the sequence transformation, not to the bridge; the bridge handle
// still fires only on caller-side cancellation.
type takeSource[T any] struct {
	src Source[T]
}

func (s takeSource[T]) Subscribe(down Subscriber[T]) {
	s.src.Subscribe(&takeSubscriber[T]{down: down})
}

type takeSubscriber[T any] struct {
	down Subscriber[T]
	up   Subscription
	done bool
}

func (t *takeSubscriber[T]) OnSubscribe(sub Subscription) {
	t.up = sub
	t.down.OnSubscribe(sub)
}

func (t *takeSubscriber[T]) OnNext(v T) {
	if t.done {
		return
	}
	t.done = true
	t.down.OnNext(v)
	t.up.Cancel()
	t.down.OnCompleted()
}

func (t *takeSubscriber[T]) OnCompleted() {
	if t.done {
		return
	}
	t.done = true
	t.down.OnCompleted()
}

func (t *takeSubscriber[T]) OnError(err error) {
	if t.done {
		return
	}
	t.done = true
	t.down.OnError(err)
}

// unboundedSubscription widens downstream demand to full consumption.
// The last and single views must observe the entire sequence no matter
// how little the downstream requested.
type unboundedSubscription struct {
	up Subscription
}

func (s unboundedSubscription) Request(int) { s.up.Request(Unbounded) }
func (s unboundedSubscription) Cancel()     { s.up.Cancel() }

// lastSource reduces a sequence to its final element.
type lastSource[T any] struct {
	src Source[T]
}

func (s lastSource[T]) Subscribe(down Subscriber[T]) {
	s.src.Subscribe(&lastSubscriber[T]{down: down})
}

type lastSubscriber[T any] struct {
	down Subscriber[T]
	last T
	seen bool
}

func (l *lastSubscriber[T]) OnSubscribe(sub Subscription) {
	l.down.OnSubscribe(unboundedSubscription{up: sub})
}

func (l *lastSubscriber[T]) OnNext(v T) {
	l.last = v
	l.seen = true
}

func (l *lastSubscriber[T]) OnCompleted() {
	if l.seen {
		l.down.OnNext(l.last)
	}
	l.down.OnCompleted()
}

func (l *lastSubscriber[T]) OnError(err error) {
	l.down.OnError(err)
}

// singleSource reduces a sequence to its only element, failing with
// ErrTooMany when a second element arrives.
type singleSource[T any] struct {
	src Source[T]
}

func (s singleSource[T]) Subscribe(down Subscriber[T]) {
	s.src.Subscribe(&singleSubscriber[T]{down: down})
}

type singleSubscriber[T any] struct {
	down   Subscriber[T]
	up     Subscription
	only   T
	seen   bool
	failed bool
}

func (s *singleSubscriber[T]) OnSubscribe(sub Subscription) {
	s.up = sub
	s.down.OnSubscribe(unboundedSubscription{up: sub})
}

func (s *singleSubscriber[T]) OnNext(v T) {
	if s.failed {
		return
	}
	if s.seen {
		s.failed = true
		s.up.Cancel()
		s.down.OnError(ErrTooMany)
		return
	}
	s.only = v
	s.seen = true
}

func (s *singleSubscriber[T]) OnCompleted() {
	if s.failed {
		return
	}
	if s.seen {
		s.down.OnNext(s.only)
	}
	s.down.OnCompleted()
}

func (s *singleSubscriber[T]) OnError(err error) {
	if s.failed {
		// Upstream re-surfaced the cancel issued on the second
		// element; ErrTooMany already went downstream.
		return
	}
	s.down.OnError(err)
}

// defaultSource substitutes fallback for the empty sequence.
// Demand passes through unchanged: the first element still resolves
// under the downstream's demand of 1.
type defaultSource[T any] struct {
	src      Source[T]
	fallback T
}

func (s defaultSource[T]) Subscribe(down Subscriber[T]) {
	s.src.Subscribe(&defaultSubscriber[T]{down: down, fallback: s.fallback})
}

type defaultSubscriber[T any] struct {
	down     Subscriber[T]
	fallback T
	seen     bool
}

func (d *defaultSubscriber[T]) OnSubscribe(sub Subscription) {
	d.down.OnSubscribe(sub)
}

func (d *defaultSubscriber[T]) OnNext(v T) {
	d.seen = true
	d.down.OnNext(v)
}

func (d *defaultSubscriber[T]) OnCompleted() {
	if !d.seen {
		d.down.OnNext(d.fallback)
	}
	d.down.OnCompleted()
}

func (d *defaultSubscriber[T]) OnError(err error) {
	d.down.OnError(err)
}

// switchSource switches the empty sequence to the one-element sequence
// produced by the supplier.
type switchSource[T any] struct {
	src    Source[T]
	supply func() (T, error)
}

func (s switchSource[T]) Subscribe(down Subscriber[T]) {
	s.src.Subscribe(&switchSubscriber[T]{down: down, supply: s.supply})
}

type switchSubscriber[T any] struct {
	down   Subscriber[T]
	supply func() (T, error)
	seen   bool
}

func (s *switchSubscriber[T]) OnSubscribe(sub Subscription) {
	s.down.OnSubscribe(sub)
}

func (s *switchSubscriber[T]) OnNext(v T) {
	s.seen = true
	s.down.OnNext(v)
}

func (s *switchSubscriber[T]) OnCompleted() {
	if !s.seen {
		v, err := s.supply()
		if err != nil {
			s.down.OnError(err)
			return
		}
		s.down.OnNext(v)
	}
	s.down.OnCompleted()
}

func (s *switchSubscriber[T]) OnError(err error) {
	s.down.OnError(err)
}
