// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await_test

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/await"
)

// recordingSub records demand and cancel calls for assertions.
type recordingSub struct {
	requested atomix.Uint32
	canceled  atomix.Uint32
}

func (r *recordingSub) Request(n int) {
	if n > 0 {
		r.requested.Add(uint32(n))
	}
}

func (r *recordingSub) Cancel() {
	r.canceled.Add(1)
}

// manualSource hands its subscriber out so tests can drive the
// callbacks directly.
type manualSource[T any] struct {
	sub *recordingSub
	s   await.Subscriber[T]
}

func newManualSource[T any]() *manualSource[T] {
	return &manualSource[T]{sub: &recordingSub{}}
}

func (m *manualSource[T]) Subscribe(s await.Subscriber[T]) {
	m.s = s
	s.OnSubscribe(m.sub)
}

// failSource errors out immediately after acknowledgement.
type failSource[T any] struct {
	err error
}

func (f failSource[T]) Subscribe(s await.Subscriber[T]) {
	s.OnSubscribe(&recordingSub{})
	s.OnError(f.err)
}

// valueSingle emits its value synchronously on subscribe.
type valueSingle[T any] struct {
	v T
}

func (s valueSingle[T]) SubscribeSingle(sub await.SingleSubscriber[T]) await.Canceller {
	sub.OnSuccess(s.v)
	return await.CancelFunc(func() {})
}

// errorSingle fails synchronously on subscribe.
type errorSingle[T any] struct {
	err error
}

func (s errorSingle[T]) SubscribeSingle(sub await.SingleSubscriber[T]) await.Canceller {
	sub.OnError(s.err)
	return await.CancelFunc(func() {})
}

// manualSingle never emits; tests drive it and observe its handle.
type manualSingle[T any] struct {
	cancels atomix.Uint32
	s       await.SingleSubscriber[T]
}

func (m *manualSingle[T]) SubscribeSingle(sub await.SingleSubscriber[T]) await.Canceller {
	m.s = sub
	return await.CancelFunc(func() { m.cancels.Add(1) })
}

// completedCompletable completes synchronously after acknowledging.
type completedCompletable struct{}

func (completedCompletable) SubscribeCompletable(s await.CompletableSubscriber) {
	s.OnSubscribe(await.CancelFunc(func() {}))
	s.OnCompleted()
}

// errorCompletable fails synchronously after acknowledging.
type errorCompletable struct {
	err error
}

func (c errorCompletable) SubscribeCompletable(s await.CompletableSubscriber) {
	s.OnSubscribe(await.CancelFunc(func() {}))
	s.OnError(c.err)
}

// manualCompletable never terminates; tests observe its handle.
type manualCompletable struct {
	cancels atomix.Uint32
	s       await.CompletableSubscriber
}

func (m *manualCompletable) SubscribeCompletable(s await.CompletableSubscriber) {
	m.s = s
	s.OnSubscribe(await.CancelFunc(func() { m.cancels.Add(1) }))
}
