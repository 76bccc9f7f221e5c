// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

// completionAdapter bridges a completion-or-error protocol.
// No demand management: no values flow.
type completionAdapter struct {
	b *Bridge[struct{}]
}

func (a completionAdapter) OnSubscribe(h Canceller) { a.b.OnCancel(h) }
func (a completionAdapter) OnCompleted() { a.b.Resolve(struct{}{}) }
func (a completionAdapter) OnError(err error) { a.b.Reject(err) }

// singleAdapter bridges an exactly-one-value-or-error protocol.
type singleAdapter[T any] struct {
	b *Bridge[T]
}

func (a singleAdapter[T]) OnSuccess(v T) { a.b.Resolve(v) }
func (a singleAdapter[T]) OnError(err error) { a.b.Reject(err) }

// elementAdapter bridges a demand-based multi-value protocol to its
// first element. Demand is capped at 1: the adapter resolves on the
// first delivery and never requests a second.
//
// Terminal events need no element bookkeeping: a completion after a
// value, or a redundant second value, attempts resolution against an
// already-resolved bridge and loses silently. An error that loses the
// race lost to cancellation (no other path resolves before the
// source's terminal event) and is discarded with no side channel.
type elementAdapter[T any] struct {
	b *Bridge[T]
}

func (a elementAdapter[T]) OnSubscribe(sub Subscription) {
	// Register before requesting: cancellation arriving during the
	// first delivery must already find the teardown handle.
	a.b.OnCancel(sub)
	sub.Request(1)
}

func (a elementAdapter[T]) OnNext(v T) { a.b.Resolve(v) }
func (a elementAdapter[T]) OnCompleted() { a.b.Reject(ErrNoElement) }
func (a elementAdapter[T]) OnError(err error) { a.b.Reject(err) }

// Attach subscribes the multi-value adapter for src to b.
// The bridge resolves with the first element, fails with ErrNoElement
// on empty completion, or fails with the source error.
func Attach[T any](b *Bridge[T], src Source[T]) {
	src.Subscribe(elementAdapter[T]{b: b})
}

// AttachSingle subscribes the single-value adapter for src to b.
// The subscribe return value is registered as the cancel handle.
func AttachSingle[T any](b *Bridge[T], src SingleSource[T]) {
	b.OnCancel(src.SubscribeSingle(singleAdapter[T]{b: b}))
}

// AttachCompletable subscribes the completion-only adapter for src to b.
// The bridge resolves with the unit value on completion.
func AttachCompletable(b *Bridge[struct{}], src CompletableSource) {
	src.SubscribeCompletable(completionAdapter{b: b})
}
