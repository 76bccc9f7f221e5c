// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import "math"

// Unbounded is the demand value that authorizes a source to deliver
// without further Request calls.
const Unbounded = math.MaxInt

// Canceller is the unsubscribe capability of a live subscription.
// Cancel is invoked at most once by the bridge, and only on
// caller-side cancellation — never on normal resolution.
type Canceller interface {
	Cancel()
}

// CancelFunc adapts a plain function to the Canceller interface.
type CancelFunc func()

// Cancel invokes the function.
func (f CancelFunc) Cancel() { f() }

// Subscription is the demand-and-teardown capability handed to a
// Subscriber. Request authorizes n further OnNext deliveries; Cancel
// stops the subscription, after which the source ceases callbacks
// (barring an in-flight terminal event already racing the cancel).
type Subscription interface {
	Request(n int)
	Canceller
}

// Source is a demand-based multi-value subscription protocol: zero or
// more OnNext deliveries followed by exactly one terminal OnCompleted
// or OnError.
//
// OnSubscribe, OnNext, OnCompleted and OnError on one subscription are
// serialized with respect to each other, but may run on arbitrary
// goroutines, concurrent with caller-side cancellation.
type Source[T any] interface {
	Subscribe(s Subscriber[T])
}

// Subscriber receives callbacks from a Source.
type Subscriber[T any] interface {
	OnSubscribe(sub Subscription)
	OnNext(v T)
	OnCompleted()
	OnError(err error)
}

// SingleSource emits exactly one value or one error. SubscribeSingle
// returns the cancel handle directly rather than via acknowledgement.
type SingleSource[T any] interface {
	SubscribeSingle(s SingleSubscriber[T]) Canceller
}

// SingleSubscriber receives the single terminal callback of a SingleSource.
type SingleSubscriber[T any] interface {
	OnSuccess(v T)
	OnError(err error)
}

// CompletableSource emits a completion signal or an error, never a value.
// The cancel handle arrives via the OnSubscribe acknowledgement.
type CompletableSource interface {
	SubscribeCompletable(s CompletableSubscriber)
}

// CompletableSubscriber receives callbacks from a CompletableSource.
type CompletableSubscriber interface {
	OnSubscribe(h Canceller)
	OnCompleted()
	OnError(err error)
}
