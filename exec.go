// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// awaitHandler implements kont.Handler for await effects.
// Waits on iox.ErrWouldBlock, converting the non-blocking bridge poll
// into blocking evaluation for Exec/ExecExpr.
type awaitHandler struct{}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (awaitHandler) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	aop, ok := op.(awaitDispatcher)
	if !ok {
		panic("await: unhandled effect in awaitHandler")
	}
	return dispatchWait(aop), true
}

// dispatchWait blocks until DispatchAwait succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff (resolution readiness waiting).
func dispatchWait(aop awaitDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := aop.DispatchAwait()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world protocol containing await effects, blocking
// past pending bridges via adaptive backoff. Does not spawn goroutines
// or create channels; producers resolve the bridges from their own
// goroutines.
func Exec[R any](protocol kont.Eff[R]) R {
	return kont.Handle(protocol, awaitHandler{})
}

// ExecExpr runs an Expr-world protocol containing await effects,
// blocking past pending bridges via adaptive backoff.
func ExecExpr[R any](protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, awaitHandler{})
}

// Step evaluates a protocol until the first await suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance polls the suspended await operation.
// DispatchAwait is non-blocking: returns iox.ErrWouldBlock while the
// bridge is pending (the suspension boundary).
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be
// retried after the bridge resolves.
func Advance[R any](susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	aop, ok := susp.Op().(awaitDispatcher)
	if !ok {
		panic("await: unhandled effect in Advance")
	}
	v, err := aop.DispatchAwait()
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
