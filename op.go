// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// awaitDispatcher is the structural interface for await operations.
// DispatchAwait is non-blocking: it returns iox.ErrWouldBlock at the
// suspension boundary while the bridge is pending.
type awaitDispatcher interface {
	DispatchAwait() (kont.Resumed, error)
}

// awaitOp is the effect operation for awaiting a bridge of type T.
// Resumes with kont.Either: Right on a value, Left on a failure or
// cancellation outcome.
type awaitOp[T any] struct {
	kont.Phantom[kont.Either[error, T]]
	bridge *Bridge[T]
}

// DispatchAwait polls the bridge.
// Non-blocking: returns iox.ErrWouldBlock while pending.
func (op awaitOp[T]) DispatchAwait() (kont.Resumed, error) {
	v, err := op.bridge.Poll()
	if err != nil {
		if iox.IsWouldBlock(err) {
			return nil, err
		}
		return kont.Left[error, T](err), nil
	}
	return kont.Right[error](v), nil
}

// AwaitEff suspends a Cont-world protocol until b resolves.
func AwaitEff[T any](b *Bridge[T]) kont.Eff[kont.Either[error, T]] {
	return kont.Perform(awaitOp[T]{bridge: b})
}

// AwaitExpr suspends an Expr-world protocol until b resolves.
func AwaitExpr[T any](b *Bridge[T]) kont.Expr[kont.Either[error, T]] {
	return kont.ExprPerform(awaitOp[T]{bridge: b})
}

// AwaitBind awaits b and passes the outcome to f.
// Fuses AwaitEff + Bind.
func AwaitBind[T, B any](b *Bridge[T], f func(kont.Either[error, T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(AwaitEff(b), f)
}
