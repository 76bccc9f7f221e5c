// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import "errors"

// await introduces three semantic errors for awaiting a subscription.
//
// Mental model:
//   - ErrNoElement: the await expected an element; the source completed empty.
//   - ErrTooMany: a single-element await observed a second element.
//   - ErrCanceled: the waiting side canceled; the source did not resolve.
//
// Notes:
//   - Source failures are opaque: they propagate to the waiter unchanged,
//     never wrapped in a package error.
//   - ErrCanceled is always joined with the cancellation cause, so both
//     errors.Is(err, ErrCanceled) and errors.Is(err, cause) hold.
//   - A source error that loses the race against ErrCanceled is expected
//     collateral of cancellation: it is discarded, never surfaced or logged.

// ErrNoElement means “expected an element, source completed empty”.
// Produced by First, Last and Single on the empty sequence, and by a
// completion callback that arrives before any value.
var ErrNoElement = errors.New("await: no such element")

// ErrTooMany means “expected exactly one element, observed more”.
// Produced by Single when a second element arrives; the upstream
// subscription is canceled at that point.
var ErrTooMany = errors.New("await: too many elements")

// ErrCanceled means “the waiting side canceled before the source resolved”.
var ErrCanceled = errors.New("await: canceled")

// IsNoElement reports whether err is ErrNoElement.
func IsNoElement(err error) bool { return errors.Is(err, ErrNoElement) }

// IsTooMany reports whether err is ErrTooMany.
func IsTooMany(err error) bool { return errors.Is(err, ErrTooMany) }

// IsCanceled reports whether err is ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// canceledError joins ErrCanceled with the cancellation cause.
// A nil cause yields ErrCanceled itself.
func canceledError(cause error) error {
	if cause == nil {
		return ErrCanceled
	}
	return errors.Join(ErrCanceled, cause)
}
