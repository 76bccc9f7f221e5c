// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"code.hybscloud.com/atomix"
)

// From returns a cold Source that replays items in order, honoring
// demand. Emission happens synchronously inside Request on the
// requesting goroutine; completion follows the final element.
func From[T any](items ...T) Source[T] {
	return sliceSource[T]{items: items}
}

type sliceSource[T any] struct {
	items []T
}

func (s sliceSource[T]) Subscribe(sub Subscriber[T]) {
	f := &sliceFeed[T]{s: sub, items: s.items}
	sub.OnSubscribe(f)
}

// sliceFeed is the per-subscription emission state. Request and the
// emit loop run serialized (the emitting flag absorbs re-entrant
// Request calls from inside OnNext); Cancel may arrive from any
// goroutine and is the only concurrent entry.
type sliceFeed[T any] struct {
	s        Subscriber[T]
	items    []T
	idx      int
	demand   int
	emitting bool
	done     bool
	canceled atomix.Uint32
}

func (f *sliceFeed[T]) Request(n int) {
	if n <= 0 || f.done {
		return
	}
	if n >= Unbounded-f.demand {
		f.demand = Unbounded
	} else {
		f.demand += n
	}
	if f.emitting {
		return
	}
	f.emitting = true
	for f.demand > 0 && f.idx < len(f.items) {
		if f.canceled.Load() != 0 {
			f.emitting = false
			return
		}
		v := f.items[f.idx]
		f.idx++
		if f.demand != Unbounded {
			f.demand--
		}
		f.s.OnNext(v)
	}
	f.emitting = false
	if f.idx == len(f.items) && !f.done {
		f.done = true
		if f.canceled.Load() == 0 {
			f.s.OnCompleted()
		}
	}
}

func (f *sliceFeed[T]) Cancel() {
	f.canceled.Store(1)
}
