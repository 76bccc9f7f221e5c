// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package await bridges push-based subscription protocols into single
// cooperative suspension points.
//
// A [Bridge] is a one-shot handoff cell: exactly one outcome — a value, a
// failure, or a cancellation — ever reaches the waiting side, for every
// interleaving of concurrent callbacks and caller cancellation. Subscription
// adapters translate the three source protocol shapes (completion-only,
// single-value, demand-based multi-value) into bridge resolution attempts.
//
// # Architecture
//
//   - Resolution: Lock-free compare-and-set state machine via [code.hybscloud.com/atomix]. [Open] creates a pending [Bridge].
//   - Non-blocking: [Bridge.Poll] returns [code.hybscloud.com/iox.ErrWouldBlock] while pending.
//   - Cancellation: [Bridge.Cancel] always beats a concurrently arriving value or error; the losing attempt is discarded silently. The registered source handle is torn down exactly once.
//   - Execution: Dual-world API supporting blocking ([Bridge.Await], [Exec]) and defunctionalized stepping ([Step], [Advance]) via [code.hybscloud.com/kont].
//
// # API Topologies
//
//   - Sources: [CompletableSource], [SingleSource], [Source] with demand-based [Subscription].
//   - Awaits: [Completed], [One], [First], [Last], [Single], [FirstOrDefault], [FirstOrZero], [FirstOrElse].
//   - Attach points: [Attach], [AttachSingle], [AttachCompletable] and the Open* variants return a live [Bridge] for explicit control.
//   - Effect-world: [AwaitEff] and [AwaitExpr] suspend inside a kont protocol; resolve with kont.Either.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate an awaiting computation one effect at a time, making it easy to integrate with a proactor loop.
//   - Blocking: [Bridge.Await] selects on context cancellation; [Exec] waits past pending bridges using adaptive backoff.
//   - Sources: [From] is a cold demand-honoring slice source; [NewPipe] is a hot bounded source over [code.hybscloud.com/lfq] SPSC rings.
//
// # Example
//
//	p := await.NewPipe[int](4)
//	go func() {
//		p.Push(42)
//		p.Close()
//	}()
//	v, err := await.First(context.Background(), p)
//	// v == 42, err == nil
package await
