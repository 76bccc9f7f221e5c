// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/await"
	"code.hybscloud.com/iox"
)

func TestBridgeResolveOnce(t *testing.T) {
	b := await.Open[int]()
	if !b.TryResolve(1) {
		t.Fatal("first TryResolve should win")
	}
	if b.TryResolve(2) {
		t.Fatal("second TryResolve should lose")
	}
	if b.TryReject(errors.New("late")) {
		t.Fatal("TryReject after resolution should lose")
	}
	v, err := b.Poll()
	if err != nil {
		t.Fatalf("Poll error: %v", err)
	}
	if v != 1 {
		t.Fatalf("Poll got %d, want 1", v)
	}
}

func TestBridgePollPending(t *testing.T) {
	b := await.Open[int]()
	_, err := b.Poll()
	if !iox.IsWouldBlock(err) {
		t.Fatalf("pending Poll got %v, want ErrWouldBlock", err)
	}
	if b.Resolved() {
		t.Fatal("pending bridge reports resolved")
	}
}

func TestBridgeAwaitValue(t *testing.T) {
	b := await.Open[string]()
	go func() {
		time.Sleep(time.Millisecond)
		b.Resolve("ok")
	}()
	v, err := b.Await(context.Background())
	if err != nil {
		t.Fatalf("Await error: %v", err)
	}
	if v != "ok" {
		t.Fatalf("Await got %q, want %q", v, "ok")
	}
}

func TestBridgeAwaitFailure(t *testing.T) {
	boom := errors.New("boom")
	b := await.Open[int]()
	go b.Reject(boom)
	_, err := b.Await(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Await got %v, want the source error unchanged", err)
	}
	if await.IsCanceled(err) {
		t.Fatal("source failure must not read as cancellation")
	}
}

func TestBridgeCancelWinsOverLateReject(t *testing.T) {
	cause := errors.New("deadline")
	b := await.Open[int]()
	if !b.Cancel(cause) {
		t.Fatal("Cancel on pending bridge should win")
	}
	if b.TryReject(errors.New("late source error")) {
		t.Fatal("late reject should lose to cancellation")
	}
	_, err := b.Poll()
	if !await.IsCanceled(err) {
		t.Fatalf("outcome got %v, want ErrCanceled", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cancellation cause %v not carried in %v", cause, err)
	}
}

func TestBridgeCancelLosesAfterResolve(t *testing.T) {
	b := await.Open[int]()
	b.Resolve(7)
	if b.Cancel(nil) {
		t.Fatal("Cancel after resolution should lose")
	}
	v, err := b.Poll()
	if err != nil || v != 7 {
		t.Fatalf("outcome got (%d, %v), want (7, nil)", v, err)
	}
}

func TestBridgeAwaitContextCancel(t *testing.T) {
	cause := errors.New("caller gave up")
	ctx, cancel := context.WithCancelCause(context.Background())
	b := await.Open[int]()
	go func() {
		time.Sleep(time.Millisecond)
		cancel(cause)
	}()
	_, err := b.Await(ctx)
	if !await.IsCanceled(err) {
		t.Fatalf("Await got %v, want ErrCanceled", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause %v not carried in %v", cause, err)
	}
}

func TestBridgeOnCancelInvokedByCancel(t *testing.T) {
	var cancels atomix.Uint32
	b := await.Open[int]()
	b.OnCancel(await.CancelFunc(func() { cancels.Add(1) }))
	b.Cancel(nil)
	if n := cancels.Load(); n != 1 {
		t.Fatalf("handle invoked %d times, want 1", n)
	}
}

func TestBridgeOnCancelNotInvokedOnResolve(t *testing.T) {
	var cancels atomix.Uint32
	b := await.Open[int]()
	b.OnCancel(await.CancelFunc(func() { cancels.Add(1) }))
	b.Resolve(1)
	if n := cancels.Load(); n != 0 {
		t.Fatalf("handle invoked %d times after normal resolution, want 0", n)
	}
}

func TestBridgeOnCancelLateRegistration(t *testing.T) {
	// Registration after resolution: the subscription is obsolete and
	// the handle fires immediately, whatever the outcome was.
	var afterResolve atomix.Uint32
	b := await.Open[int]()
	b.Resolve(1)
	b.OnCancel(await.CancelFunc(func() { afterResolve.Add(1) }))
	if n := afterResolve.Load(); n != 1 {
		t.Fatalf("handle after resolve invoked %d times, want 1", n)
	}

	var afterCancel atomix.Uint32
	c := await.Open[int]()
	c.Cancel(nil)
	c.OnCancel(await.CancelFunc(func() { afterCancel.Add(1) }))
	if n := afterCancel.Load(); n != 1 {
		t.Fatalf("handle after cancel invoked %d times, want 1", n)
	}
}

func TestBridgeAwaitAfterResolution(t *testing.T) {
	b := await.Open[int]()
	b.Resolve(3)
	v, err := b.Await(context.Background())
	if err != nil || v != 3 {
		t.Fatalf("Await got (%d, %v), want (3, nil)", v, err)
	}
	// A second Await observes the same committed outcome.
	v, err = b.Await(context.Background())
	if err != nil || v != 3 {
		t.Fatalf("repeat Await got (%d, %v), want (3, nil)", v, err)
	}
}

func TestBridgeSerialMonotonic(t *testing.T) {
	a := await.Open[int]()
	b := await.Open[int]()
	if b.Serial() <= a.Serial() {
		t.Fatalf("serials not increasing: %d then %d", a.Serial(), b.Serial())
	}
}
