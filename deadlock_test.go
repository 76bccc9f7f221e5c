// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package await_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/await"
)

func TestAwaitWaitCoverage(t *testing.T) {
	b := await.Open[int]()
	go func() {
		b.Await(context.Background())
	}()

	time.Sleep(50 * time.Millisecond) // Give it time to park on the select
	b.Resolve(1)
}

func TestExecWaitCoverage(t *testing.T) {
	b := await.Open[int]()
	go func() {
		await.Exec(await.AwaitEff(b))
	}()

	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
	b.Resolve(1)
}
