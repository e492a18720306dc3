// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestTimeStep(t *testing.T) {
	tm := NewTime()
	if tm.Dt != 0.1 {
		t.Errorf("default dt: %v", tm.Dt)
	}
	n := tm.Duration(30)
	if n != 300 {
		t.Errorf("duration steps: %d", n)
	}
	for i := 0; i < n; i++ {
		tm.StepInc()
	}
	if dif := math32.Abs(tm.T - 30); dif > 1e-4 {
		t.Errorf("time after %d steps: %v", n, tm.T)
	}
	ctx := tm.Context()
	if ctx.T != tm.T || ctx.Dt != tm.Dt {
		t.Errorf("context: %+v", ctx)
	}
	tm.Reset()
	if tm.T != 0 || tm.Step != 0 {
		t.Errorf("reset: %+v", tm)
	}
}
