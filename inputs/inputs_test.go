// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputs

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/spiking/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConst(t *testing.T) {
	cur := make([]float32, 4)
	ci := &Const{I: 2}
	ci.Current(nil, cur)
	assert.Equal(t, []float32{2, 2, 2, 2}, cur)

	cur = make([]float32, 4)
	ci = &Const{Vals: []float32{1, 3}}
	ci.Current(nil, cur)
	assert.Equal(t, []float32{1, 3, 1, 3}, cur)
}

func TestSpikeTimes(t *testing.T) {
	st := &SpikeTimes{Times: [][]float32{{0.55, 1.02, 1.05, 3.05}, {2.05}}}
	st.Reset(4)
	out := make([]float32, 4)
	tm := clock.NewTime()
	var tot [2]float32
	for i := 0; i < 40; i++ {
		st.Spikes(tm.Context(), out)
		assert.Equal(t, out[0], out[2], "train tiled over elements")
		tot[0] += out[0]
		tot[1] += out[1]
		if tm.Step == 10 {
			assert.Equal(t, float32(2), out[0], "two spikes in [1, 1.1)")
		}
		tm.StepInc()
	}
	assert.Equal(t, float32(4), tot[0])
	assert.Equal(t, float32(1), tot[1])

	st.Reset(4)
	tm.Reset()
	st.Spikes(tm.Context(), out)
	assert.Equal(t, float32(0), out[0], "rewound")
}

func TestPoisson(t *testing.T) {
	n := 1000
	run := func() []float32 {
		ps := NewPoisson(100, 7)
		ps.Reset(n)
		ctx := clock.Context{Dt: 1}
		out := make([]float32, n)
		sum := make([]float32, n)
		for i := 0; i < 100; i++ {
			ctx.T = float32(i)
			ps.Spikes(ctx, out)
			for j := range out {
				sum[j] += out[j]
			}
		}
		return sum
	}
	a := run()
	b := run()
	require.Equal(t, a, b, "same seed is repeatable")
	var tot float32
	for _, v := range a {
		tot += v
	}
	// 100 Hz over 100 msec is 10 spikes per element
	assert.InDelta(t, 10*float32(n), tot, float64(0.05*10*float32(n)))

	ps := NewPoisson(0, 1)
	out := []float32{5, 5}
	ps.Spikes(clock.Context{Dt: 1}, out)
	assert.Equal(t, []float32{0, 0}, out)
}

func TestConductance(t *testing.T) {
	cd := NewConductance(&SpikeTimes{Times: [][]float32{{0}}})
	cd.Reset(2)
	ctx := clock.Context{T: 0, Dt: 1}
	cd.Step(ctx)
	assert.InDelta(t, cd.Gbar, cd.G[1], 1e-7)
	ctx.T = 1
	cd.Step(ctx)
	assert.InDelta(t, cd.Gbar*math32.Exp(-1/cd.Tau), cd.G[0], 1e-7)

	cur := make([]float32, 2)
	cd.Current([]float32{-70, 0}, cur)
	assert.InDelta(t, cd.G[0]*70, cur[0], 1e-5)
	assert.Equal(t, float32(0), cur[1], "no driving force at reversal")

	cd.Chan = 2 // inhib
	cur = make([]float32, 2)
	cd.Current([]float32{-70, -70}, cur)
	assert.Less(t, cur[0], float32(0))
}

func TestBiExpPeak(t *testing.T) {
	be := NewBiExp(&SpikeTimes{Times: [][]float32{{0}}})
	be.Reset(1)
	ctx := clock.Context{Dt: 0.01}
	var peak, peakT float32
	for i := 0; i < 10000; i++ {
		ctx.T = float32(i) * ctx.Dt
		be.Step(ctx)
		if be.G[0] > peak {
			peak = be.G[0]
			peakT = ctx.T
		}
	}
	assert.InDelta(t, be.Gbar, peak, float64(0.02*be.Gbar))
	assert.InDelta(t, be.MaxTime, peakT, 0.1)
}

func TestMgBlock(t *testing.T) {
	mb := NewMgBlock(nil)
	assert.Equal(t, float32(100), mb.Tau)
	assert.InDelta(t, 1/(1+1/3.57), mb.Block(0), 1e-6)
	prv := mb.Block(-100)
	for v := float32(-99); v <= 20; v++ {
		b := mb.Block(v)
		assert.Greater(t, b, prv, "block relieved by depolarization")
		prv = b
	}
	mb.Reset(1)
	mb.G[0] = 1
	cur := make([]float32, 1)
	mb.Current([]float32{-60}, cur)
	assert.InDelta(t, mb.Block(-60)*60, cur[0], 1e-4)
	mb.Step(clock.Context{Dt: 1})
	assert.InDelta(t, math32.Exp(-0.01), mb.G[0], 1e-6)
}
