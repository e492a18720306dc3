// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inputs

import (
	"github.com/emer/spiking/clock"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Spikes is a source of presynaptic spikes for a synapse
type Spikes interface {

	// Reset restarts the source for n state elements
	Reset(n int)

	// Spikes writes the number of spikes arriving by T+Dt for each element
	Spikes(ctx clock.Context, out []float32)
}

// Poisson generates independent Poisson spike counts for each element,
// at Rate spikes per second.  The same Seed always produces the same trains.
type Poisson struct {
	Rate float32 `def:"50" min:"0" desc:"firing rate in Hz"`
	Seed uint64  `desc:"random seed, applied at Reset"`

	dist distuv.Poisson
}

// NewPoisson returns a Poisson source at given rate and seed
func NewPoisson(rate float32, seed uint64) *Poisson {
	return &Poisson{Rate: rate, Seed: seed}
}

// Reset restarts the random sequence from Seed
func (ps *Poisson) Reset(n int) {
	ps.dist = distuv.Poisson{Src: rand.NewSource(ps.Seed)}
}

func (ps *Poisson) Spikes(ctx clock.Context, out []float32) {
	lambda := float64(ps.Rate) * float64(ctx.Dt) / 1000
	if lambda <= 0 {
		for j := range out {
			out[j] = 0
		}
		return
	}
	if ps.dist.Src == nil {
		ps.Reset(len(out))
	}
	ps.dist.Lambda = lambda
	for j := range out {
		out[j] = float32(ps.dist.Rand())
	}
}

// SpikeTimes replays fixed spike trains.  Each train is a list of spike times
// in msec, in ascending order, and each spike is delivered once, at the first
// step ending after it.  A single train drives every element,
// otherwise trains are assigned to elements modulo the number of trains
// (e.g., one per neuron, repeated over the batch).
type SpikeTimes struct {
	Times [][]float32

	idx []int
	cnt []float32
}

// Reset rewinds all trains to the start
func (st *SpikeTimes) Reset(n int) {
	st.idx = make([]int, len(st.Times))
	st.cnt = make([]float32, len(st.Times))
}

func (st *SpikeTimes) Spikes(ctx clock.Context, out []float32) {
	if len(st.idx) != len(st.Times) {
		st.Reset(len(out))
	}
	end := ctx.T + ctx.Dt
	for k, tr := range st.Times {
		st.cnt[k] = 0
		for st.idx[k] < len(tr) && tr[st.idx[k]] < end {
			st.cnt[k]++
			st.idx[k]++
		}
	}
	nt := len(st.Times)
	for j := range out {
		if nt == 0 {
			out[j] = 0
			continue
		}
		out[j] = st.cnt[j%nt]
	}
}
