// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package inputs provides current sources that can be registered on a neuron
population.  Every source adds its current into a buffer, given the membrane
potential of each neuron, so conductance-based sources can be evaluated at every
integration stage.  Sources with their own dynamics (synaptic conductances driven
by presynaptic spikes) also Reset to the population state size and Step once per
simulation step.

State slices are flat over the population state, with the batch outermost, so
element j of a source corresponds to element j of the population state.
*/
package inputs

import (
	"github.com/chewxy/math32"
	"github.com/emer/spiking/chans"
	"github.com/emer/spiking/clock"
)

// Const is a constant current, the same for all neurons unless
// per-neuron Vals are given, which are tiled over the state.
type Const struct {

	// current added to every neuron
	I float32

	// optional per-neuron currents, overriding I
	Vals []float32
}

// Current adds the constant current to cur
func (ci *Const) Current(v, cur []float32) {
	if len(ci.Vals) == 0 {
		for j := range cur {
			cur[j] += ci.I
		}
		return
	}
	n := len(ci.Vals)
	for j := range cur {
		cur[j] += ci.Vals[j%n]
	}
}

///////////////////////////////////////////////////////////////////////
//  Conductance

// Conductance is a conductance-based exponential synapse: each presynaptic
// spike increments conductance G by Gbar, which decays with time constant Tau,
// and produces current G (E - V) for the reversal potential of its channel.
type Conductance struct {
	Tau  float32        `def:"5" min:"0" desc:"decay time constant of the conductance, in msec"`
	Gbar float32        `def:"0.1" min:"0" desc:"conductance increment per presynaptic spike"`
	Chan chans.Channels `desc:"which channel the synapse opens, selecting its reversal potential"`
	Erev chans.Chans    `view:"inline" desc:"reversal potentials for each channel, in mV"`
	Src  Spikes         `view:"-" json:"-" toml:"-" desc:"source of presynaptic spikes"`

	G   []float32 `view:"-" json:"-" toml:"-" desc:"conductance per state element"`
	spk []float32
}

// NewConductance returns a default excitatory synapse driven by src
func NewConductance(src Spikes) *Conductance {
	cd := &Conductance{Src: src}
	cd.Defaults()
	return cd
}

func (cd *Conductance) Defaults() {
	cd.Tau = 5
	cd.Gbar = 0.1
	cd.Chan = chans.Excite
	cd.Erev.Defaults()
}

// E returns the reversal potential of the synapse
func (cd *Conductance) E() float32 {
	return cd.Erev.Get(cd.Chan)
}

// Reset allocates conductances for n state elements, at zero
func (cd *Conductance) Reset(n int) {
	cd.G = make([]float32, n)
	cd.spk = make([]float32, n)
	if cd.Src != nil {
		cd.Src.Reset(n)
	}
}

// Step decays conductance over the step and adds incoming spikes
func (cd *Conductance) Step(ctx clock.Context) {
	if cd.Src != nil {
		cd.Src.Spikes(ctx, cd.spk)
	}
	decay := math32.Exp(-ctx.Dt / cd.Tau)
	for j := range cd.G {
		cd.G[j] = cd.G[j]*decay + cd.Gbar*cd.spk[j]
	}
}

// Current adds G (E - V) to cur
func (cd *Conductance) Current(v, cur []float32) {
	e := cd.E()
	for j := range cur {
		cur[j] += cd.G[j] * (e - v[j])
	}
}

///////////////////////////////////////////////////////////////////////
//  BiExp

// BiExp is a conductance-based synapse with bi-exponential rise and decay.
// Each spike increments the rising state D by Gbar, and G follows with a peak
// of Gbar per spike at MaxTime after it.
type BiExp struct {
	RiseTau  float32        `def:"2" min:"0" desc:"rise time constant, in msec"`
	DecayTau float32        `def:"20" min:"0" desc:"decay time constant, in msec -- must differ from RiseTau"`
	Gbar     float32        `def:"0.1" min:"0" desc:"peak conductance per presynaptic spike"`
	Chan     chans.Channels `desc:"which channel the synapse opens, selecting its reversal potential"`
	Erev     chans.Chans    `view:"inline" desc:"reversal potentials for each channel, in mV"`
	Src      Spikes         `view:"-" json:"-" toml:"-" desc:"source of presynaptic spikes"`
	MaxTime  float32        `inactive:"+" desc:"time offset when peak conductance occurs, in msec, computed from RiseTau and DecayTau"`
	TauFact  float32        `view:"-" desc:"time constant factor used in integration: (Decay / Rise) ^ (Rise / (Decay - Rise))"`

	G   []float32 `view:"-" json:"-" toml:"-" desc:"conductance per state element"`
	D   []float32 `view:"-" json:"-" toml:"-" desc:"rising state per state element"`
	spk []float32
}

// NewBiExp returns a default excitatory bi-exponential synapse driven by src
func NewBiExp(src Spikes) *BiExp {
	be := &BiExp{Src: src}
	be.Defaults()
	return be
}

func (be *BiExp) Defaults() {
	be.RiseTau = 2
	be.DecayTau = 20
	be.Gbar = 0.1
	be.Chan = chans.Excite
	be.Erev.Defaults()
	be.Update()
}

// Update must be called after any changes to parameters
func (be *BiExp) Update() {
	be.TauFact = math32.Pow(be.DecayTau/be.RiseTau, be.RiseTau/(be.DecayTau-be.RiseTau))
	be.MaxTime = ((be.RiseTau * be.DecayTau) / (be.DecayTau - be.RiseTau)) * math32.Log(be.DecayTau/be.RiseTau)
}

// Deltas returns the rates of change of g and the rising state d
func (be *BiExp) Deltas(g, d float32) (dG, dD float32) {
	dG = (be.TauFact*d - g) / be.RiseTau
	dD = -d / be.DecayTau
	return
}

// Reset allocates state for n elements, at zero
func (be *BiExp) Reset(n int) {
	be.G = make([]float32, n)
	be.D = make([]float32, n)
	be.spk = make([]float32, n)
	if be.Src != nil {
		be.Src.Reset(n)
	}
}

// Step advances the rise and decay by one step and adds incoming spikes
func (be *BiExp) Step(ctx clock.Context) {
	if be.Src != nil {
		be.Src.Spikes(ctx, be.spk)
	}
	for j := range be.G {
		dG, dD := be.Deltas(be.G[j], be.D[j])
		be.G[j] += ctx.Dt * dG
		be.D[j] += ctx.Dt*dD + be.Gbar*be.spk[j]
	}
}

// Current adds G (E - V) to cur
func (be *BiExp) Current(v, cur []float32) {
	e := be.Erev.Get(be.Chan)
	for j := range cur {
		cur[j] += be.G[j] * (e - v[j])
	}
}

///////////////////////////////////////////////////////////////////////
//  MgBlock

// MgBlock is an NMDA synapse: a slow exponential conductance whose current is
// gated by the voltage-dependent magnesium block (Jahr & Stevens, 1990).
type MgBlock struct {
	Conductance
	Mg float32 `def:"1" min:"0" desc:"extracellular magnesium concentration, in mM"`
}

// NewMgBlock returns a default NMDA synapse driven by src
func NewMgBlock(src Spikes) *MgBlock {
	mb := &MgBlock{}
	mb.Src = src
	mb.Defaults()
	return mb
}

func (mb *MgBlock) Defaults() {
	mb.Conductance.Defaults()
	mb.Tau = 100
	mb.Mg = 1
}

// Block returns the fraction of NMDA channels not blocked at membrane potential v, in mV
func (mb *MgBlock) Block(v float32) float32 {
	return 1 / (1 + (mb.Mg/3.57)*math32.Exp(-0.062*v))
}

// Current adds G B(V) (E - V) to cur
func (mb *MgBlock) Current(v, cur []float32) {
	e := mb.E()
	for j := range cur {
		cur[j] += mb.G[j] * mb.Block(v[j]) * (e - v[j])
	}
}
