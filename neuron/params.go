// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/spiking/initz"
	"github.com/emer/spiking/ode"
	"github.com/emer/spiking/surrogate"
)

// SpikeParams control spike generation in training mode
type SpikeParams struct {
	Surr   surrogate.Params `view:"inline" desc:"surrogate spike function used in training mode"`
	Detach bool             `desc:"cut the derivative of the reset through the spike: the exported VGrad then treats the spike as a constant"`
	Thr    float32          `def:"0.5" min:"0" max:"1" desc:"graded spike values above this count as a spike for refractory and spike time bookkeeping"`
}

func (sp *SpikeParams) Defaults() {
	sp.Surr.Defaults()
	sp.Detach = false
	sp.Thr = 0.5
}

func (sp *SpikeParams) Update() {
	sp.Surr.Update()
}

// RefParams control the optional absolute refractory period
type RefParams struct {
	On  bool        `desc:"apply a refractory period after each spike, during which V is held at its pre-step value"`
	Tau initz.Param `viewif:"On" def:"5" min:"0" desc:"refractory period, in msec"`
	Var bool        `viewif:"On" desc:"record the Refractory state variable, true for neurons refractory or spiking on the last step"`
}

func (rp *RefParams) Defaults() {
	rp.On = false
	rp.Tau.Set(5)
	rp.Var = false
}

func (rp *RefParams) Update() {
}

// Params are all the parameters of a population.  Only the params
// of the selected family are used.
type Params struct {
	Family Families    `desc:"which neuron model family to use"`
	Mode   Modes       `desc:"execution mode: exact spikes for inference, surrogate spikes for training"`
	Method ode.Methods `desc:"integration method"`
	Agg    InputAggs   `desc:"how registered current inputs are aggregated over the stages of an integration step"`
	Spike  SpikeParams `view:"inline" desc:"spike generation"`
	Ref    RefParams   `view:"inline" desc:"refractory period"`
	IF     IFParams    `viewif:"Family=IF" desc:"leaky integrator parameters"`
	LIF    LIFParams   `viewif:"Family=LIF" desc:"leaky integrate-and-fire parameters"`
	ExpIF  ExpIFParams `viewif:"Family=ExpIF" desc:"exponential integrate-and-fire parameters"`
	AdEx   AdExParams  `viewif:"Family=AdExIF" desc:"adaptive exponential integrate-and-fire parameters"`
	QuaIF  QuaIFParams `viewif:"Family=QuaIF" desc:"quadratic integrate-and-fire parameters"`
	AdQua  AdQuaParams `viewif:"Family=AdQuaIF" desc:"adaptive quadratic integrate-and-fire parameters"`
	Gif    GifParams   `viewif:"Family=Gif" desc:"generalized integrate-and-fire parameters"`
	Izh    IzhParams   `viewif:"Family=Izhikevich" desc:"Izhikevich parameters"`
}

func (pr *Params) Defaults() {
	pr.Mode = Inference
	pr.Method = ode.ExpEuler
	pr.Agg = StageInputs
	pr.Spike.Defaults()
	pr.Ref.Defaults()
	pr.IF.Defaults()
	pr.LIF.Defaults()
	pr.ExpIF.Defaults()
	pr.AdEx.Defaults()
	pr.QuaIF.Defaults()
	pr.AdQua.Defaults()
	pr.Gif.Defaults()
	pr.Izh.Defaults()
	pr.Update()
}

// Update must be called after any changes to parameters
func (pr *Params) Update() {
	pr.Spike.Update()
	pr.Ref.Update()
	pr.IF.Update()
	pr.LIF.Update()
	pr.ExpIF.Update()
	pr.AdEx.Update()
	pr.QuaIF.Update()
	pr.AdQua.Update()
	pr.Gif.Update()
	pr.Izh.Update()
}

// Dynamics returns the params of the selected family, or nil if the
// family is not valid
func (pr *Params) Dynamics() Dynamics {
	switch pr.Family {
	case IF:
		return &pr.IF
	case LIF:
		return &pr.LIF
	case ExpIF:
		return &pr.ExpIF
	case AdExIF:
		return &pr.AdEx
	case QuaIF:
		return &pr.QuaIF
	case AdQuaIF:
		return &pr.AdQua
	case Gif:
		return &pr.Gif
	case Izhikevich:
		return &pr.Izh
	}
	return nil
}
