// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/emer/etable/v2/etensor"
)

// TLastSpikeInit is the initial time of last spike, far enough in the past
// that no neuron starts refractory
const TLastSpikeInit = -1e7

// StateVars are all the state variable names, in canonical order.
// A population only allocates the variables used by its family and options.
var StateVars = []string{"V", "W", "U", "I1", "I2", "Vth", "Spike", "TLastSpike", "SpikeGrad", "VGrad", "Refractory"}

// State holds the state tensors of a population, each shaped
// [Batch, *population shape] in batched mode, [*population shape] otherwise.
// Variables not used by the family or options are nil.
type State struct {

	// membrane potential, in mV
	V *etensor.Float32

	// adaptation current (AdExIF, AdQuaIF)
	W *etensor.Float32

	// recovery variable (Izhikevich)
	U *etensor.Float32

	// fast internal current (Gif)
	I1 *etensor.Float32

	// slow internal current (Gif)
	I2 *etensor.Float32

	// dynamic spike threshold, in mV (Gif)
	Vth *etensor.Float32

	// spike output of the last step: 0 / 1 in inference, graded in training
	Spike *etensor.Float32

	// time of the last spike, in msec (refractory)
	TLastSpike *etensor.Float32

	// surrogate derivative of Spike with respect to V - threshold (training)
	SpikeGrad *etensor.Float32

	// derivative of the post-reset V with respect to the integrated V (training)
	VGrad *etensor.Float32

	// refractory or spiking on the last step (refractory with Var)
	Refractory *etensor.Bits
}

// float returns the float state variable of given name, and its address
func (st *State) float(name string) (**etensor.Float32, bool) {
	switch name {
	case "V":
		return &st.V, true
	case "W":
		return &st.W, true
	case "U":
		return &st.U, true
	case "I1":
		return &st.I1, true
	case "I2":
		return &st.I2, true
	case "Vth":
		return &st.Vth, true
	case "Spike":
		return &st.Spike, true
	case "TLastSpike":
		return &st.TLastSpike, true
	case "SpikeGrad":
		return &st.SpikeGrad, true
	case "VGrad":
		return &st.VGrad, true
	}
	return nil, false
}

// Tensor returns the state variable of given name, nil if not allocated
// or not a variable
func (st *State) Tensor(name string) etensor.Tensor {
	if name == "Refractory" {
		if st.Refractory == nil {
			return nil
		}
		return st.Refractory
	}
	pt, ok := st.float(name)
	if !ok || *pt == nil {
		return nil
	}
	return *pt
}

// Allocated returns the names of the allocated state variables
func (st *State) Allocated() []string {
	var nms []string
	for _, nm := range StateVars {
		if st.Tensor(nm) != nil {
			nms = append(nms, nm)
		}
	}
	return nms
}
