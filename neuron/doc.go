// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron provides populations of spiking neurons of several model
families (leaky, exponential, quadratic and adaptive integrate-and-fire,
generalized integrate-and-fire with a dynamic threshold, and Izhikevich).

The family is a tagged variant selected by Params.Family, and the other
capabilities are orthogonal options: the integration method (ode.Methods),
the input aggregation strategy (InputAggs), an optional absolute refractory
period (RefParams), and the execution mode (Modes).
In Inference mode spikes are exact and resets overwrite the state. In
Training mode spikes come from a surrogate function of V - threshold and
blend the reset, and the surrogate derivatives needed for gradient
propagation through time are recorded in SpikeGrad and VGrad.

The simulation clock is passed into every Update as a clock.Context, so a
step is a function of the explicit state and context only.
*/
package neuron
