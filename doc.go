// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spiking is the overall repository for populations of spiking neuron
models implemented in the Go language (golang), which can be run exactly for
inference or with surrogate spike functions for training.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* neuron: the Population of neurons of one model family (IF, LIF, ExpIF, AdExIF,
QuaIF, AdQuaIF, Gif, Izhikevich), which integrates its state variables over one
step, detects spikes, resets, and applies the optional refractory period.

* ode: the integrators (Euler, Heun, RK4, exponential Euler) for systems of
coupled state variables.

* surrogate: spike functions with surrogate gradients, including the graded
noisy x/(x+1) rate-code function.

* initz: initializers and per-neuron parameters for state tensors, shaped
as the population with an optional leading batch dimension.

* chans: reversal potentials of the basic channels.

* inputs: current sources registered on a population: constant currents and
conductance-based synapses driven by Poisson or scheduled spikes.

* clock: the simulation time passed by value into every update.

* monitor: records populations into etable.Table for analysis and CSV export.

* examples: runnable demos, e.g., firing, which runs one population from a TOML config.
*/
package spiking
