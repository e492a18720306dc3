// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import "github.com/emer/spiking/clock"

// Input is a current source registered on a population.
// Current adds the current at membrane potentials v into cur.
// Both are flat over the population state.
type Input interface {
	Current(v, cur []float32)
}

// InputFunc adapts a function to the Input interface
type InputFunc func(v, cur []float32)

func (fn InputFunc) Current(v, cur []float32) { fn(v, cur) }

// Resetter is implemented by inputs with state of their own, which is
// allocated for n state elements whenever the population is Reset, or
// when the input is added to a population that has been Reset.
type Resetter interface {
	Reset(n int)
}

// Stepper is implemented by inputs with dynamics of their own, which are
// advanced once at the start of every population Update.
type Stepper interface {
	Step(ctx clock.Context)
}
