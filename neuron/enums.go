// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// Families are the neuron model families
type Families int32

//go:generate stringer -type=Families

var KiT_Families = kit.Enums.AddEnum(FamiliesN, kit.NotBitFlag, nil)

func (ev Families) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Families) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Families) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *Families) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *Families) FromString(s string) error {
	for i := Families(0); i < FamiliesN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("neuron: unknown family %q", s)
}

// The neuron model families
const (
	// IF is the leaky integrator without spiking, observed through V
	IF Families = iota

	// LIF is the leaky integrate-and-fire neuron
	LIF

	// ExpIF is the exponential integrate-and-fire neuron
	ExpIF

	// AdExIF is the adaptive exponential integrate-and-fire neuron
	AdExIF

	// QuaIF is the quadratic integrate-and-fire neuron
	QuaIF

	// AdQuaIF is the adaptive quadratic integrate-and-fire neuron
	AdQuaIF

	// Gif is the generalized integrate-and-fire neuron, with two internal
	// currents and a dynamic threshold (Mihalas & Niebur, 2009)
	Gif

	// Izhikevich is the Izhikevich (2003) quadratic model with recovery variable u
	Izhikevich

	FamiliesN
)

// Modes are the execution modes of a population
type Modes int32

//go:generate stringer -type=Modes

var KiT_Modes = kit.Enums.AddEnum(ModesN, kit.NotBitFlag, nil)

func (ev Modes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Modes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Modes) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *Modes) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *Modes) FromString(s string) error {
	for i := Modes(0); i < ModesN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrMode, s)
}

// The execution modes
const (
	// Inference spikes are exact 0 / 1 values and resets are exact overwrites
	Inference Modes = iota

	// Training spikes are surrogate values in [0, 1] that blend the reset,
	// and surrogate derivatives are recorded for gradient propagation
	Training

	ModesN
)

// InputAggs are the ways registered current inputs are aggregated
type InputAggs int32

//go:generate stringer -type=InputAggs

var KiT_InputAggs = kit.Enums.AddEnum(InputAggsN, kit.NotBitFlag, nil)

func (ev InputAggs) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *InputAggs) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev InputAggs) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *InputAggs) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *InputAggs) FromString(s string) error {
	for i := InputAggs(0); i < InputAggsN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("neuron: unknown input aggregation %q", s)
}

// The input aggregation strategies
const (
	// StageInputs re-evaluates registered inputs at every derivative
	// evaluation, at the stage voltage.  Required for multi-stage integrators.
	StageInputs InputAggs = iota

	// StepInputs evaluates registered inputs once per step at the pre-step
	// voltage and holds the current constant over the step.
	StepInputs

	InputAggsN
)
