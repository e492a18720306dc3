// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the standard ion channels of a conductance-based point neuron,
with reversal potentials in mV, for computing synaptic currents by Ohm's law:
I = g (E - V) for each channel.
Includes excitatory, leak, inhibition, and dynamic potassium channels.
*/
package chans

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// Chans are ion channel values, either reversal potentials or conductances
type Chans struct {

	// excitatory sodium (Na) AMPA channels activated by synaptic glutamate
	E float32

	// constant leak (potassium, K+) channels -- determines resting potential
	L float32

	// inhibitory chloride (Cl-) channels activated by synaptic GABA
	I float32

	// gated / active potassium channels -- typically hyperpolarizing relative to leak / rest
	K float32
}

// Defaults sets standard reversal potentials in mV
func (ch *Chans) Defaults() {
	ch.SetAll(0, -70, -80, -90)
}

// SetAll sets all the values
func (ch *Chans) SetAll(e, l, i, k float32) {
	ch.E, ch.L, ch.I, ch.K = e, l, i, k
}

// Channels are the channel selectors
type Channels int32

//go:generate stringer -type=Channels

var KiT_Channels = kit.Enums.AddEnum(ChannelsN, kit.NotBitFlag, nil)

func (ev Channels) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Channels) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Channels) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *Channels) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *Channels) FromString(s string) error {
	for i := Channels(0); i < ChannelsN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("chans: unknown channel %q", s)
}

// The channels
const (
	// Excite is the excitatory AMPA channel
	Excite Channels = iota

	// Leak is the constant leak channel
	Leak

	// Inhib is the inhibitory GABA channel
	Inhib

	// Potassium is the gated potassium channel
	Potassium

	ChannelsN
)

// Get returns the value for the given channel
func (ch *Chans) Get(c Channels) float32 {
	switch c {
	case Excite:
		return ch.E
	case Leak:
		return ch.L
	case Inhib:
		return ch.I
	}
	return ch.K
}

// Set sets the value for the given channel
func (ch *Chans) Set(c Channels, val float32) {
	switch c {
	case Excite:
		ch.E = val
	case Leak:
		ch.L = val
	case Inhib:
		ch.I = val
	default:
		ch.K = val
	}
}
