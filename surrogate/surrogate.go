// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package surrogate provides spike functions for training-mode populations.
Each function maps the distance above threshold, x = V - Vth, to a spike value
in [0, 1] that is monotonically non-decreasing in x, saturating at 0 for
x -> -inf and at 1 for x -> +inf, together with a well-defined derivative
(the surrogate gradient) used in place of the derivative of the step function.

Most functions use the exact step as their forward value and only replace the
gradient. SoftSigmoid and NXX1 produce graded spikes in the forward pass too.
*/
package surrogate

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// Func is a surrogate spike function
type Func interface {

	// Spike returns the spike value for x = V - Vth
	Spike(x float32) float32

	// Grad returns the surrogate derivative d Spike / dx
	Grad(x float32) float32
}

// Types are the available surrogate spike functions
type Types int32

//go:generate stringer -type=Types

var KiT_Types = kit.Enums.AddEnum(TypesN, kit.NotBitFlag, nil)

func (ev Types) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Types) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Types) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *Types) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *Types) FromString(s string) error {
	for i := Types(0); i < TypesN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("surrogate: unknown type %q", s)
}

// The surrogate spike functions
const (
	// InvSquare is a step forward with gradient 1 / (Alpha |x| + 1)^2
	InvSquare Types = iota

	// Sigmoid is a step forward with the derivative of sigmoid(Alpha x) as gradient
	Sigmoid

	// ArcTan is a step forward with the derivative of 1/pi atan(pi/2 Alpha x) + 1/2 as gradient
	ArcTan

	// Gaussian is a step forward with a gaussian of width 1/Alpha as gradient
	Gaussian

	// SoftSigmoid is a graded sigmoid(Alpha x) in both passes
	SoftSigmoid

	// NXX1 is the graded noisy x/(x+1) rate-code function, on x scaled by Alpha
	NXX1

	TypesN
)

// Params select and parameterize the surrogate spike function
type Params struct {
	Type  Types   `desc:"which surrogate function to use"`
	Alpha float32 `def:"100" min:"0" desc:"sharpness of the function -- larger values approach the step function more closely.  For NXX1 this instead scales mV to the normalized units of the function, e.g., 0.01"`
}

func (sp *Params) Defaults() {
	sp.Type = InvSquare
	sp.Alpha = 100
}

func (sp *Params) Update() {
}

// Func returns the configured surrogate function
func (sp *Params) Func() Func {
	switch sp.Type {
	case Sigmoid:
		return SigmoidGrad{Alpha: sp.Alpha}
	case ArcTan:
		return ArcTanGrad{Alpha: sp.Alpha}
	case Gaussian:
		return GaussianGrad{Alpha: sp.Alpha}
	case SoftSigmoid:
		return Soft{Alpha: sp.Alpha}
	case NXX1:
		nx := NewNoisyXX1()
		nx.Scale = sp.Alpha
		return nx
	}
	return InvSquareGrad{Alpha: sp.Alpha}
}

// Heaviside is the step function, 1 for x >= 0
func Heaviside(x float32) float32 {
	if x >= 0 {
		return 1
	}
	return 0
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// InvSquareGrad is the step function with an inverse-square surrogate gradient
type InvSquareGrad struct {
	Alpha float32
}

func (sf InvSquareGrad) Spike(x float32) float32 { return Heaviside(x) }

func (sf InvSquareGrad) Grad(x float32) float32 {
	d := sf.Alpha*math32.Abs(x) + 1
	return 1 / (d * d)
}

// SigmoidGrad is the step function with a sigmoid-derivative surrogate gradient
type SigmoidGrad struct {
	Alpha float32
}

func (sf SigmoidGrad) Spike(x float32) float32 { return Heaviside(x) }

func (sf SigmoidGrad) Grad(x float32) float32 {
	s := sigmoid(sf.Alpha * x)
	return sf.Alpha * s * (1 - s)
}

// ArcTanGrad is the step function with an arctan-derivative surrogate gradient
type ArcTanGrad struct {
	Alpha float32
}

func (sf ArcTanGrad) Spike(x float32) float32 { return Heaviside(x) }

func (sf ArcTanGrad) Grad(x float32) float32 {
	z := 0.5 * math32.Pi * sf.Alpha * x
	return 0.5 * sf.Alpha / (1 + z*z)
}

// GaussianGrad is the step function with a gaussian surrogate gradient of unit area
type GaussianGrad struct {
	Alpha float32
}

func (sf GaussianGrad) Spike(x float32) float32 { return Heaviside(x) }

func (sf GaussianGrad) Grad(x float32) float32 {
	z := sf.Alpha * x
	return sf.Alpha * math32.Exp(-0.5*z*z) / math32.Sqrt(2*math32.Pi)
}

// Soft is a graded sigmoid spike
type Soft struct {
	Alpha float32
}

func (sf Soft) Spike(x float32) float32 { return sigmoid(sf.Alpha * x) }

func (sf Soft) Grad(x float32) float32 {
	s := sigmoid(sf.Alpha * x)
	return sf.Alpha * s * (1 - s)
}
