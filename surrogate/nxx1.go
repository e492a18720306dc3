// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surrogate

import "github.com/chewxy/math32"

// NoisyXX1 is a graded spike function: x/(x+1) convolved with gaussian noise,
// computed with a piece-wise approximation (sigmoid below 0, linear
// interpolation just above 0, gain-corrected x/(x+1) beyond).
// It rises smoothly from 0, is largely linear at first and saturates at 1.
// Scale converts the distance above threshold, in mV, into the normalized
// units of the function.
type NoisyXX1 struct {
	Gain         float32 `def:"100" min:"0" desc:"gain (gamma) of the x/(x+1) function"`
	NVar         float32 `def:"0.005" min:"0" desc:"variance of the gaussian noise kernel convolved with x/(x+1)"`
	SigMult      float32 `def:"0.33" desc:"multiplier on sigmoid used for values below 0"`
	SigMultPow   float32 `def:"0.8" desc:"power for computing SigMultEff as function of Gain * NVar"`
	SigGain      float32 `def:"3" desc:"gain multipler on x for sigmoid used for values below 0"`
	InterpRange  float32 `def:"0.01" desc:"interpolation range above zero"`
	GainCorRange float32 `def:"10" desc:"range in units of NVar over which to apply gain correction to compensate for convolution"`
	GainCor      float32 `def:"0.1" desc:"gain correction multiplier"`
	Scale        float32 `def:"0.01" desc:"multiplier converting V - Vth into function units"`

	SigGainNVar float32 `view:"-" json:"-" desc:"SigGain / NVar"`
	SigMultEff  float32 `view:"-" json:"-" desc:"SigMult * (Gain * NVar) ^ SigMultPow"`
	SigValAt0   float32 `view:"-" json:"-" desc:"0.5 * SigMultEff"`
	InterpVal   float32 `view:"-" json:"-" desc:"function value at InterpRange minus SigValAt0"`
}

// NewNoisyXX1 returns a NoisyXX1 with default parameters
func NewNoisyXX1() *NoisyXX1 {
	nx := &NoisyXX1{}
	nx.Defaults()
	return nx
}

func (nx *NoisyXX1) Defaults() {
	nx.Gain = 100
	nx.NVar = 0.005
	nx.SigMult = 0.33
	nx.SigMultPow = 0.8
	nx.SigGain = 3
	nx.InterpRange = 0.01
	nx.GainCorRange = 10
	nx.GainCor = 0.1
	nx.Scale = 0.01
	nx.Update()
}

// Update must be called after any changes to parameters
func (nx *NoisyXX1) Update() {
	nx.SigGainNVar = nx.SigGain / nx.NVar
	nx.SigMultEff = nx.SigMult * math32.Pow(nx.Gain*nx.NVar, nx.SigMultPow)
	nx.SigValAt0 = 0.5 * nx.SigMultEff
	nx.InterpVal = nx.gainCor(nx.InterpRange) - nx.SigValAt0
}

// gainCor returns x/(x+1) of gain-corrected x, and its derivative
func (nx *NoisyXX1) gainCorGrad(x float32) (y, dy float32) {
	fact := (nx.GainCorRange - (x / nx.NVar)) / nx.GainCorRange
	if fact < 0 {
		gx := nx.Gain * x
		return gx / (gx + 1), nx.Gain / ((gx + 1) * (gx + 1))
	}
	gain := nx.Gain * (1 - nx.GainCor*fact)
	gx := gain * x
	dgx := gain + x*nx.Gain*nx.GainCor/(nx.NVar*nx.GainCorRange)
	return gx / (gx + 1), dgx / ((gx + 1) * (gx + 1))
}

func (nx *NoisyXX1) gainCor(x float32) float32 {
	y, _ := nx.gainCorGrad(x)
	return y
}

// Value returns the function in its own units
func (nx *NoisyXX1) Value(x float32) float32 {
	switch {
	case x < 0:
		return nx.SigMultEff / (1 + math32.Exp(-(x * nx.SigGainNVar)))
	case x < nx.InterpRange:
		interp := 1 - ((nx.InterpRange - x) / nx.InterpRange)
		return nx.SigValAt0 + interp*nx.InterpVal
	}
	return nx.gainCor(x)
}

// Deriv returns the derivative of Value
func (nx *NoisyXX1) Deriv(x float32) float32 {
	switch {
	case x < 0:
		f := nx.Value(x)
		return nx.SigGainNVar * f * (1 - f/nx.SigMultEff)
	case x < nx.InterpRange:
		return nx.InterpVal / nx.InterpRange
	}
	_, dy := nx.gainCorGrad(x)
	return dy
}

func (nx *NoisyXX1) Spike(x float32) float32 { return nx.Value(nx.Scale * x) }

func (nx *NoisyXX1) Grad(x float32) float32 { return nx.Scale * nx.Deriv(nx.Scale*x) }
