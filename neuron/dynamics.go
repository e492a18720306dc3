// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"github.com/chewxy/math32"
	"github.com/emer/spiking/initz"
	"github.com/emer/spiking/surrogate"
)

// Dynamics is the derivative and reset policy of one model family.
// All methods work on element j of the integrated state x, which holds
// the variables named by Vars, in that order, with V first.
// Parameters are indexed by the flat state index j, which broadcasts over
// the batch.
type Dynamics interface {

	// Defaults sets default parameter values
	Defaults()

	// Update must be called after any changes to parameters
	Update()

	// Vars returns the names of the integrated state variables, V first
	Vars() []string

	// Init returns the default initializer for a state variable
	Init(name string) initz.Initializer

	// Deriv sets the derivatives of element j for total input current cur
	Deriv(j int, x, dx [][]float32, cur float32)

	// Lin sets the diagonal of the jacobian of element j
	Lin(j int, x, lin [][]float32, cur float32)

	// Spiking returns false for families that never spike
	Spiking() bool

	// Thresh returns the spike threshold of element j
	Thresh(j int, x [][]float32) float32

	// VReset returns the voltage reset value of element j
	VReset(j int) float32

	// Reset applies the spike reset to element j.  If sf is nil, this is an
	// exact select on spike s (0 or 1), otherwise every variable is blended
	// toward its reset value by the graded spike s.
	Reset(j int, x [][]float32, s float32, sf surrogate.Func)

	// Params returns all parameters, for validation against the population size
	Params() []*initz.Param
}

// blend moves v toward r by s
func blend(v, r, s float32) float32 {
	return v + (r-v)*s
}

///////////////////////////////////////////////////////////////////////
//  IF

// IFParams are the parameters of the leaky integrator:
// tau dV/dt = -V + V_rest + R I
type IFParams struct {
	VRest initz.Param `def:"0" desc:"resting potential, in mV"`
	R     initz.Param `def:"1" desc:"membrane resistance"`
	Tau   initz.Param `def:"10" min:"0" desc:"membrane time constant, in msec"`
}

func (ip *IFParams) Defaults() {
	ip.VRest.Set(0)
	ip.R.Set(1)
	ip.Tau.Set(10)
}

func (ip *IFParams) Update() {
}

func (ip *IFParams) Vars() []string                     { return []string{"V"} }
func (ip *IFParams) Init(name string) initz.Initializer { return initz.Zeros() }
func (ip *IFParams) Spiking() bool                      { return false }
func (ip *IFParams) Thresh(j int, x [][]float32) float32 { return math32.Inf(1) }
func (ip *IFParams) VReset(j int) float32               { return ip.VRest.At(j) }
func (ip *IFParams) Params() []*initz.Param             { return []*initz.Param{&ip.VRest, &ip.R, &ip.Tau} }

func (ip *IFParams) Deriv(j int, x, dx [][]float32, cur float32) {
	dx[0][j] = (-x[0][j] + ip.VRest.At(j) + ip.R.At(j)*cur) / ip.Tau.At(j)
}

func (ip *IFParams) Lin(j int, x, lin [][]float32, cur float32) {
	lin[0][j] = -1 / ip.Tau.At(j)
}

func (ip *IFParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
}

///////////////////////////////////////////////////////////////////////
//  LIF

// LIFParams are the parameters of the leaky integrate-and-fire neuron:
// tau dV/dt = -V + V_rest + R I, with V reset to V_reset at V >= V_th
type LIFParams struct {
	VRest  initz.Param `def:"0" desc:"resting potential, in mV"`
	VReset initz.Param `def:"-5" desc:"reset potential after a spike, in mV"`
	VTh    initz.Param `def:"20" desc:"spike threshold, in mV"`
	R      initz.Param `def:"1" desc:"membrane resistance"`
	Tau    initz.Param `def:"10" min:"0" desc:"membrane time constant, in msec"`
}

func (lp *LIFParams) Defaults() {
	lp.VRest.Set(0)
	lp.VReset.Set(-5)
	lp.VTh.Set(20)
	lp.R.Set(1)
	lp.Tau.Set(10)
}

func (lp *LIFParams) Update() {
}

func (lp *LIFParams) Vars() []string                     { return []string{"V"} }
func (lp *LIFParams) Init(name string) initz.Initializer { return initz.Zeros() }
func (lp *LIFParams) Spiking() bool                      { return true }
func (lp *LIFParams) Thresh(j int, x [][]float32) float32 { return lp.VTh.At(j) }
func (lp *LIFParams) VReset(j int) float32               { return lp.VReset.At(j) }

func (lp *LIFParams) Params() []*initz.Param {
	return []*initz.Param{&lp.VRest, &lp.VReset, &lp.VTh, &lp.R, &lp.Tau}
}

func (lp *LIFParams) Deriv(j int, x, dx [][]float32, cur float32) {
	dx[0][j] = (-x[0][j] + lp.VRest.At(j) + lp.R.At(j)*cur) / lp.Tau.At(j)
}

func (lp *LIFParams) Lin(j int, x, lin [][]float32, cur float32) {
	lin[0][j] = -1 / lp.Tau.At(j)
}

func (lp *LIFParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = lp.VReset.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], lp.VReset.At(j), s)
}

///////////////////////////////////////////////////////////////////////
//  ExpIF

// ExpIFParams are the parameters of the exponential integrate-and-fire neuron:
// tau dV/dt = -(V - V_rest) + dT exp((V - V_T) / dT) + R I
type ExpIFParams struct {
	VRest  initz.Param `def:"-65" desc:"resting potential, in mV"`
	VReset initz.Param `def:"-68" desc:"reset potential after a spike, in mV"`
	VTh    initz.Param `def:"-30" desc:"spike threshold, in mV"`
	VT     initz.Param `def:"-59.9" desc:"soft threshold where the exponential term takes off, in mV"`
	DeltaT initz.Param `def:"3.48" min:"0" desc:"spike slope factor, in mV"`
	R      initz.Param `def:"1" desc:"membrane resistance"`
	Tau    initz.Param `def:"10" min:"0" desc:"membrane time constant, in msec"`
}

func (ep *ExpIFParams) Defaults() {
	ep.VRest.Set(-65)
	ep.VReset.Set(-68)
	ep.VTh.Set(-30)
	ep.VT.Set(-59.9)
	ep.DeltaT.Set(3.48)
	ep.R.Set(1)
	ep.Tau.Set(10)
}

func (ep *ExpIFParams) Update() {
}

func (ep *ExpIFParams) Vars() []string                     { return []string{"V"} }
func (ep *ExpIFParams) Init(name string) initz.Initializer { return initz.Zeros() }
func (ep *ExpIFParams) Spiking() bool                      { return true }
func (ep *ExpIFParams) Thresh(j int, x [][]float32) float32 { return ep.VTh.At(j) }
func (ep *ExpIFParams) VReset(j int) float32               { return ep.VReset.At(j) }

func (ep *ExpIFParams) Params() []*initz.Param {
	return []*initz.Param{&ep.VRest, &ep.VReset, &ep.VTh, &ep.VT, &ep.DeltaT, &ep.R, &ep.Tau}
}

// expTerm returns dT exp((v - V_T) / dT)
func (ep *ExpIFParams) expTerm(j int, v float32) float32 {
	dt := ep.DeltaT.At(j)
	return dt * math32.Exp((v-ep.VT.At(j))/dt)
}

func (ep *ExpIFParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v := x[0][j]
	dx[0][j] = (-(v - ep.VRest.At(j)) + ep.expTerm(j, v) + ep.R.At(j)*cur) / ep.Tau.At(j)
}

func (ep *ExpIFParams) Lin(j int, x, lin [][]float32, cur float32) {
	v := x[0][j]
	lin[0][j] = (-1 + ep.expTerm(j, v)/ep.DeltaT.At(j)) / ep.Tau.At(j)
}

func (ep *ExpIFParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = ep.VReset.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], ep.VReset.At(j), s)
}

///////////////////////////////////////////////////////////////////////
//  AdExIF

// AdExParams are the parameters of the adaptive exponential integrate-and-fire neuron:
// tau dV/dt = -V + V_rest + dT exp((V - V_T) / dT) - R w + R I
// tau_w dw/dt = a (V - V_rest) - w, with w += b at each spike
type AdExParams struct {
	ExpIFParams
	A    initz.Param `def:"1" desc:"subthreshold coupling of adaptation to V"`
	B    initz.Param `def:"1" desc:"spike-triggered adaptation increment"`
	TauW initz.Param `def:"30" min:"0" desc:"adaptation time constant, in msec"`
}

func (ap *AdExParams) Defaults() {
	ap.ExpIFParams.Defaults()
	ap.A.Set(1)
	ap.B.Set(1)
	ap.TauW.Set(30)
}

func (ap *AdExParams) Vars() []string { return []string{"V", "W"} }

func (ap *AdExParams) Params() []*initz.Param {
	return append(ap.ExpIFParams.Params(), &ap.A, &ap.B, &ap.TauW)
}

func (ap *AdExParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v, w := x[0][j], x[1][j]
	r := ap.R.At(j)
	vr := ap.VRest.At(j)
	dx[0][j] = (-v + vr + ap.expTerm(j, v) - r*w + r*cur) / ap.Tau.At(j)
	dx[1][j] = (ap.A.At(j)*(v-vr) - w) / ap.TauW.At(j)
}

func (ap *AdExParams) Lin(j int, x, lin [][]float32, cur float32) {
	ap.ExpIFParams.Lin(j, x, lin, cur)
	lin[1][j] = -1 / ap.TauW.At(j)
}

func (ap *AdExParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = ap.VReset.At(j)
			x[1][j] += ap.B.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], ap.VReset.At(j), s)
	x[1][j] += ap.B.At(j) * s
}

///////////////////////////////////////////////////////////////////////
//  QuaIF

// QuaIFParams are the parameters of the quadratic integrate-and-fire neuron:
// tau dV/dt = c (V - V_rest) (V - V_c) + R I
type QuaIFParams struct {
	VRest  initz.Param `def:"-65" desc:"resting potential, in mV"`
	VReset initz.Param `def:"-68" desc:"reset potential after a spike, in mV"`
	VTh    initz.Param `def:"-30" desc:"spike threshold, in mV"`
	VC     initz.Param `def:"-50" desc:"critical voltage for spike initiation, in mV"`
	C      initz.Param `def:"0.07" desc:"coefficient of the quadratic term, in 1/mV"`
	R      initz.Param `def:"1" desc:"membrane resistance"`
	Tau    initz.Param `def:"10" min:"0" desc:"membrane time constant, in msec"`
}

func (qp *QuaIFParams) Defaults() {
	qp.VRest.Set(-65)
	qp.VReset.Set(-68)
	qp.VTh.Set(-30)
	qp.VC.Set(-50)
	qp.C.Set(0.07)
	qp.R.Set(1)
	qp.Tau.Set(10)
}

func (qp *QuaIFParams) Update() {
}

func (qp *QuaIFParams) Vars() []string                     { return []string{"V"} }
func (qp *QuaIFParams) Init(name string) initz.Initializer { return initz.Zeros() }
func (qp *QuaIFParams) Spiking() bool                      { return true }
func (qp *QuaIFParams) Thresh(j int, x [][]float32) float32 { return qp.VTh.At(j) }
func (qp *QuaIFParams) VReset(j int) float32               { return qp.VReset.At(j) }

func (qp *QuaIFParams) Params() []*initz.Param {
	return []*initz.Param{&qp.VRest, &qp.VReset, &qp.VTh, &qp.VC, &qp.C, &qp.R, &qp.Tau}
}

func (qp *QuaIFParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v := x[0][j]
	dx[0][j] = (qp.C.At(j)*(v-qp.VRest.At(j))*(v-qp.VC.At(j)) + qp.R.At(j)*cur) / qp.Tau.At(j)
}

func (qp *QuaIFParams) Lin(j int, x, lin [][]float32, cur float32) {
	v := x[0][j]
	lin[0][j] = qp.C.At(j) * (2*v - qp.VRest.At(j) - qp.VC.At(j)) / qp.Tau.At(j)
}

func (qp *QuaIFParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = qp.VReset.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], qp.VReset.At(j), s)
}

///////////////////////////////////////////////////////////////////////
//  AdQuaIF

// AdQuaParams are the parameters of the adaptive quadratic integrate-and-fire neuron:
// tau dV/dt = c (V - V_rest) (V - V_c) - w + I
// tau_w dw/dt = a (V - V_rest) - w, with w += b at each spike
type AdQuaParams struct {
	VRest  initz.Param `def:"-65" desc:"resting potential, in mV"`
	VReset initz.Param `def:"-68" desc:"reset potential after a spike, in mV"`
	VTh    initz.Param `def:"-30" desc:"spike threshold, in mV"`
	VC     initz.Param `def:"-50" desc:"critical voltage for spike initiation, in mV"`
	C      initz.Param `def:"0.07" desc:"coefficient of the quadratic term, in 1/mV"`
	A      initz.Param `def:"1" desc:"subthreshold coupling of adaptation to V"`
	B      initz.Param `def:"0.1" desc:"spike-triggered adaptation increment"`
	Tau    initz.Param `def:"10" min:"0" desc:"membrane time constant, in msec"`
	TauW   initz.Param `def:"10" min:"0" desc:"adaptation time constant, in msec"`
}

func (aq *AdQuaParams) Defaults() {
	aq.VRest.Set(-65)
	aq.VReset.Set(-68)
	aq.VTh.Set(-30)
	aq.VC.Set(-50)
	aq.C.Set(0.07)
	aq.A.Set(1)
	aq.B.Set(0.1)
	aq.Tau.Set(10)
	aq.TauW.Set(10)
}

func (aq *AdQuaParams) Update() {
}

func (aq *AdQuaParams) Vars() []string                     { return []string{"V", "W"} }
func (aq *AdQuaParams) Init(name string) initz.Initializer { return initz.Zeros() }
func (aq *AdQuaParams) Spiking() bool                      { return true }
func (aq *AdQuaParams) Thresh(j int, x [][]float32) float32 { return aq.VTh.At(j) }
func (aq *AdQuaParams) VReset(j int) float32               { return aq.VReset.At(j) }

func (aq *AdQuaParams) Params() []*initz.Param {
	return []*initz.Param{&aq.VRest, &aq.VReset, &aq.VTh, &aq.VC, &aq.C, &aq.A, &aq.B, &aq.Tau, &aq.TauW}
}

func (aq *AdQuaParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v, w := x[0][j], x[1][j]
	vr := aq.VRest.At(j)
	dx[0][j] = (aq.C.At(j)*(v-vr)*(v-aq.VC.At(j)) - w + cur) / aq.Tau.At(j)
	dx[1][j] = (aq.A.At(j)*(v-vr) - w) / aq.TauW.At(j)
}

func (aq *AdQuaParams) Lin(j int, x, lin [][]float32, cur float32) {
	v := x[0][j]
	lin[0][j] = aq.C.At(j) * (2*v - aq.VRest.At(j) - aq.VC.At(j)) / aq.Tau.At(j)
	lin[1][j] = -1 / aq.TauW.At(j)
}

func (aq *AdQuaParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = aq.VReset.At(j)
			x[1][j] += aq.B.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], aq.VReset.At(j), s)
	x[1][j] += aq.B.At(j) * s
}

///////////////////////////////////////////////////////////////////////
//  Gif

// GifParams are the parameters of the generalized integrate-and-fire neuron
// (Mihalas & Niebur, 2009), with two spike-induced internal currents and a
// dynamic threshold:
//
//	dI_j/dt = -k_j I_j
//	dVth/dt = a (V - V_rest) - b (Vth - V_th_inf)
//	tau dV/dt = -(V - V_rest) + R (I + I1 + I2)
//
// At a spike: V = V_reset, I_j = R_j I_j + A_j, Vth = max(V_th_reset, Vth).
type GifParams struct {
	VRest    initz.Param `def:"-70" desc:"resting potential, in mV"`
	VReset   initz.Param `def:"-70" desc:"reset potential after a spike, in mV"`
	VThInf   initz.Param `def:"-50" desc:"baseline level the threshold relaxes to, in mV"`
	VThReset initz.Param `def:"-60" desc:"minimum threshold after a spike, in mV"`
	R        initz.Param `def:"20" desc:"membrane resistance"`
	Tau      initz.Param `def:"20" min:"0" desc:"membrane time constant, in msec"`
	A        initz.Param `def:"0" desc:"coupling of the threshold to subthreshold V"`
	B        initz.Param `def:"0.01" desc:"rate of threshold relaxation to VThInf"`
	K1       initz.Param `def:"0.2" desc:"decay rate of internal current I1"`
	K2       initz.Param `def:"0.02" desc:"decay rate of internal current I2"`
	R1       initz.Param `def:"0" desc:"fraction of I1 kept at a spike"`
	R2       initz.Param `def:"1" desc:"fraction of I2 kept at a spike"`
	A1       initz.Param `def:"0" desc:"increment of I1 at a spike"`
	A2       initz.Param `def:"0" desc:"increment of I2 at a spike"`
}

func (gp *GifParams) Defaults() {
	gp.VRest.Set(-70)
	gp.VReset.Set(-70)
	gp.VThInf.Set(-50)
	gp.VThReset.Set(-60)
	gp.R.Set(20)
	gp.Tau.Set(20)
	gp.A.Set(0)
	gp.B.Set(0.01)
	gp.K1.Set(0.2)
	gp.K2.Set(0.02)
	gp.R1.Set(0)
	gp.R2.Set(1)
	gp.A1.Set(0)
	gp.A2.Set(0)
}

func (gp *GifParams) Update() {
}

func (gp *GifParams) Vars() []string { return []string{"V", "I1", "I2", "Vth"} }

func (gp *GifParams) Init(name string) initz.Initializer {
	switch name {
	case "V":
		return initz.Const(-70)
	case "Vth":
		return initz.Const(-50)
	}
	return initz.Zeros()
}

func (gp *GifParams) Spiking() bool                      { return true }
func (gp *GifParams) Thresh(j int, x [][]float32) float32 { return x[3][j] }
func (gp *GifParams) VReset(j int) float32               { return gp.VReset.At(j) }

func (gp *GifParams) Params() []*initz.Param {
	return []*initz.Param{&gp.VRest, &gp.VReset, &gp.VThInf, &gp.VThReset, &gp.R, &gp.Tau,
		&gp.A, &gp.B, &gp.K1, &gp.K2, &gp.R1, &gp.R2, &gp.A1, &gp.A2}
}

func (gp *GifParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v, i1, i2, vth := x[0][j], x[1][j], x[2][j], x[3][j]
	vr := gp.VRest.At(j)
	dx[0][j] = (-(v - vr) + gp.R.At(j)*(cur+i1+i2)) / gp.Tau.At(j)
	dx[1][j] = -gp.K1.At(j) * i1
	dx[2][j] = -gp.K2.At(j) * i2
	dx[3][j] = gp.A.At(j)*(v-vr) - gp.B.At(j)*(vth-gp.VThInf.At(j))
}

func (gp *GifParams) Lin(j int, x, lin [][]float32, cur float32) {
	lin[0][j] = -1 / gp.Tau.At(j)
	lin[1][j] = -gp.K1.At(j)
	lin[2][j] = -gp.K2.At(j)
	lin[3][j] = -gp.B.At(j)
}

func (gp *GifParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	i1 := gp.R1.At(j)*x[1][j] + gp.A1.At(j)
	i2 := gp.R2.At(j)*x[2][j] + gp.A2.At(j)
	thr := gp.VThReset.At(j)
	if sf == nil {
		if s > 0 {
			x[0][j] = gp.VReset.At(j)
			x[1][j] = i1
			x[2][j] = i2
			x[3][j] = math32.Max(thr, x[3][j])
		}
		return
	}
	x[0][j] = blend(x[0][j], gp.VReset.At(j), s)
	x[1][j] = blend(x[1][j], i1, s)
	x[2][j] = blend(x[2][j], i2, s)
	d := thr - x[3][j]
	x[3][j] += sf.Spike(d) * s * d
}

///////////////////////////////////////////////////////////////////////
//  Izhikevich

// IzhParams are the parameters of the Izhikevich (2003) neuron:
//
//	dV/dt = 0.04 V^2 + 5 V + 140 - u + I
//	du/dt = a (b V - u)
//
// At a spike (V >= V_th): V = c, u += d.
type IzhParams struct {
	VTh initz.Param `def:"30" desc:"spike cutoff, in mV"`
	A   initz.Param `def:"0.02" desc:"time scale of the recovery variable u"`
	B   initz.Param `def:"0.2" desc:"sensitivity of u to subthreshold V"`
	C   initz.Param `def:"-65" desc:"reset potential after a spike, in mV"`
	D   initz.Param `def:"8" desc:"increment of u at a spike"`
}

func (iz *IzhParams) Defaults() {
	iz.VTh.Set(30)
	iz.A.Set(0.02)
	iz.B.Set(0.2)
	iz.C.Set(-65)
	iz.D.Set(8)
}

func (iz *IzhParams) Update() {
}

func (iz *IzhParams) Vars() []string { return []string{"V", "U"} }

// Init returns nil for U, which is then initialized to b V
func (iz *IzhParams) Init(name string) initz.Initializer {
	if name == "V" {
		return initz.Const(-70)
	}
	return nil
}

// UInit returns the default initial u of element j for initial voltage v
func (iz *IzhParams) UInit(j int, v float32) float32 {
	return iz.B.At(j) * v
}

func (iz *IzhParams) Spiking() bool                      { return true }
func (iz *IzhParams) Thresh(j int, x [][]float32) float32 { return iz.VTh.At(j) }
func (iz *IzhParams) VReset(j int) float32               { return iz.C.At(j) }

func (iz *IzhParams) Params() []*initz.Param {
	return []*initz.Param{&iz.VTh, &iz.A, &iz.B, &iz.C, &iz.D}
}

func (iz *IzhParams) Deriv(j int, x, dx [][]float32, cur float32) {
	v, u := x[0][j], x[1][j]
	dx[0][j] = 0.04*v*v + 5*v + 140 - u + cur
	dx[1][j] = iz.A.At(j) * (iz.B.At(j)*v - u)
}

func (iz *IzhParams) Lin(j int, x, lin [][]float32, cur float32) {
	lin[0][j] = 0.08*x[0][j] + 5
	lin[1][j] = -iz.A.At(j)
}

func (iz *IzhParams) Reset(j int, x [][]float32, s float32, sf surrogate.Func) {
	if sf == nil {
		if s > 0 {
			x[0][j] = iz.C.At(j)
			x[1][j] += iz.D.At(j)
		}
		return
	}
	x[0][j] = blend(x[0][j], iz.C.At(j), s)
	x[1][j] += iz.D.At(j) * s
}
