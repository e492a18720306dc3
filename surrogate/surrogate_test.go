// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surrogate

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestNoisyXX1(t *testing.T) {
	nx := NewNoisyXX1()
	nx.Scale = 1

	tstx := []float32{-0.05, -0.04, -0.03, -0.02, -0.01, 0, .01, .02, .03, .04, .05, .1, .2, .3, .4, .5}
	cory := []float32{1.7735989e-14, 7.155215e-12, 2.8866178e-09, 1.1645374e-06, 0.00046864923, 0.094767615, 0.47916666, 0.65277773, 0.742268, 0.7967479, 0.8333333, 0.90909094, 0.95238096, 0.96774197, 0.9756098, 0.98039216}

	for i := range tstx {
		y := nx.Spike(tstx[i])
		dif := math32.Abs(y - cory[i])
		if dif > difTol {
			t.Errorf("NXX1 err: dix: %v, x: %v, y: %v, cor y: %v, dif: %v\n", i, tstx[i], y, cory[i], dif)
		}
	}
}

// numGrad is the central difference derivative of the spike function
func numGrad(fn Func, x, h float32) float32 {
	return (fn.Spike(x+h) - fn.Spike(x-h)) / (2 * h)
}

func TestGradedGrad(t *testing.T) {
	nx := NewNoisyXX1()
	nx.Scale = 1
	for _, x := range []float32{-0.02, 0.005, 0.03, 0.3} {
		ng := numGrad(nx, x, 1e-4)
		g := nx.Grad(x)
		if dif := math32.Abs(g - ng); dif > 0.01*math32.Abs(ng)+1e-6 {
			t.Errorf("NXX1 grad at %v: %v, numeric: %v", x, g, ng)
		}
	}
	sf := Soft{Alpha: 1}
	for _, x := range []float32{-2, 0, 1.5} {
		ng := numGrad(sf, x, 1e-3)
		g := sf.Grad(x)
		if dif := math32.Abs(g - ng); dif > 1e-3 {
			t.Errorf("Soft grad at %v: %v, numeric: %v", x, g, ng)
		}
	}
}

func allFuncs() map[Types]Func {
	fns := make(map[Types]Func)
	for tp := Types(0); tp < TypesN; tp++ {
		sp := Params{}
		sp.Defaults()
		sp.Type = tp
		if tp == NXX1 {
			sp.Alpha = 0.01
		}
		sp.Update()
		fns[tp] = sp.Func()
	}
	return fns
}

func TestMonotoneSaturate(t *testing.T) {
	for tp, fn := range allFuncs() {
		prv := fn.Spike(-50)
		for x := float32(-50); x <= 50; x += 0.01 {
			s := fn.Spike(x)
			if s < prv {
				t.Errorf("%v: not monotone at x: %v, %v < %v", tp, x, s, prv)
				break
			}
			if s < 0 || s > 1 {
				t.Errorf("%v: out of range at x: %v, %v", tp, x, s)
				break
			}
			g := fn.Grad(x)
			if g < 0 || math32.IsNaN(g) || math32.IsInf(g, 0) {
				t.Errorf("%v: bad grad at x: %v, %v", tp, x, g)
				break
			}
			prv = s
		}
		if lo := fn.Spike(-1e4); lo > 1e-4 {
			t.Errorf("%v: low saturation: %v", tp, lo)
		}
		if hi := fn.Spike(1e4); hi < 0.99 {
			t.Errorf("%v: high saturation: %v", tp, hi)
		}
	}
}

func TestStepForward(t *testing.T) {
	fns := allFuncs()
	for _, tp := range []Types{InvSquare, Sigmoid, ArcTan, Gaussian} {
		fn := fns[tp]
		if fn.Spike(0) != 1 || fn.Spike(-1e-3) != 0 || fn.Spike(2) != 1 {
			t.Errorf("%v: not a step forward", tp)
		}
		if fn.Grad(0) <= fn.Grad(0.5) || fn.Grad(0) <= fn.Grad(-0.5) {
			t.Errorf("%v: grad not peaked at threshold", tp)
		}
	}
}

func TestTypesText(t *testing.T) {
	for tp := Types(0); tp < TypesN; tp++ {
		b, err := tp.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var rt Types
		if err := rt.UnmarshalText(b); err != nil || rt != tp {
			t.Errorf("text round trip %v: %v %v", tp, rt, err)
		}
	}
	var tp Types
	if err := tp.FromString("Bogus"); err == nil {
		t.Errorf("expected unknown type error")
	}
}
