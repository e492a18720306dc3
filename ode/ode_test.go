// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ode

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// leak is dV = (-V + c) / tau, with per-element inputs c
func leak(tau float32, c []float32) System {
	return System{
		NVars: 1,
		F: func(t float32, x, dx [][]float32) {
			for j, v := range x[0] {
				dx[0][j] = (-v + c[j]) / tau
			}
		},
		Lin: func(t float32, x, lin [][]float32) {
			for j := range x[0] {
				lin[0][j] = -1 / tau
			}
		},
	}
}

func leakExact(v0, c, tau, dur float32) float32 {
	return c + (v0-c)*math32.Exp(-dur/tau)
}

func TestExpEulerExact(t *testing.T) {
	c := []float32{20, -5, 0}
	tau := float32(10)
	for _, dt := range []float32{0.1, 1, 5} {
		n := int(20 / dt)
		ig, err := New(ExpEuler, leak(tau, c))
		if err != nil {
			t.Fatal(err)
		}
		x := [][]float32{{0, 3, -70}}
		v0 := []float32{0, 3, -70}
		if err := ig.Integrate(0, dt, n, x); err != nil {
			t.Fatal(err)
		}
		for j := range c {
			cor := leakExact(v0[j], c[j], tau, float32(n)*dt)
			if dif := math32.Abs(x[0][j] - cor); dif > 1e-4*math32.Max(1, math32.Abs(cor)) {
				t.Errorf("dt %v elem %d: %v != exact %v", dt, j, x[0][j], cor)
			}
		}
	}
}

func TestExpEulerDiffLin(t *testing.T) {
	sys := leak(10, []float32{20})
	ana, _ := New(ExpEuler, sys)
	sys.Lin = nil
	num, _ := New(ExpEuler, sys)
	xa := [][]float32{{-3}}
	xn := [][]float32{{-3}}
	ana.Integrate(0, 1, 10, xa)
	num.Integrate(0, 1, 10, xn)
	if dif := math32.Abs(xa[0][0] - xn[0][0]); dif > 1e-2 {
		t.Errorf("forward-difference jacobian: %v vs analytic %v", xn[0][0], xa[0][0])
	}
}

func TestOrder(t *testing.T) {
	tau := float32(10)
	c := []float32{20}
	cor := leakExact(0, 20, tau, 10)
	errs := make(map[Methods]float32)
	for _, m := range []Methods{Euler, Heun, RK4} {
		ig, err := New(m, leak(tau, c))
		if err != nil {
			t.Fatal(err)
		}
		x := [][]float32{{0}}
		ig.Integrate(0, 1, 10, x)
		errs[m] = math32.Abs(x[0][0] - cor)
	}
	if !(errs[Euler] > errs[Heun] && errs[Heun] > errs[RK4]) {
		t.Errorf("errors not decreasing with order: %v", errs)
	}
	if errs[RK4] > 1e-3 {
		t.Errorf("rk4 error too large: %v", errs[RK4])
	}
}

// TestJoint integrates an oscillator dx = y, dy = -x for one period.
func TestJoint(t *testing.T) {
	osc := System{
		NVars: 2,
		F: func(t float32, x, dx [][]float32) {
			for j := range x[0] {
				dx[0][j] = x[1][j]
				dx[1][j] = -x[0][j]
			}
		},
	}
	ig, _ := New(RK4, osc)
	x := [][]float32{{1, 0}, {0, 2}}
	n := 1000
	dt := 2 * math32.Pi / float32(n)
	if err := ig.Integrate(0, dt, n, x); err != nil {
		t.Fatal(err)
	}
	cor := [][]float32{{1, 0}, {0, 2}}
	for i := range cor {
		for j := range cor[i] {
			if dif := math32.Abs(x[i][j] - cor[i][j]); dif > 1e-3 {
				t.Errorf("var %d elem %d: %v != %v", i, j, x[i][j], cor[i][j])
			}
		}
	}
}

func TestStageTimes(t *testing.T) {
	var ts []float32
	sys := System{NVars: 1, F: func(t float32, x, dx [][]float32) {
		ts = append(ts, t)
		dx[0][0] = 0
	}}
	ig, _ := New(RK4, sys)
	x := [][]float32{{0}}
	ig.Step(1, 0.5, x, x)
	cor := []float32{1, 1.25, 1.25, 1.5}
	if len(ts) != len(cor) {
		t.Fatalf("stage evaluations: %v", ts)
	}
	for i := range cor {
		if ts[i] != cor[i] {
			t.Errorf("stage %d time: %v != %v", i, ts[i], cor[i])
		}
	}
	if RK4.Stages() != 4 || Euler.Stages() != 1 || ExpEuler.Stages() != 1 || Heun.Stages() != 2 {
		t.Errorf("stage counts")
	}
}

func TestErrors(t *testing.T) {
	if _, err := New(MethodsN, leak(1, []float32{0})); !errors.Is(err, ErrMethod) {
		t.Errorf("expected ErrMethod, got %v", err)
	}
	if _, err := New(Euler, System{NVars: 1}); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape for nil func, got %v", err)
	}
	ig, _ := New(Euler, leak(1, []float32{0, 0}))
	if err := ig.Step(0, 1, [][]float32{{0, 0}, {0, 0}}, [][]float32{{0, 0}}); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape for variable count, got %v", err)
	}
	if err := ig.Step(0, 1, [][]float32{{0, 0}}, [][]float32{{0}}); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape for output length, got %v", err)
	}
	var m Methods
	if err := m.FromString("Leapfrog"); !errors.Is(err, ErrMethod) {
		t.Errorf("expected ErrMethod, got %v", err)
	}
	if err := m.UnmarshalText([]byte("RK4")); err != nil || m != RK4 {
		t.Errorf("text: %v %v", m, err)
	}
}

func TestPhi(t *testing.T) {
	if dif := math32.Abs(Phi(0, 0.1) - 0.1); dif > 1e-7 {
		t.Errorf("phi(0): %v", Phi(0, 0.1))
	}
	cor := (math32.Exp(-0.1) - 1) / -1
	if dif := math32.Abs(Phi(-1, 0.1) - cor); dif > 1e-6 {
		t.Errorf("phi(-1): %v != %v", Phi(-1, 0.1), cor)
	}
}
