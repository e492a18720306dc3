// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ode provides fixed-step integrators for systems of ordinary differential
equations over neuron state.

State is held as [variable][element] float32 slices: each variable (e.g., V, w) is a
flat slice over all neurons (and batch items), and the derivative function computes
all variables of a joint system at once, so coupled variables advance together using
the same stage values.
*/
package ode

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

var (
	// ErrShape is returned when the state does not match the system.
	ErrShape = errors.New("ode: state shape mismatch")

	// ErrMethod is returned for an unknown integration method.
	ErrMethod = errors.New("ode: unknown method")
)

// Func computes the time derivatives dx of state x at time t.
// x and dx are [variable][element]; dx must be completely overwritten.
type Func func(t float32, x, dx [][]float32)

// LinFunc computes the diagonal of the Jacobian of a Func:
// lin[i][j] = d dx[i][j] / d x[i][j].
type LinFunc func(t float32, x, lin [][]float32)

// System is a joint system of NVars state variables
type System struct {

	// number of state variables
	NVars int

	// derivative function
	F Func

	// optional diagonal of the Jacobian, used by ExpEuler.  If nil, a
	// forward-difference estimate is used.
	Lin LinFunc
}

// Methods are the available integration methods
type Methods int32

//go:generate stringer -type=Methods

var KiT_Methods = kit.Enums.AddEnum(MethodsN, kit.NotBitFlag, nil)

func (ev Methods) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Methods) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Methods) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }
func (ev *Methods) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// FromString sets the value from its name
func (ev *Methods) FromString(s string) error {
	for i := Methods(0); i < MethodsN; i++ {
		if i.String() == s {
			*ev = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrMethod, s)
}

// The integration methods
const (
	// Euler is explicit forward Euler
	Euler Methods = iota

	// Heun is the second-order explicit trapezoidal method (RK2)
	Heun

	// RK4 is the classic fourth-order Runge-Kutta method
	RK4

	// ExpEuler is exponential Euler using the diagonal of the Jacobian:
	// x += (exp(J dt) - 1) / J * f(x).  It is stable for stiff leaky dynamics,
	// and exact for linear dynamics with constant input.
	ExpEuler

	MethodsN
)

// Stages returns the number of derivative evaluations per step
func (ev Methods) Stages() int {
	switch ev {
	case Heun:
		return 2
	case RK4:
		return 4
	}
	return 1
}

// Integrator advances a System by fixed steps.
// It holds scratch buffers and so is not safe for concurrent use.
type Integrator struct {

	// integration method
	Method Methods

	// system being integrated
	Sys System

	k   [4][][]float32
	tmp [][]float32
	n   int
}

// New returns an Integrator for the given method and system
func New(method Methods, sys System) (*Integrator, error) {
	if method < 0 || method >= MethodsN {
		return nil, fmt.Errorf("%w: %d", ErrMethod, method)
	}
	if sys.NVars <= 0 || sys.F == nil {
		return nil, fmt.Errorf("%w: system needs at least one variable and a derivative function", ErrShape)
	}
	return &Integrator{Method: method, Sys: sys}, nil
}

// check validates x against the system and returns the number of elements
func (ig *Integrator) check(x [][]float32) (int, error) {
	if len(x) != ig.Sys.NVars {
		return 0, fmt.Errorf("%w: %d variables, system has %d", ErrShape, len(x), ig.Sys.NVars)
	}
	n := len(x[0])
	for i, v := range x {
		if len(v) != n {
			return 0, fmt.Errorf("%w: variable %d has %d elements, expected %d", ErrShape, i, len(v), n)
		}
	}
	return n, nil
}

// alloc ensures scratch buffers hold n elements per variable
func (ig *Integrator) alloc(n int) {
	if ig.n == n && ig.tmp != nil {
		return
	}
	mk := func() [][]float32 {
		b := make([][]float32, ig.Sys.NVars)
		for i := range b {
			b[i] = make([]float32, n)
		}
		return b
	}
	for s := range ig.k {
		ig.k[s] = mk()
	}
	ig.tmp = mk()
	ig.n = n
}

// Step advances state x at time t by dt, writing the result to out,
// which may be x itself.
func (ig *Integrator) Step(t, dt float32, x, out [][]float32) error {
	n, err := ig.check(x)
	if err != nil {
		return err
	}
	if on, err := ig.check(out); err != nil || on != n {
		if err == nil {
			err = fmt.Errorf("%w: output has %d elements, state has %d", ErrShape, on, n)
		}
		return err
	}
	ig.alloc(n)
	f := ig.Sys.F
	k1 := ig.k[0]
	switch ig.Method {
	case Euler:
		f(t, x, k1)
		axpy(out, x, dt, k1)
	case Heun:
		k2 := ig.k[1]
		f(t, x, k1)
		axpy(ig.tmp, x, dt, k1)
		f(t+dt, ig.tmp, k2)
		for i, xv := range x {
			for j := range xv {
				out[i][j] = xv[j] + 0.5*dt*(k1[i][j]+k2[i][j])
			}
		}
	case RK4:
		k2, k3, k4 := ig.k[1], ig.k[2], ig.k[3]
		hdt := 0.5 * dt
		f(t, x, k1)
		axpy(ig.tmp, x, hdt, k1)
		f(t+hdt, ig.tmp, k2)
		axpy(ig.tmp, x, hdt, k2)
		f(t+hdt, ig.tmp, k3)
		axpy(ig.tmp, x, dt, k3)
		f(t+dt, ig.tmp, k4)
		sdt := dt / 6
		for i, xv := range x {
			for j := range xv {
				out[i][j] = xv[j] + sdt*(k1[i][j]+2*k2[i][j]+2*k3[i][j]+k4[i][j])
			}
		}
	case ExpEuler:
		lin := ig.k[1]
		f(t, x, k1)
		if ig.Sys.Lin != nil {
			ig.Sys.Lin(t, x, lin)
		} else {
			ig.diffLin(t, x, k1, lin)
		}
		for i, xv := range x {
			for j := range xv {
				out[i][j] = xv[j] + Phi(lin[i][j], dt)*k1[i][j]
			}
		}
	default:
		return fmt.Errorf("%w: %d", ErrMethod, ig.Method)
	}
	return nil
}

// Integrate advances x in place by n steps of dt starting at time t
func (ig *Integrator) Integrate(t, dt float32, n int, x [][]float32) error {
	for i := 0; i < n; i++ {
		if err := ig.Step(t+float32(i)*dt, dt, x, x); err != nil {
			return err
		}
	}
	return nil
}

// diffLin estimates the Jacobian diagonal by forward differences, one
// variable at a time.  fx holds f(x).  Elements are independent, so each
// variable is perturbed across all elements at once.
func (ig *Integrator) diffLin(t float32, x, fx, lin [][]float32) {
	dx := ig.k[2]
	for i := range x {
		for k := range x {
			copy(ig.tmp[k], x[k])
		}
		hv := ig.k[3][0]
		for j, v := range x[i] {
			h := diffEps * math32.Max(1, math32.Abs(v))
			ig.tmp[i][j] = v + h
			hv[j] = ig.tmp[i][j] - v
		}
		ig.Sys.F(t, ig.tmp, dx)
		for j := range x[i] {
			lin[i][j] = (dx[i][j] - fx[i][j]) / hv[j]
		}
	}
}

// diffEps is the relative step for forward differences, around sqrt of float32 epsilon
const diffEps = 3.5e-4

// Phi returns (exp(lin dt) - 1) / lin, the exponential Euler step factor,
// which converges to dt as lin goes to 0.
func Phi(lin, dt float32) float32 {
	z := float64(lin) * float64(dt)
	if math.Abs(z) < 1e-6 {
		return dt * float32(1+0.5*z)
	}
	return float32(float64(dt) * math.Expm1(z) / z)
}

// axpy sets out = x + a * y
func axpy(out, x [][]float32, a float32, y [][]float32) {
	for i, xv := range x {
		for j := range xv {
			out[i][j] = xv[j] + a*y[i][j]
		}
	}
}
