// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package clock provides the simulation clock shared by all populations in a
simulation. Populations never own the clock: the driver advances a Time and
passes its Context by value into every update, so each step is a function of
explicit state plus context.
*/
package clock

// Context is the read-only view of the clock for one simulation step.
type Context struct {

	// current simulation time, in msec
	T float32

	// integration step size, in msec
	Dt float32
}

// clock.Time contains the timing state and parameters for running a simulation
type Time struct {

	// accumulated simulation time at the start of the current step, in msec
	T float32

	// amount of time to increment per step, in msec
	Dt float32 `def:"0.1" min:"0"`

	// number of steps taken since the last Reset
	Step int
}

// NewTime returns a new Time with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.Dt = 0.1
}

// Reset resets the counters back to zero
func (tm *Time) Reset() {
	tm.T = 0
	tm.Step = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// Context returns the current time and step size, to pass into updates
func (tm *Time) Context() Context {
	return Context{T: tm.T, Dt: tm.Dt}
}

// StepInc advances the clock by one step.
// Time is computed from the step count to avoid accumulating rounding error.
func (tm *Time) StepInc() {
	tm.Step++
	tm.T = float32(tm.Step) * tm.Dt
}

// Duration returns the number of steps needed to cover dur msec
func (tm *Time) Duration(dur float32) int {
	if tm.Dt <= 0 {
		return 0
	}
	return int(dur/tm.Dt + 0.5)
}
