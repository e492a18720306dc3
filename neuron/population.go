// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"errors"
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/spiking/clock"
	"github.com/emer/spiking/initz"
	"github.com/emer/spiking/ode"
	"github.com/emer/spiking/surrogate"
	"github.com/goki/kigen/ordmap"
)

var (
	// ErrNotReset is returned by Update and state accessors before Reset,
	// or after the family has changed since the last Reset.
	ErrNotReset = errors.New("neuron: population not reset")

	// ErrShape is returned for an external input that does not broadcast to the state.
	ErrShape = errors.New("neuron: input shape mismatch")

	// ErrMode is returned for an unknown mode, or a training-only operation in inference mode.
	ErrMode = errors.New("neuron: mode mismatch")

	// ErrVar is returned for a reference to a state variable that does not exist.
	ErrVar = errors.New("neuron: no such state variable")

	// ErrInput is returned for duplicate, missing or nil current inputs.
	ErrInput = errors.New("neuron: current input")

	// ErrFamily is returned for an unknown model family.
	ErrFamily = errors.New("neuron: unknown family")
)

// Population is a population of neurons of one model family, with all
// state for a batch of independent simulations.
//
// Each Update advances the state by exactly one step of the clock context:
// derivatives and integration first, then the refractory gate,
// then spike and reset, and finally the commit of all state.
// Update is the only method that changes state between Resets.
// A Population is not safe for concurrent use.
type Population struct {
	Nm     string     `desc:"name of the population, used in param selectors and monitors"`
	Cls    string     `desc:"space-separated classes, for param selectors"`
	Size   initz.Size `desc:"shape of the population"`
	Params Params     `view:"inline" desc:"all parameters"`
	State  State      `view:"-" json:"-" desc:"state variables, allocated by Reset"`
	Batch  int        `inactive:"+" desc:"batch size of the current state, 0 for unbatched"`

	inits   map[string]initz.Initializer
	inputs  *ordmap.Map[string, Input]
	dyn     Dynamics
	surr    surrogate.Func
	ig      *ode.Integrator
	igErr   error
	family  Families
	mode    Modes
	isReset bool
	x       [][]float32
	ext     []float32
	cur     []float32
	vPrev   []float32
	thPrev  []float32
	vh      []float32
	curH    []float32
	dxCur   [][]float32
	dxH     [][]float32
}

// NewPopulation returns a new population of given size and family, with default parameters
func NewPopulation(name string, sz initz.Size, fam Families) (*Population, error) {
	if err := sz.Validate(); err != nil {
		return nil, err
	}
	if fam < 0 || fam >= FamiliesN {
		return nil, fmt.Errorf("%w: %d", ErrFamily, fam)
	}
	pop := &Population{Nm: name, Size: sz}
	pop.Params.Family = fam
	pop.Defaults()
	return pop, nil
}

// Defaults sets default parameters for all families, keeping the current family
func (pop *Population) Defaults() {
	fam := pop.Params.Family
	pop.Params.Defaults()
	pop.Params.Family = fam
	pop.UpdateParams()
}

// UpdateParams must be called after any changes to parameters.
// Changes to the family, mode or per-neuron parameters take effect at the next Reset.
func (pop *Population) UpdateParams() {
	pop.Params.Update()
	pop.dyn = pop.Params.Dynamics()
	pop.surr = pop.Params.Spike.Surr.Func()
	pop.ig, pop.igErr = nil, nil
	if pop.dyn == nil {
		return
	}
	pop.ig, pop.igErr = ode.New(pop.Params.Method, ode.System{NVars: len(pop.dyn.Vars()), F: pop.deriv, Lin: pop.lin})
	if pop.Params.Agg == StepInputs && pop.Params.Method.Stages() > 1 {
		log.Printf("neuron: %s: StepInputs holds input current constant over the %d stages of %v, which biases conductance inputs -- use StageInputs\n", pop.Nm, pop.Params.Method.Stages(), pop.Params.Method)
	}
}

// Name returns the name of the population
func (pop *Population) Name() string { return pop.Nm }

// N returns the number of state elements: neurons times batch
func (pop *Population) N() int {
	if pop.Batch > 0 {
		return pop.Batch * pop.Size.Len()
	}
	return pop.Size.Len()
}

// SetInit sets the initializer used for an integrated state variable
// at the next Reset.  v can be anything accepted by initz.Check.
func (pop *Population) SetInit(name string, v any) error {
	if !pop.integrates(name) {
		return fmt.Errorf("%w: %s is not integrated by %v", ErrVar, name, pop.Params.Family)
	}
	init, err := initz.Check(v)
	if err != nil {
		return err
	}
	if pop.inits == nil {
		pop.inits = make(map[string]initz.Initializer)
	}
	pop.inits[name] = init
	return nil
}

// integrates returns true if name is integrated by the current family
func (pop *Population) integrates(name string) bool {
	if pop.dyn == nil {
		return false
	}
	for _, nm := range pop.dyn.Vars() {
		if nm == name {
			return true
		}
	}
	return false
}

// Reset (re)allocates all state for the given batch size (0 for unbatched),
// from the configured initializers.  It discards all prior state, and must
// be called before the first Update and after any change of family or mode.
func (pop *Population) Reset(batch int) error {
	pop.isReset = false
	if pop.dyn == nil {
		return fmt.Errorf("%w: %d", ErrFamily, pop.Params.Family)
	}
	if pop.Params.Mode < 0 || pop.Params.Mode >= ModesN {
		return fmt.Errorf("%w: unknown mode %d", ErrMode, pop.Params.Mode)
	}
	if pop.igErr != nil {
		return pop.igErr
	}
	if err := pop.Size.Validate(); err != nil {
		return err
	}
	if batch < 0 {
		return fmt.Errorf("%w: negative batch size %d", initz.ErrSize, batch)
	}
	for _, pr := range append(pop.dyn.Params(), &pop.Params.Ref.Tau) {
		if err := pr.Validate(pop.Size); err != nil {
			return err
		}
	}
	pop.State = State{}
	pop.Batch = batch
	vars := pop.dyn.Vars()
	pop.x = make([][]float32, len(vars))
	for i, nm := range vars {
		init := pop.inits[nm]
		if init == nil {
			init = pop.dyn.Init(nm)
		}
		tsr, err := initz.Variable(init, pop.Size, batch)
		if err != nil {
			return fmt.Errorf("neuron: %s: init %s: %w", pop.Nm, nm, err)
		}
		if init == nil {
			pop.initFromV(nm, tsr)
		}
		pt, _ := pop.State.float(nm)
		*pt = tsr
		pop.x[i] = tsr.Values
	}
	zero := func() *etensor.Float32 {
		tsr, _ := initz.Variable(initz.Zeros(), pop.Size, batch)
		return tsr
	}
	if pop.dyn.Spiking() {
		pop.State.Spike = zero()
		if pop.Params.Mode == Training {
			pop.State.SpikeGrad = zero()
			pop.State.VGrad = zero()
		}
	}
	if pop.Params.Ref.On {
		pop.State.TLastSpike, _ = initz.Variable(initz.Const(TLastSpikeInit), pop.Size, batch)
		if pop.Params.Ref.Var {
			shp, nms := pop.Size.VarShape(batch)
			pop.State.Refractory = etensor.NewBits(shp, nil, nms)
		}
	}
	n := pop.N()
	pop.ext = make([]float32, n)
	pop.cur = make([]float32, n)
	pop.vPrev = make([]float32, n)
	pop.thPrev = make([]float32, n)
	pop.vh = make([]float32, n)
	pop.curH = make([]float32, n)
	pop.dxCur = make([][]float32, len(vars))
	pop.dxH = make([][]float32, len(vars))
	for i := range vars {
		pop.dxCur[i] = make([]float32, n)
		pop.dxH[i] = make([]float32, n)
	}
	if pop.inputs != nil {
		for _, kv := range pop.inputs.Order {
			if rs, ok := kv.Val.(Resetter); ok {
				rs.Reset(n)
			}
		}
	}
	pop.family = pop.Params.Family
	pop.mode = pop.Params.Mode
	pop.isReset = true
	return nil
}

// initFromV initializes a variable that has no initializer as a function
// of the initial V (the Izhikevich recovery variable u = b V)
func (pop *Population) initFromV(name string, tsr *etensor.Float32) {
	iz, ok := pop.dyn.(*IzhParams)
	if !ok || name != "U" {
		return
	}
	for j, v := range pop.State.V.Values {
		tsr.Values[j] = iz.UInit(j, v)
	}
}

// setExt broadcasts the external input into pop.ext
func (pop *Population) setExt(ext []float32) error {
	n := len(pop.ext)
	switch len(ext) {
	case 0:
		for j := range pop.ext {
			pop.ext[j] = 0
		}
	case 1:
		for j := range pop.ext {
			pop.ext[j] = ext[0]
		}
	case n:
		copy(pop.ext, ext)
	case pop.Size.Len():
		nn := len(ext)
		for j := range pop.ext {
			pop.ext[j] = ext[j%nn]
		}
	default:
		return fmt.Errorf("%w: %d external input values for %d neurons in batch %d", ErrShape, len(ext), pop.Size.Len(), pop.Batch)
	}
	return nil
}

// addInputs adds all registered input currents at voltage v into cur,
// in registration order
func (pop *Population) addInputs(v, cur []float32) {
	if pop.inputs == nil {
		return
	}
	for _, kv := range pop.inputs.Order {
		kv.Val.Current(v, cur)
	}
}

// deriv is the ode.Func of the population
func (pop *Population) deriv(t float32, x, dx [][]float32) {
	cur := pop.cur
	if pop.Params.Agg == StageInputs {
		copy(cur, pop.ext)
		pop.addInputs(x[0], cur)
	}
	for j := range x[0] {
		pop.dyn.Deriv(j, x, dx, cur[j])
	}
}

// lin is the ode.LinFunc of the population, using the current of the
// preceding deriv evaluation at the same state.  With StageInputs the
// dependence of the input current on V, e.g., G (E - V) of a conductance,
// is added to the V diagonal by a forward difference of the inputs.
func (pop *Population) lin(t float32, x, lin [][]float32) {
	for j := range x[0] {
		pop.dyn.Lin(j, x, lin, pop.cur[j])
	}
	if pop.Params.Agg != StageInputs || pop.inputs == nil || len(pop.inputs.Order) == 0 {
		return
	}
	v := x[0]
	for j, vj := range v {
		pop.vh[j] = vj + linEps*math32.Max(1, math32.Abs(vj))
	}
	copy(pop.curH, pop.ext)
	pop.addInputs(pop.vh, pop.curH)
	for j, vj := range v {
		if pop.curH[j] == pop.cur[j] {
			continue
		}
		pop.dyn.Deriv(j, x, pop.dxCur, pop.cur[j])
		pop.dyn.Deriv(j, x, pop.dxH, pop.curH[j])
		lin[0][j] += (pop.dxH[0][j] - pop.dxCur[0][j]) / (pop.vh[j] - vj)
	}
}

// linEps is the relative step in V for the input current difference
const linEps = 3.5e-4

// Update advances the population by one step of ctx, with external input
// current ext, which may be nil (no input), a single value for all neurons,
// one value per neuron (shared over the batch), or one value per state
// element.  It returns the observable output (see Info).
// Non-finite values are not checked for and propagate through the state.
func (pop *Population) Update(ctx clock.Context, ext []float32) (*etensor.Float32, error) {
	if pop.igErr != nil {
		return nil, pop.igErr
	}
	if !pop.isReset || pop.family != pop.Params.Family || pop.dyn == nil || pop.ig == nil {
		return nil, ErrNotReset
	}
	mode := pop.Params.Mode
	if mode != pop.mode {
		return nil, fmt.Errorf("%w: mode changed to %v since Reset in %v", ErrMode, mode, pop.mode)
	}
	if err := pop.setExt(ext); err != nil {
		return nil, err
	}
	if pop.inputs != nil {
		for _, kv := range pop.inputs.Order {
			if sp, ok := kv.Val.(Stepper); ok {
				sp.Step(ctx)
			}
		}
	}
	if pop.Params.Agg == StepInputs {
		copy(pop.cur, pop.ext)
		pop.addInputs(pop.State.V.Values, pop.cur)
	}
	copy(pop.vPrev, pop.State.V.Values)
	for j := range pop.thPrev {
		pop.thPrev[j] = pop.dyn.Thresh(j, pop.x)
	}
	if err := pop.ig.Step(ctx.T, ctx.Dt, pop.x, pop.x); err != nil {
		return nil, err
	}
	var sf surrogate.Func
	if mode == Training {
		sf = pop.surr
	}
	pop.spikeReset(ctx, sf)
	return pop.Info(), nil
}

// spikeReset applies the refractory gate and then spike and reset
// to the integrated state.  Spikes are detected against the threshold at
// the start of the step, which only differs for a dynamic threshold (Gif).
func (pop *Population) spikeReset(ctx clock.Context, sf surrogate.Func) {
	st := &pop.State
	rp := &pop.Params.Ref
	v := pop.x[0]
	spiking := pop.dyn.Spiking()
	for j := range v {
		gated := false
		if rp.On {
			gated = ctx.T-st.TLastSpike.Values[j] <= rp.Tau.At(j)
			if gated {
				v[j] = pop.vPrev[j]
			}
		}
		if !spiking {
			continue
		}
		d := v[j] - pop.thPrev[j]
		var s float32
		spiked := false
		if sf == nil {
			if d >= 0 {
				s = 1
				spiked = true
			}
		} else {
			s = sf.Spike(d)
			g := sf.Grad(d)
			st.SpikeGrad.Values[j] = g
			if pop.Params.Spike.Detach {
				st.VGrad.Values[j] = 1 - s
			} else {
				st.VGrad.Values[j] = 1 - s + (pop.dyn.VReset(j)-v[j])*g
			}
			spiked = s > pop.Params.Spike.Thr
		}
		pop.dyn.Reset(j, pop.x, s, sf)
		st.Spike.Values[j] = s
		if rp.On {
			if spiked {
				st.TLastSpike.Values[j] = ctx.T
			}
			if st.Refractory != nil {
				st.Refractory.Set1D(j, gated || spiked)
			}
		}
	}
}

// Info returns the observable output of the population: the live Spike
// tensor, or V for the non-spiking IF family.  nil before Reset.
func (pop *Population) Info() *etensor.Float32 {
	if pop.dyn != nil && !pop.dyn.Spiking() {
		return pop.State.V
	}
	return pop.State.Spike
}

// Var returns the live state variable of given name
func (pop *Population) Var(name string) (etensor.Tensor, error) {
	if !pop.isReset {
		return nil, ErrNotReset
	}
	tsr := pop.State.Tensor(name)
	if tsr == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrVar, name, pop.Nm)
	}
	return tsr, nil
}

// VarNames returns the names of the allocated state variables
func (pop *Population) VarNames() []string {
	return pop.State.Allocated()
}

// SpikeGrad returns the surrogate derivative of the last spikes
// with respect to V - threshold.  Training mode only.
func (pop *Population) SpikeGrad() (*etensor.Float32, error) {
	if err := pop.checkTraining(); err != nil {
		return nil, err
	}
	return pop.State.SpikeGrad, nil
}

// VGrad returns the derivative of the post-reset V with respect to the
// integrated V of the last step.  Training mode only.
func (pop *Population) VGrad() (*etensor.Float32, error) {
	if err := pop.checkTraining(); err != nil {
		return nil, err
	}
	return pop.State.VGrad, nil
}

func (pop *Population) checkTraining() error {
	if !pop.isReset {
		return ErrNotReset
	}
	if pop.mode != Training {
		return fmt.Errorf("%w: surrogate derivatives require Training mode, have %v", ErrMode, pop.mode)
	}
	if pop.State.SpikeGrad == nil {
		return fmt.Errorf("%w: SpikeGrad in non-spiking %v", ErrVar, pop.family)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Inputs

// AddInput registers a current input under name.  Inputs are summed in
// the order they were added.
func (pop *Population) AddInput(name string, in Input) error {
	if in == nil {
		return fmt.Errorf("%w: nil input %s", ErrInput, name)
	}
	if pop.inputs == nil {
		pop.inputs = ordmap.New[string, Input]()
	}
	if _, has := pop.inputs.ValByKey(name); has {
		return fmt.Errorf("%w: %s already registered on %s", ErrInput, name, pop.Nm)
	}
	pop.inputs.Add(name, in)
	if rs, ok := in.(Resetter); ok && pop.isReset {
		rs.Reset(pop.N())
	}
	return nil
}

// RemoveInput removes the current input registered under name
func (pop *Population) RemoveInput(name string) error {
	if pop.inputs == nil || !pop.inputs.DeleteKey(name) {
		return fmt.Errorf("%w: %s not registered on %s", ErrInput, name, pop.Nm)
	}
	return nil
}

// InputNames returns the names of the registered inputs, in summation order
func (pop *Population) InputNames() []string {
	if pop.inputs == nil {
		return nil
	}
	return pop.inputs.Keys()
}

// Input returns the input registered under name
func (pop *Population) Input(name string) (Input, bool) {
	if pop.inputs == nil {
		return nil, false
	}
	return pop.inputs.ValByKey(name)
}
