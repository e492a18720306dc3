// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/params"
)

// StyleType is the type name used in param selectors, e.g., "Population"
func (pop *Population) StyleType() string { return "Population" }

// StyleClass returns the space-separated classes used in param selectors, e.g., ".Exc"
func (pop *Population) StyleClass() string { return pop.Cls }

// StyleName returns the name used in param selectors, e.g., "#Input"
func (pop *Population) StyleName() string { return pop.Nm }

func (pop *Population) TypeName() string { return pop.StyleType() }
func (pop *Population) Class() string    { return pop.Cls }
func (pop *Population) Label() string    { return pop.Nm }

// ApplyParams applies given parameter style Sheet to this population.
// Calls UpdateParams if anything was set, so derived parameters are updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// It always prints a message if a parameter fails to be set.
// Returns true if any params were set, and error if there were any errors.
// Paths start from the Population, e.g., "Population.Params.LIF.Tau.Val".
func (pop *Population) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(pop, setMsg)
	if app {
		pop.UpdateParams()
	}
	return app, err
}

// SizeReport returns a string reporting the size of each state variable,
// and the total memory of the state.
func (pop *Population) SizeReport() string {
	var b strings.Builder
	tot := 0
	fmt.Fprintf(&b, "%14s:\t Family: %v\t Neurons: %d\t Batch: %d\n", pop.Nm, pop.Params.Family, pop.Size.Len(), pop.Batch)
	for _, nm := range pop.VarNames() {
		tsr := pop.State.Tensor(nm)
		mem := tsr.Len() * 4
		if nm == "Refractory" {
			mem = (tsr.Len() + 7) / 8
		}
		tot += mem
		fmt.Fprintf(&b, "\t%14s:\t %v\t Mem: %v\n", nm, tsr.Shapes(), (datasize.ByteSize)(mem).HumanReadable())
	}
	fmt.Fprintf(&b, "\t%14s:\t Mem: %v\n", "Total", (datasize.ByteSize)(tot).HumanReadable())
	return b.String()
}
