// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"strings"
	"testing"

	"github.com/emer/emergent/v2/params"
)

func TestApplyParams(t *testing.T) {
	pop := newPop(t, LIF, 2)
	pop.Cls = "Exc"
	sheet := params.Sheet{
		{Sel: "Population", Desc: "slower membrane",
			Params: params.Params{
				"Population.Params.LIF.Tau.Val": "20",
			}},
		{Sel: ".Exc", Desc: "lower threshold",
			Params: params.Params{
				"Population.Params.LIF.VTh.Val": "15",
			}},
		{Sel: "#Other", Desc: "not this one",
			Params: params.Params{
				"Population.Params.LIF.VReset.Val": "-10",
			}},
	}
	app, err := pop.ApplyParams(&sheet, false)
	if err != nil {
		t.Fatal(err)
	}
	if !app {
		t.Errorf("params not applied")
	}
	lp := &pop.Params.LIF
	if lp.Tau.Val != 20 || lp.VTh.Val != 15 || lp.VReset.Val != -5 {
		t.Errorf("applied params: tau %v thr %v reset %v", lp.Tau, lp.VTh, lp.VReset)
	}
}

func TestSizeReport(t *testing.T) {
	pop := newPop(t, AdExIF, 10, 10)
	pop.Params.Ref.On = true
	pop.Params.Ref.Var = true
	pop.UpdateParams()
	pop.Reset(4)
	rep := pop.SizeReport()
	for _, nm := range []string{"Pop", "AdExIF", "V", "W", "Spike", "TLastSpike", "Refractory", "Total"} {
		if !strings.Contains(rep, nm) {
			t.Errorf("report missing %s:\n%s", nm, rep)
		}
	}
}
