// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emer/etable/v2/etensor"
	"github.com/emer/spiking/clock"
	"github.com/emer/spiking/initz"
	"github.com/emer/spiking/neuron"
	"github.com/emer/spiking/ode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLIF(t *testing.T) *neuron.Population {
	t.Helper()
	pop, err := neuron.NewPopulation("LIF", initz.NewSize(2), neuron.LIF)
	require.NoError(t, err)
	pop.Params.Method = ode.Euler
	pop.Params.Ref.On = true
	pop.Params.Ref.Var = true
	pop.UpdateParams()
	require.NoError(t, pop.Reset(0))
	return pop
}

func run(t *testing.T, pop *neuron.Population, mn *Monitor, n int, ext []float32) {
	t.Helper()
	tm := clock.NewTime()
	for i := 0; i < n; i++ {
		_, err := pop.Update(tm.Context(), ext)
		require.NoError(t, err)
		require.NoError(t, mn.Record(tm.Context()))
		tm.StepInc()
	}
}

func TestRecord(t *testing.T) {
	pop := newLIF(t)
	mn := New(pop, "V", "Refractory")
	assert.ErrorIs(t, mn.Record(clock.Context{Dt: 0.1}), ErrNotConfig)
	require.NoError(t, mn.Config())
	assert.Equal(t, []string{"Time", InfoCol, "V", "Refractory"}, mn.Table.ColNames)

	run(t, pop, mn, 200, []float32{500, 0})
	assert.Equal(t, 200, mn.Table.Rows)

	tc := mn.Table.Cols[0].(*etensor.Float64)
	assert.InDelta(t, 0.1, tc.Values[0], 1e-6)
	assert.InDelta(t, 20, tc.Values[199], 1e-4)

	cnt, err := mn.Counts(InfoCol)
	require.NoError(t, err)
	assert.Greater(t, cnt[0], float32(1))
	assert.Equal(t, float32(0), cnt[1])

	// the driven neuron is refractory for more steps than it spikes
	ref, err := mn.Counts("Refractory")
	require.NoError(t, err)
	assert.Greater(t, ref[0], cnt[0])

	vr := mn.Ranges["V"]
	assert.Equal(t, float32(-5), vr.Min)
	assert.Less(t, vr.Max, float32(20))

	rates, err := mn.Rates(20)
	require.NoError(t, err)
	assert.InDelta(t, cnt[0]*50, rates[0], 1e-3)
	_, err = mn.Rates(0)
	assert.Error(t, err)

	mn.Reset()
	assert.Equal(t, 0, mn.Table.Rows)
	cnt, err = mn.Counts(InfoCol)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0}, cnt)
}

func TestConfigErrors(t *testing.T) {
	pop, err := neuron.NewPopulation("LIF", initz.NewSize(2), neuron.LIF)
	require.NoError(t, err)
	assert.Error(t, New(pop).Config(), "not reset")
	require.NoError(t, pop.Reset(0))
	assert.ErrorIs(t, New(pop, "W").Config(), neuron.ErrVar)
	_, err = New(pop).Counts(InfoCol)
	assert.ErrorIs(t, err, ErrNotConfig)
}

func TestWriteCSV(t *testing.T) {
	pop := newLIF(t)
	mn := New(pop, "V")
	require.NoError(t, mn.Config())
	run(t, pop, mn, 10, []float32{500, 0})
	var b bytes.Buffer
	require.NoError(t, mn.WriteCSV(&b))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	assert.Len(t, lines, 11)
	assert.True(t, strings.Contains(lines[0], "Time"))
	assert.True(t, strings.Contains(lines[0], "V"))
}
