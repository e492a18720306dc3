// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package monitor records the observable output and selected state variables of
a population after every step into an etable.Table, with one row per step and
one tensor-valued column per variable, for analysis or export as CSV.
*/
package monitor

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"github.com/emer/spiking/clock"
)

// ErrNotConfig is returned by Record before Config
var ErrNotConfig = errors.New("monitor: not configured")

// LogPrec is the precision for saving float values
const LogPrec = 4

// InfoCol is the column name for the observable output of the source
const InfoCol = "Info"

// Source is a recorded population
type Source interface {

	// Name is the name of the source
	Name() string

	// Info returns the live observable output of the source
	Info() *etensor.Float32

	// Var returns the live state variable of given name
	Var(name string) (etensor.Tensor, error)
}

// Monitor records a Source into a Table
type Monitor struct {

	// recorded source
	Src Source

	// names of the state variables recorded in addition to Info
	Vars []string

	// recorded data, one row per Record, starting with a Time column
	Table *etable.Table

	// range of values of each recorded column, over all rows
	Ranges map[string]minmax.F32

	nms []string
	buf []float32
}

// New returns a Monitor recording src and the given state variables
func New(src Source, vars ...string) *Monitor {
	return &Monitor{Src: src, Vars: vars}
}

// Config configures the table for the current shape of the source,
// removing all rows.  Must be called after the source is Reset.
func (mn *Monitor) Config() error {
	info := mn.Src.Info()
	if info == nil {
		return fmt.Errorf("monitor: %s has no output, Reset first", mn.Src.Name())
	}
	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{InfoCol, etensor.FLOAT32, info.Shapes(), dimNames(info)},
	}
	for _, nm := range mn.Vars {
		tsr, err := mn.Src.Var(nm)
		if err != nil {
			return err
		}
		sch = append(sch, etable.Column{nm, etensor.FLOAT32, tsr.Shapes(), dimNames(tsr)})
	}
	mn.nms = append([]string{InfoCol}, mn.Vars...)
	if mn.Table == nil {
		mn.Table = &etable.Table{}
	}
	dt := mn.Table
	dt.SetMetaData("name", mn.Src.Name())
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	dt.SetFromSchema(sch, 0)
	mn.Ranges = make(map[string]minmax.F32, len(mn.nms))
	for _, nm := range mn.nms {
		mn.Ranges[nm] = minmax.F32{Min: math32.MaxFloat32, Max: -math32.MaxFloat32}
	}
	return nil
}

func (mn *Monitor) col(name string) (etensor.Tensor, error) {
	for i, nm := range mn.Table.ColNames {
		if nm == name {
			return mn.Table.Cols[i], nil
		}
	}
	return nil, fmt.Errorf("monitor: %s has no column %q", mn.Src.Name(), name)
}

func cellLen(tsr etensor.Tensor) int {
	shp := tsr.Shapes()
	n := 1
	for _, s := range shp[1:] {
		n *= s
	}
	return n
}

// values returns the values of a recorded tensor as float32
func values(tsr etensor.Tensor, vals []float32) ([]float32, error) {
	switch st := tsr.(type) {
	case *etensor.Float32:
		return append(vals[:0], st.Values...), nil
	case *etensor.Bits:
		vals = vals[:0]
		for i := 0; i < st.Len(); i++ {
			if st.Value1D(i) {
				vals = append(vals, 1)
			} else {
				vals = append(vals, 0)
			}
		}
		return vals, nil
	}
	return nil, fmt.Errorf("monitor: cannot record tensor of type %T", tsr)
}

func dimNames(tsr etensor.Tensor) []string {
	nms := make([]string, tsr.NumDims())
	for i := range nms {
		nms[i] = tsr.DimName(i)
	}
	return nms
}

// Record adds a row with the current values of the source, at the end
// of the step of ctx
func (mn *Monitor) Record(ctx clock.Context) error {
	if mn.Table == nil || len(mn.nms) == 0 {
		return ErrNotConfig
	}
	dt := mn.Table
	row := dt.Rows
	dt.SetNumRows(row + 1)
	tc, err := mn.col("Time")
	if err != nil {
		return err
	}
	tc.(*etensor.Float64).Values[row] = float64(ctx.T + ctx.Dt)
	for _, nm := range mn.nms {
		var src etensor.Tensor
		if nm == InfoCol {
			src = mn.Src.Info()
		} else {
			src, err = mn.Src.Var(nm)
			if err != nil {
				return err
			}
		}
		mn.buf, err = values(src, mn.buf)
		if err != nil {
			return err
		}
		ct, err := mn.col(nm)
		if err != nil {
			return err
		}
		cl := cellLen(ct)
		if cl != len(mn.buf) {
			return fmt.Errorf("monitor: %s %s changed shape since Config: %v", mn.Src.Name(), nm, src.Shapes())
		}
		copy(ct.(*etensor.Float32).Values[row*cl:(row+1)*cl], mn.buf)
		mm := mn.Ranges[nm]
		for _, v := range mn.buf {
			mm.Min = math32.Min(mm.Min, v)
			mm.Max = math32.Max(mm.Max, v)
		}
		mn.Ranges[nm] = mm
	}
	return nil
}

// Reset removes all recorded rows, keeping the configuration
func (mn *Monitor) Reset() {
	if mn.Table == nil {
		return
	}
	mn.Table.SetNumRows(0)
	for nm := range mn.Ranges {
		mn.Ranges[nm] = minmax.F32{Min: math32.MaxFloat32, Max: -math32.MaxFloat32}
	}
}

// Counts returns the sum over all recorded rows of each element of the
// given column, e.g., the spike count of each neuron for the Info of a
// spiking population
func (mn *Monitor) Counts(name string) ([]float32, error) {
	if mn.Table == nil {
		return nil, ErrNotConfig
	}
	ct, err := mn.col(name)
	if err != nil {
		return nil, err
	}
	ft, ok := ct.(*etensor.Float32)
	if !ok {
		return nil, fmt.Errorf("monitor: column %q is not recorded", name)
	}
	cl := cellLen(ct)
	cnt := make([]float32, cl)
	for row := 0; row < mn.Table.Rows; row++ {
		for i, v := range ft.Values[row*cl : (row+1)*cl] {
			cnt[i] += v
		}
	}
	return cnt, nil
}

// Rates returns the firing rate of each element, in Hz, from the Info
// spikes recorded over dur msec
func (mn *Monitor) Rates(dur float32) ([]float32, error) {
	cnt, err := mn.Counts(InfoCol)
	if err != nil {
		return nil, err
	}
	if dur <= 0 {
		return nil, fmt.Errorf("monitor: non-positive duration %v", dur)
	}
	for i := range cnt {
		cnt[i] *= 1000 / dur
	}
	return cnt, nil
}

// WriteCSV writes the recorded table as comma separated values with headers
func (mn *Monitor) WriteCSV(w io.Writer) error {
	if mn.Table == nil {
		return ErrNotConfig
	}
	return mn.Table.WriteCSV(w, etable.Comma, etable.Headers)
}
