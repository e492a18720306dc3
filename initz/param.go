// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package initz

import (
	"fmt"
	"strconv"
)

// Param is a neuron parameter. Val applies to every neuron unless
// per-neuron Vals have been initialized, in which case Vals has one
// entry per neuron (never a batch dimension).
type Param struct {

	// scalar value shared by all neurons
	Val float32

	// per-neuron values, if initialized -- overrides Val
	Vals []float32 `view:"-" json:"-" toml:"-"`
}

// P returns a scalar Param
func P(v float32) Param {
	return Param{Val: v}
}

// At returns the parameter for flat state index i. State variables have
// the population shape innermost, so i modulo the population size is the neuron.
func (pr *Param) At(i int) float32 {
	if pr.Vals == nil {
		return pr.Val
	}
	return pr.Vals[i%len(pr.Vals)]
}

// Set sets a scalar value, removing any per-neuron values
func (pr *Param) Set(v float32) {
	pr.Val = v
	pr.Vals = nil
}

// IsScalar returns true if no per-neuron values are set
func (pr *Param) IsScalar() bool {
	return pr.Vals == nil
}

// Init sets per-neuron values from the initializer for given population size.
func (pr *Param) Init(init Initializer, sz Size) error {
	if err := sz.Validate(); err != nil {
		return err
	}
	vals := make([]float32, sz.Len())
	if err := init.Init(sz.Shape, vals); err != nil {
		return err
	}
	pr.Vals = vals
	if len(vals) > 0 {
		pr.Val = vals[0]
	}
	return nil
}

// Validate checks that any per-neuron values match the population size
func (pr *Param) Validate(sz Size) error {
	if pr.Vals != nil && len(pr.Vals) != sz.Len() {
		return fmt.Errorf("%w: %d per-neuron values for %d neurons", ErrShape, len(pr.Vals), sz.Len())
	}
	return nil
}

func (pr Param) String() string {
	if pr.Vals == nil {
		return strconv.FormatFloat(float64(pr.Val), 'g', -1, 32)
	}
	return fmt.Sprintf("%v", pr.Vals)
}

// UnmarshalTOML accepts a number (scalar) or an array of numbers (per-neuron).
func (pr *Param) UnmarshalTOML(v any) error {
	switch tv := v.(type) {
	case float64:
		pr.Set(float32(tv))
	case int64:
		pr.Set(float32(tv))
	case []any:
		vals := make([]float32, len(tv))
		for i, e := range tv {
			switch ev := e.(type) {
			case float64:
				vals[i] = float32(ev)
			case int64:
				vals[i] = float32(ev)
			default:
				return fmt.Errorf("%w: array element %T", ErrNotInitializer, e)
			}
		}
		pr.Vals = vals
		if len(vals) > 0 {
			pr.Val = vals[0]
		}
	default:
		return fmt.Errorf("%w: %T", ErrNotInitializer, v)
	}
	return nil
}
