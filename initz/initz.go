// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package initz provides initializers that produce parameter and state tensors
shaped to a neuron population.

An Initializer fills a flat float32 buffer for a requested shape. Parameters
are created for the population shape only, and state variables additionally
get a leading batch dimension when the population runs in batched mode.
*/
package initz

import (
	"errors"
	"fmt"

	"github.com/emer/etable/v2/etensor"
)

var (
	// ErrSize is returned for a malformed size specification.
	ErrSize = errors.New("initz: invalid size")

	// ErrShape is returned when an array initializer does not fit the target shape.
	ErrShape = errors.New("initz: shape mismatch")

	// ErrNotInitializer is returned by Check for values that cannot initialize a tensor.
	ErrNotInitializer = errors.New("initz: not an initializer")
)

// BatchDim is the dimension name used for the leading batch dimension
const BatchDim = "Batch"

// Initializer produces the initial values for a tensor of given shape.
// vals has length equal to the product of shape.
type Initializer interface {
	Init(shape []int, vals []float32) error
}

// Func adapts an ordinary function to the Initializer interface.
type Func func(shape []int, vals []float32) error

func (fn Func) Init(shape []int, vals []float32) error { return fn(shape, vals) }

// Const fills every element with the same value.
type Const float32

func (cv Const) Init(shape []int, vals []float32) error {
	v := float32(cv)
	for i := range vals {
		vals[i] = v
	}
	return nil
}

// Zeros returns an initializer filling with 0
func Zeros() Initializer { return Const(0) }

// Ones returns an initializer filling with 1
func Ones() Initializer { return Const(1) }

// Array initializes from explicit values. A single value fills the target,
// values with the same shape are copied, and values whose shape matches the
// trailing dimensions of the target are tiled over the leading dimensions
// (e.g., population-shaped values repeated over the batch).
// A nil Shape is taken to be 1D of len(Values).
type Array struct {
	Shape  []int
	Values []float32
}

// Init implements Initializer
func (ar *Array) Init(shape []int, vals []float32) error {
	ashp := ar.Shape
	if ashp == nil {
		ashp = []int{len(ar.Values)}
	}
	if prod(ashp) != len(ar.Values) {
		return fmt.Errorf("%w: array shape %v holds %d values, has %d", ErrShape, ashp, prod(ashp), len(ar.Values))
	}
	if len(ar.Values) == 1 {
		return Const(ar.Values[0]).Init(shape, vals)
	}
	if !trailing(shape, ashp) {
		return fmt.Errorf("%w: array shape %v incompatible with %v", ErrShape, ashp, shape)
	}
	n := len(ar.Values)
	for i := 0; i < len(vals); i += n {
		copy(vals[i:i+n], ar.Values)
	}
	return nil
}

// trailing returns true if sub equals the last dims of shp
func trailing(shp, sub []int) bool {
	if len(sub) > len(shp) {
		return false
	}
	off := len(shp) - len(sub)
	for i, d := range sub {
		if shp[off+i] != d {
			return false
		}
	}
	return true
}

func prod(shp []int) int {
	n := 1
	for _, d := range shp {
		n *= d
	}
	return n
}

// Check converts a value into an Initializer: numbers become Const,
// slices become 1D Array values, functions of the Func signature are adapted,
// and Initializers are returned as is.
func Check(v any) (Initializer, error) {
	switch iv := v.(type) {
	case Initializer:
		return iv, nil
	case func(shape []int, vals []float32) error:
		return Func(iv), nil
	case float32:
		return Const(iv), nil
	case float64:
		return Const(float32(iv)), nil
	case int:
		return Const(float32(iv)), nil
	case []float32:
		return &Array{Values: iv}, nil
	case []float64:
		fv := make([]float32, len(iv))
		for i, x := range iv {
			fv[i] = float32(x)
		}
		return &Array{Values: fv}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotInitializer, v)
}

// Variable creates a state tensor for the given population size, with a
// leading batch dimension if batch > 0.
func Variable(init Initializer, sz Size, batch int) (*etensor.Float32, error) {
	if err := sz.Validate(); err != nil {
		return nil, err
	}
	if batch < 0 {
		return nil, fmt.Errorf("%w: negative batch size %d", ErrSize, batch)
	}
	shp, nms := sz.VarShape(batch)
	tsr := etensor.NewFloat32(shp, nil, nms)
	if init == nil {
		return tsr, nil
	}
	if err := init.Init(shp, tsr.Values); err != nil {
		return nil, err
	}
	return tsr, nil
}
