// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package initz

import "fmt"

// Size specifies the shape of a neuron population, with optional
// per-dimension sharding names that label the tensor dimensions.
type Size struct {

	// shape of the population, outer-to-inner (row major)
	Shape []int

	// optional names for each dimension, used as tensor dimension names
	Sharding []string
}

// NewSize returns a Size for the given shape
func NewSize(shape ...int) Size {
	return Size{Shape: shape}
}

// Validate returns ErrSize if the shape is empty, has non-positive
// dimensions, or has more sharding names than dimensions.
func (sz Size) Validate() error {
	if len(sz.Shape) == 0 {
		return fmt.Errorf("%w: empty shape", ErrSize)
	}
	for i, d := range sz.Shape {
		if d <= 0 {
			return fmt.Errorf("%w: dim %d = %d", ErrSize, i, d)
		}
	}
	if len(sz.Sharding) > len(sz.Shape) {
		return fmt.Errorf("%w: %d sharding names for %d dims", ErrSize, len(sz.Sharding), len(sz.Shape))
	}
	return nil
}

// Len returns the number of neurons
func (sz Size) Len() int {
	return prod(sz.Shape)
}

// DimNames returns one name per dimension, blank where no sharding name is given
func (sz Size) DimNames() []string {
	nms := make([]string, len(sz.Shape))
	copy(nms, sz.Sharding)
	return nms
}

// VarShape returns the shape and dimension names of a state variable:
// the population shape, prefixed by the batch dimension if batch > 0.
func (sz Size) VarShape(batch int) ([]int, []string) {
	if batch <= 0 {
		shp := make([]int, len(sz.Shape))
		copy(shp, sz.Shape)
		return shp, sz.DimNames()
	}
	shp := append([]int{batch}, sz.Shape...)
	nms := append([]string{BatchDim}, sz.DimNames()...)
	return shp, nms
}
