// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package initz

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal samples each element from a gaussian distribution.
// The same Seed always produces the same values.
type Normal struct {
	Mean float32
	Std  float32 `min:"0"`
	Seed uint64
}

// Init implements Initializer
func (nr *Normal) Init(shape []int, vals []float32) error {
	dist := distuv.Normal{Mu: float64(nr.Mean), Sigma: float64(nr.Std), Src: rand.NewSource(nr.Seed)}
	for i := range vals {
		vals[i] = float32(dist.Rand())
	}
	return nil
}

// Uniform samples each element uniformly from [Min, Max).
type Uniform struct {
	Min  float32
	Max  float32
	Seed uint64
}

// Init implements Initializer
func (un *Uniform) Init(shape []int, vals []float32) error {
	dist := distuv.Uniform{Min: float64(un.Min), Max: float64(un.Max), Src: rand.NewSource(un.Seed)}
	for i := range vals {
		vals[i] = float32(dist.Rand())
	}
	return nil
}
