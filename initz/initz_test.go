// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package initz

import (
	"errors"
	"testing"
)

func TestSizeValidate(t *testing.T) {
	good := []Size{NewSize(1), NewSize(4, 5), {Shape: []int{2, 3}, Sharding: []string{"Y"}}}
	for _, sz := range good {
		if err := sz.Validate(); err != nil {
			t.Errorf("size %v: unexpected err: %v", sz, err)
		}
	}
	bad := []Size{{}, NewSize(0), NewSize(3, -1), {Shape: []int{2}, Sharding: []string{"Y", "X"}}}
	for _, sz := range bad {
		if err := sz.Validate(); !errors.Is(err, ErrSize) {
			t.Errorf("size %v: expected ErrSize, got: %v", sz, err)
		}
	}
}

func TestVariableShape(t *testing.T) {
	sz := Size{Shape: []int{3, 4}, Sharding: []string{"Y", "X"}}
	for _, batch := range []int{0, 1, 5} {
		tsr, err := Variable(Const(2), sz, batch)
		if err != nil {
			t.Fatal(err)
		}
		shp := tsr.Shapes()
		if batch == 0 {
			if len(shp) != 2 || shp[0] != 3 || shp[1] != 4 {
				t.Errorf("unbatched shape: %v", shp)
			}
		} else {
			if len(shp) != 3 || shp[0] != batch || shp[1] != 3 || shp[2] != 4 {
				t.Errorf("batch %d shape: %v", batch, shp)
			}
			if tsr.DimName(0) != BatchDim {
				t.Errorf("batch dim name: %q", tsr.DimName(0))
			}
		}
		for i, v := range tsr.Values {
			if v != 2 {
				t.Errorf("batch %d idx %d: %v != 2", batch, i, v)
			}
		}
	}
	if _, err := Variable(Zeros(), sz, -1); !errors.Is(err, ErrSize) {
		t.Errorf("negative batch: expected ErrSize, got %v", err)
	}
}

func TestArrayTile(t *testing.T) {
	sz := NewSize(3)
	ar := &Array{Values: []float32{1, 2, 3}}
	tsr, err := Variable(ar, sz, 2)
	if err != nil {
		t.Fatal(err)
	}
	cor := []float32{1, 2, 3, 1, 2, 3}
	for i := range cor {
		if tsr.Values[i] != cor[i] {
			t.Errorf("idx %d: %v != %v", i, tsr.Values[i], cor[i])
		}
	}
	full := &Array{Shape: []int{2, 3}, Values: []float32{1, 2, 3, 4, 5, 6}}
	tsr, err = Variable(full, sz, 2)
	if err != nil {
		t.Fatal(err)
	}
	if tsr.Values[4] != 5 {
		t.Errorf("full copy: %v", tsr.Values)
	}
	if _, err := Variable(&Array{Values: []float32{1, 2}}, sz, 0); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
	if _, err := Variable(&Array{Shape: []int{4}, Values: []float32{1, 2}}, sz, 0); !errors.Is(err, ErrShape) {
		t.Errorf("inconsistent array: expected ErrShape, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	for _, v := range []any{1.5, float32(2), 3, []float32{1}, []float64{1, 2}, Zeros(),
		func(shape []int, vals []float32) error { return nil }} {
		if _, err := Check(v); err != nil {
			t.Errorf("%T: unexpected err %v", v, err)
		}
	}
	for _, v := range []any{"x", nil, struct{}{}, []string{"a"}} {
		if _, err := Check(v); !errors.Is(err, ErrNotInitializer) {
			t.Errorf("%T: expected ErrNotInitializer, got %v", v, err)
		}
	}
}

func TestParam(t *testing.T) {
	sz := NewSize(2)
	pr := P(10)
	if pr.At(7) != 10 || !pr.IsScalar() {
		t.Errorf("scalar param: %v", pr)
	}
	if err := pr.Init(&Array{Values: []float32{1, 2}}, sz); err != nil {
		t.Fatal(err)
	}
	// flat index 3 is batch 1, neuron 1
	if pr.At(3) != 2 || pr.At(2) != 1 {
		t.Errorf("per-neuron param: %v", pr.Vals)
	}
	if err := pr.Validate(NewSize(3)); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
	pr.Set(4)
	if !pr.IsScalar() || pr.At(1) != 4 {
		t.Errorf("reset to scalar: %v", pr)
	}
	if err := pr.UnmarshalTOML([]any{int64(1), 2.5}); err != nil || pr.At(1) != 2.5 {
		t.Errorf("toml array: %v %v", pr, err)
	}
	if err := pr.UnmarshalTOML("x"); !errors.Is(err, ErrNotInitializer) {
		t.Errorf("toml string: expected ErrNotInitializer, got %v", err)
	}
}

func TestRandomRepeatable(t *testing.T) {
	sz := NewSize(50)
	nr := &Normal{Mean: -60, Std: 5, Seed: 3}
	a, _ := Variable(nr, sz, 0)
	b, _ := Variable(nr, sz, 0)
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("normal not repeatable at %d", i)
		}
	}
	un := &Uniform{Min: -1, Max: 1, Seed: 1}
	u, _ := Variable(un, sz, 2)
	for i, v := range u.Values {
		if v < -1 || v >= 1 {
			t.Errorf("uniform out of range at %d: %v", i, v)
		}
	}
}
