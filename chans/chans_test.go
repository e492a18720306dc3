// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "testing"

func TestGetSet(t *testing.T) {
	erev := Chans{}
	erev.Defaults()
	if erev.Get(Excite) != 0 || erev.Get(Leak) != -70 || erev.Get(Inhib) != -80 || erev.Get(Potassium) != -90 {
		t.Errorf("defaults: %+v", erev)
	}
	erev.Set(Inhib, -75)
	if erev.I != -75 || erev.Get(Inhib) != -75 {
		t.Errorf("set inhib: %+v", erev)
	}
}

func TestChannelsText(t *testing.T) {
	for c := Channels(0); c < ChannelsN; c++ {
		b, _ := c.MarshalText()
		var r Channels
		if err := r.UnmarshalText(b); err != nil || r != c {
			t.Errorf("%v: text %q -> %v %v", c, b, r, err)
		}
	}
	var r Channels
	if err := r.UnmarshalText([]byte("Sodium")); err == nil {
		t.Errorf("unknown channel: expected error")
	}
}
