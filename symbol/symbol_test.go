// Copyright (C) 2024 The Interner Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package symbol

import "testing"

func TestTryFromIndexRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 7, 254, 255} {
		sym, ok := TryFromIndex[uint8](n)
		if !ok {
			t.Fatalf("TryFromIndex[uint8](%d): want ok", n)
		}
		if got := sym.ToIndex(); got != n {
			t.Fatalf("TryFromIndex[uint8](%d).ToIndex() = %d", n, got)
		}
		if !sym.Valid() {
			t.Fatalf("TryFromIndex[uint8](%d): want Valid", n)
		}
	}
}

// An 8-bit symbol must represent all 256 indices its width can hold
// (0..255): try_from_index(MaxIndex) is present, and only one step past
// the width's range (MaxIndex+1) is absent.
func TestTryFromIndexRange(t *testing.T) {
	if _, ok := TryFromIndex[uint8](MaxIndex[uint8]()); !ok {
		t.Fatal("try_from_index(MAX) should be present")
	}
	if _, ok := TryFromIndex[uint8](MaxIndex[uint8]() + 1); ok {
		t.Fatal("try_from_index(MAX+1) should be absent")
	}
	if _, ok := TryFromIndex[uint16](MaxIndex[uint16]()); !ok {
		t.Fatal("try_from_index(MAX) should be present")
	}
	if _, ok := TryFromIndex[uint16](MaxIndex[uint16]() + 1); ok {
		t.Fatal("try_from_index(MAX+1) should be absent")
	}
	if _, ok := TryFromIndex[uint32](MaxIndex[uint32]()); !ok {
		t.Fatal("try_from_index(MAX) should be present")
	}
	if _, ok := TryFromIndex[uint32](MaxIndex[uint32]() + 1); ok {
		t.Fatal("try_from_index(MAX+1) should be absent")
	}
}

func TestZeroValueInvalid(t *testing.T) {
	var z Symbol[uint32]
	if z.Valid() {
		t.Fatal("zero Symbol should be invalid")
	}
	if Zero.Valid() {
		t.Fatal("Zero sentinel should be invalid")
	}
}

func TestEquality(t *testing.T) {
	a, _ := TryFromIndex[uint32](5)
	b, _ := TryFromIndex[uint32](5)
	c, _ := TryFromIndex[uint32](6)
	if a != b {
		t.Fatal("symbols with equal index should compare equal")
	}
	if a == c {
		t.Fatal("symbols with different index should not compare equal")
	}
}

func TestOrdering(t *testing.T) {
	a, _ := TryFromIndex[uint32](1)
	b, _ := TryFromIndex[uint32](2)
	if !a.Less(b) {
		t.Fatal("want a < b")
	}
	if b.Less(a) {
		t.Fatal("want !(b < a)")
	}
}

func TestMustFromIndexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic on overflow")
		}
	}()
	MustFromIndex[uint8](MaxIndex[uint8]() + 1)
}
