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

package buffer

import (
	"testing"

	"github.com/go-interner/interner/symbol"
)

func TestInternResolveSequence(t *testing.T) {
	b := New[uint32]()
	want := []string{"x", "yz", "", "abcdef"}
	syms := make([]symbol.Symbol32, 0, len(want))
	for _, s := range want {
		sym, err := b.Intern(s)
		if err != nil {
			t.Fatal(err)
		}
		syms = append(syms, sym)
	}
	for i, s := range want {
		got, ok := b.Resolve(syms[i])
		if !ok || got != s {
			t.Fatalf("Resolve(%d) = %q, %v, want %q", i, got, ok, s)
		}
	}
}

func TestResolveUnknownOffsetMisses(t *testing.T) {
	b := New[uint32]()
	b.Intern("hello")
	bogus, ok := symbol.TryFromIndex[uint32](999999)
	if !ok {
		t.Fatal("expected a constructible symbol for this test")
	}
	if _, ok := b.Resolve(bogus); ok {
		t.Fatal("Resolve on an out-of-range offset should miss, not panic")
	}
}

func TestCapacityExceeded(t *testing.T) {
	b := New[uint8]()
	// each "x" record is 2 bytes, so records 0..127 sit at offsets 0..254
	for i := 0; i < 128; i++ {
		if _, err := b.Intern("x"); err != nil {
			t.Fatalf("intern %d: %v", i, err)
		}
	}
	if _, err := b.Intern("y"); err == nil {
		t.Fatal("want capacity exceeded error once offsets exceed uint8 range")
	}
}

func TestIteratorMatchesInsertionOrder(t *testing.T) {
	b := New[uint32]()
	want := []string{"x", "yz", "", "abcdef"}
	for _, s := range want {
		if _, err := b.Intern(s); err != nil {
			t.Fatal(err)
		}
	}
	it := b.Iterator()
	i := 0
	for {
		sym, s, ok := it.Next()
		if !ok {
			break
		}
		if s != want[i] {
			t.Fatalf("iterator[%d] = %q, want %q", i, s, want[i])
		}
		if got, ok := b.Resolve(sym); !ok || got != want[i] {
			t.Fatalf("Resolve(iterator symbol %d) = %q, %v", i, got, ok)
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("iterated %d records, want %d", i, len(want))
	}
}

func TestShrinkToFitPreservesSymbols(t *testing.T) {
	b := WithCapacity[uint32](0, 4096)
	s1, _ := b.Intern("a")
	s2, _ := b.Intern("bb")
	b.ShrinkToFit()
	if got, ok := b.Resolve(s1); !ok || got != "a" {
		t.Fatalf("Resolve(s1) after shrink = %q, %v", got, ok)
	}
	if got, ok := b.Resolve(s2); !ok || got != "bb" {
		t.Fatalf("Resolve(s2) after shrink = %q, %v", got, ok)
	}
}
