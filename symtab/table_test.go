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

package symtab

import "testing"

func TestProbeTableInsertFind(t *testing.T) {
	table := newProbeTable[int](0)
	table.insert(42, 1)
	table.insert(42, 2) // same hash, different symbol -- simulates a collision
	table.insert(7, 3)

	got, ok := table.find(42, func(s int) bool { return s == 1 })
	if !ok || got != 1 {
		t.Fatalf("find(42, ==1) = %v, %v", got, ok)
	}
	got, ok = table.find(42, func(s int) bool { return s == 2 })
	if !ok || got != 2 {
		t.Fatalf("find(42, ==2) = %v, %v", got, ok)
	}
	if _, ok := table.find(42, func(s int) bool { return s == 99 }); ok {
		t.Fatal("find should miss when no candidate matches the equality function")
	}
	if _, ok := table.find(100, func(int) bool { return true }); ok {
		t.Fatal("find should miss on a hash with no entries")
	}
}

func TestProbeTableGrows(t *testing.T) {
	table := newProbeTable[int](0)
	for i := 0; i < 1000; i++ {
		table.insert(uint64(i), i)
	}
	if table.len() != 1000 {
		t.Fatalf("len() = %d, want 1000", table.len())
	}
	for i := 0; i < 1000; i++ {
		got, ok := table.find(uint64(i), func(s int) bool { return s == i })
		if !ok || got != i {
			t.Fatalf("find(%d) = %v, %v after growth", i, got, ok)
		}
	}
}

func TestProbeTableShrinkToFit(t *testing.T) {
	table := newProbeTable[int](10000)
	for i := 0; i < 10; i++ {
		table.insert(uint64(i), i)
	}
	before := len(table.slots)
	table.shrinkToFit()
	if len(table.slots) >= before {
		t.Fatalf("shrinkToFit did not shrink: before=%d after=%d", before, len(table.slots))
	}
	for i := 0; i < 10; i++ {
		got, ok := table.find(uint64(i), func(s int) bool { return s == i })
		if !ok || got != i {
			t.Fatalf("find(%d) = %v, %v after shrinkToFit", i, got, ok)
		}
	}
}
