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

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/dchest/siphash"
)

// Hasher produces a 64-bit digest of a string for use as a probe-table
// key. Interners default to a siphash-keyed Hasher; callers with
// different throughput/DoS-resistance tradeoffs can supply their own via
// WithHasher.
type Hasher interface {
	Hash(s string) uint64
}

// sipHasher is the default Hasher, grounded on the same
// github.com/dchest/siphash primitive vm/siphash_generic.go uses for
// hashing byte spans in the teacher codebase. Each Interner gets its own
// random key pair so that colliding a specific instance's probe table
// requires observing that instance's keys, not just the algorithm.
type sipHasher struct {
	k0, k1 uint64
}

func (h sipHasher) Hash(s string) uint64 {
	return siphash.Hash(h.k0, h.k1, []byte(s))
}

func newDefaultHasher() Hasher {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand failing is effectively unheard of on supported
		// platforms; fall back to fixed keys rather than propagate an
		// error from every interner constructor for this edge case.
		return sipHasher{k0: 0x9e3779b97f4a7c15, k1: 0xbf58476d1ce4e5b9}
	}
	return sipHasher{
		k0: binary.LittleEndian.Uint64(seed[0:8]),
		k1: binary.LittleEndian.Uint64(seed[8:16]),
	}
}
