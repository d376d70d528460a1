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

// Package symtab composes a backend (see the backend, bucket, strarena
// and buffer packages) with a hash index to guarantee that each distinct
// string is stored exactly once. It is named after ion.Symtab in the
// teacher codebase, whose map[string]int + []string pair is exactly this
// idea, generalized here to three interchangeable storage strategies and
// four symbol widths via Go generics.
package symtab

import (
	"github.com/go-interner/interner/backend"
	"github.com/go-interner/interner/backend/strarena"
	"github.com/go-interner/interner/symbol"
)

// Interner composes a Backend[S] with a hash index keyed on the bytes the
// backend stores. S is the symbol type the backend issues; B is the
// concrete backend type (almost always a pointer type, e.g.
// *strarena.Backend[uint32]).
//
// The zero value is not usable; construct with New, WithCapacity or
// NewWith.
type Interner[S comparable, B backend.Backend[S]] struct {
	back       B
	newBackend func() B
	table      *probeTable[S]
	hasher     Hasher
}

// NewWith builds an Interner around a backend produced by newBackend.
// newBackend is retained and called again by Clone/CloneInto to build a
// fresh, independent backend of the same kind.
func NewWith[S comparable, B backend.Backend[S]](newBackend func() B) *Interner[S, B] {
	return &Interner[S, B]{
		back:       newBackend(),
		newBackend: newBackend,
		table:      newProbeTable[S](0),
		hasher:     newDefaultHasher(),
	}
}

// WithHasher replaces the Interner's hasher. Must be called before any
// string is interned; changing hashers mid-lifetime would make existing
// probe-table entries unfindable.
func (in *Interner[S, B]) WithHasher(h Hasher) *Interner[S, B] {
	in.hasher = h
	return in
}

// Default is the common case described by spec.md's default: 32-bit
// symbols over a string-arena backend (minimal allocation count, good
// general-purpose default).
type Default = Interner[symbol.Symbol32, *strarena.Backend[uint32]]

// New returns an empty Default Interner.
func New() *Default {
	return NewWith[symbol.Symbol32](func() *strarena.Backend[uint32] {
		return strarena.New[uint32]()
	})
}

// WithCapacity returns an empty Default Interner whose backend is
// pre-sized for about n records totalling about bytes bytes. Both hints
// are advisory.
func WithCapacity(n, bytes int) *Default {
	return NewWith[symbol.Symbol32](func() *strarena.Backend[uint32] {
		return strarena.WithCapacity[uint32](n, bytes)
	})
}

// FromSlice builds a Default Interner from a sequence of strings,
// returning the error from the first failed GetOrIntern (capacity
// exceeded), if any.
func FromSlice(strs []string) (*Default, error) {
	in := New()
	for _, s := range strs {
		if _, err := in.GetOrIntern(s); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func (in *Interner[S, B]) resolveEq(s string) func(S) bool {
	return func(cand S) bool {
		got, ok := in.back.Resolve(cand)
		return ok && got == s
	}
}

// GetOrIntern returns the symbol for s, interning it first if this is the
// first time s has been seen by this Interner.
func (in *Interner[S, B]) GetOrIntern(s string) (S, error) {
	h := in.hasher.Hash(s)
	if sym, ok := in.table.find(h, in.resolveEq(s)); ok {
		return sym, nil
	}
	sym, err := in.back.Intern(s)
	if err != nil {
		var zero S
		return zero, err
	}
	in.table.insert(h, sym)
	return sym, nil
}

// GetOrInternStatic is GetOrIntern's counterpart for strings the caller
// guarantees outlive the Interner; some backends use this to avoid a
// copy. Deduplication still happens at this layer regardless of whether
// the backend actually took the fast path.
func (in *Interner[S, B]) GetOrInternStatic(s string) (S, error) {
	h := in.hasher.Hash(s)
	if sym, ok := in.table.find(h, in.resolveEq(s)); ok {
		return sym, nil
	}
	sym, err := in.back.InternStatic(s)
	if err != nil {
		var zero S
		return zero, err
	}
	in.table.insert(h, sym)
	return sym, nil
}

// Get is a pure lookup: it returns the existing symbol for s, or
// (zero, false) if s has never been interned. It never mutates.
func (in *Interner[S, B]) Get(s string) (S, bool) {
	h := in.hasher.Hash(s)
	return in.table.find(h, in.resolveEq(s))
}

// Resolve returns the bytes sym was interned from, or ("", false) if sym
// was not produced by this Interner.
func (in *Interner[S, B]) Resolve(sym S) (string, bool) {
	return in.back.Resolve(sym)
}

// ResolveUnchecked skips the validity check Resolve performs. The caller
// asserts sym came from this exact Interner and the Interner is still
// alive.
func (in *Interner[S, B]) ResolveUnchecked(sym S) string {
	return in.back.ResolveUnchecked(sym)
}

// Len is the number of distinct strings interned so far.
func (in *Interner[S, B]) Len() int { return in.back.Len() }

// IsEmpty reports Len() == 0.
func (in *Interner[S, B]) IsEmpty() bool { return in.back.IsEmpty() }

// Iterator walks every interned (symbol, string) pair exactly once, in
// symbol-index order. Mutating the Interner while an Iterator from it is
// in use invalidates that iterator.
func (in *Interner[S, B]) Iterator() backend.Iterator[S] {
	return in.back.Iterator()
}

// Extend interns every string in strs, in order, stopping and returning
// the first error encountered (if the symbol width is exhausted).
func (in *Interner[S, B]) Extend(strs []string) error {
	for _, s := range strs {
		if _, err := in.GetOrIntern(s); err != nil {
			return err
		}
	}
	return nil
}

// ShrinkToFit asks both the backend and the hash index to release excess
// capacity. It never invalidates a symbol already issued.
func (in *Interner[S, B]) ShrinkToFit() {
	in.back.ShrinkToFit()
	in.table.shrinkToFit()
}

// Equal reports whether in and other contain the same multiset of
// strings. Symbol values need not match between the two. Grounded on
// spec.md's "iterate one side, probe the other by string" strategy.
func (in *Interner[S, B]) Equal(other *Interner[S, B]) bool {
	if in.Len() != other.Len() {
		return false
	}
	it := in.Iterator()
	for {
		_, s, ok := it.Next()
		if !ok {
			return true
		}
		if _, ok := other.Get(s); !ok {
			return false
		}
	}
}

// Contains reports whether other's strings are a prefix of in's, with
// identical symbol assignment -- i.e. in is a semantically equivalent,
// possibly-extended substitute for other. Grounded on ion.Symtab.Contains
// (stcontains), generalized to also require symbol-id equality since this
// Interner's symbol space isn't guaranteed to be a plain array index (the
// buffer backend uses byte offsets).
func (in *Interner[S, B]) Contains(other *Interner[S, B]) bool {
	if other.Len() > in.Len() {
		return false
	}
	ai := in.Iterator()
	bi := other.Iterator()
	for {
		bsym, bs, bok := bi.Next()
		if !bok {
			return true
		}
		asym, as, aok := ai.Next()
		if !aok || as != bs || asym != bsym {
			return false
		}
	}
}

// Clone returns an independent Interner containing the same strings,
// with the same symbol assignment: resolving any symbol issued by in
// before the clone was taken yields the same bytes from the clone.
//
// This works by replaying in's strings, in order, into a freshly
// constructed backend of the same kind: since every backend assigns
// symbols as a deterministic function of (prior records, this record),
// replaying the same strings in the same order reproduces the same
// assignment.
func (in *Interner[S, B]) Clone() *Interner[S, B] {
	out := &Interner[S, B]{
		back:       in.newBackend(),
		newBackend: in.newBackend,
		table:      newProbeTable[S](in.Len()),
		hasher:     in.hasher,
	}
	it := in.Iterator()
	for {
		_, s, ok := it.Next()
		if !ok {
			break
		}
		out.GetOrIntern(s)
	}
	return out
}

// CloneInto overwrites dst with a copy of in, reusing dst's existing
// backend factory and hasher. Unlike ion.Symtab.CloneInto, this does not
// attempt to reuse dst's prior storage byte-for-byte -- that optimization
// relies on ion.Symtab's single concrete []string layout, which doesn't
// generalize cleanly across three structurally different backends -- but
// it does reuse dst's configuration (its backend constructor and hasher)
// rather than adopting in's.
func (in *Interner[S, B]) CloneInto(dst *Interner[S, B]) {
	dst.back = dst.newBackend()
	dst.table = newProbeTable[S](in.Len())
	it := in.Iterator()
	for {
		_, s, ok := it.Next()
		if !ok {
			break
		}
		dst.GetOrIntern(s)
	}
}
