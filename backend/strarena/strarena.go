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

// Package strarena implements the string-arena storage strategy: every
// interned string lives in one growing []byte, with a side table of
// record-end offsets. It minimizes allocation count at the cost of
// needing to re-derive every byte reference from the arena on each call,
// since the arena itself may move on regrowth.
//
// This mirrors ion.Symtab's interned/append/set pair from the teacher
// codebase: a growable slice of stored values plus a side table, grown by
// re-slicing within existing capacity when possible and only reallocating
// (via append) when it isn't.
package strarena

import (
	"golang.org/x/exp/slices"

	"github.com/go-interner/interner/backend"
	"github.com/go-interner/interner/symbol"
)

// Backend is the string-arena storage strategy. The zero value is ready
// to use.
type Backend[S symbol.Width] struct {
	arena []byte
	ends  []int // ends[i] is the exclusive end offset of record i in arena
}

// New returns an empty Backend.
func New[S symbol.Width]() *Backend[S] {
	return &Backend[S]{}
}

// WithCapacity returns an empty Backend whose arena and side table are
// pre-sized for about n records totalling about bytes bytes. Both hints
// are advisory.
func WithCapacity[S symbol.Width](n, bytes int) *Backend[S] {
	b := &Backend[S]{}
	if bytes > 0 {
		b.arena = make([]byte, 0, bytes)
	}
	if n > 0 {
		b.ends = make([]int, 0, n)
	}
	return b
}

func (b *Backend[S]) start(i int) int {
	if i == 0 {
		return 0
	}
	return b.ends[i-1]
}

// Intern appends s to the arena and records its end offset.
func (b *Backend[S]) Intern(s string) (symbol.Symbol[S], error) {
	sym, ok := symbol.TryFromIndex[S](uint64(len(b.ends)))
	if !ok {
		return symbol.Symbol[S]{}, backend.ErrCapacityExceeded
	}
	b.arena = append(b.arena, s...)
	b.ends = append(b.ends, len(b.arena))
	return sym, nil
}

// InternStatic falls back to Intern: the arena backend always keeps
// bytes in its own contiguous buffer, so there is no way to take
// advantage of a caller's "outlives me" promise here.
func (b *Backend[S]) InternStatic(s string) (symbol.Symbol[S], error) {
	return b.Intern(s)
}

func (b *Backend[S]) slice(i int) string {
	return string(b.arena[b.start(i):b.ends[i]])
}

// Resolve returns the bytes for sym, or ("", false) if sym was not
// produced by this Backend. The returned string is re-derived from the
// arena's current backing array on every call -- the arena may have
// reallocated since sym was issued, so no raw pointer survives between
// calls, only the (start, end) pair does.
func (b *Backend[S]) Resolve(sym symbol.Symbol[S]) (string, bool) {
	if !sym.Valid() {
		return "", false
	}
	idx := sym.ToIndex()
	if idx >= uint64(len(b.ends)) {
		return "", false
	}
	return b.slice(int(idx)), true
}

// ResolveUnchecked skips the bounds check Resolve performs.
func (b *Backend[S]) ResolveUnchecked(sym symbol.Symbol[S]) string {
	return b.slice(int(sym.ToIndex()))
}

// Len reports the number of records pinned so far.
func (b *Backend[S]) Len() int { return len(b.ends) }

// IsEmpty reports Len() == 0.
func (b *Backend[S]) IsEmpty() bool { return len(b.ends) == 0 }

// ShrinkToFit reallocates the arena and side table down to their exact
// used size. Unlike the bucket backend, this is safe here: Resolve never
// hands out a pointer that survives past the next mutation, so nothing
// can observe the arena moving.
func (b *Backend[S]) ShrinkToFit() {
	b.arena = slices.Clone(b.arena)
	b.ends = slices.Clone(b.ends)
}

// Iterator walks every pinned record in symbol order.
func (b *Backend[S]) Iterator() backend.Iterator[symbol.Symbol[S]] {
	i := 0
	n := len(b.ends)
	return backend.NewIterator(func() (symbol.Symbol[S], string, bool) {
		if i >= n {
			var zero symbol.Symbol[S]
			return zero, "", false
		}
		sym := symbol.MustFromIndex[S](uint64(i))
		s := b.slice(i)
		i++
		return sym, s, true
	})
}

var _ backend.Backend[symbol.Symbol32] = (*Backend[uint32])(nil)
