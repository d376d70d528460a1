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

// Package bucket implements the bucket storage strategy: strings live in
// contiguous, never-reallocated byte buckets, so a resolved byte span
// stays valid for the backend's whole lifetime regardless of how many
// more strings get interned later.
package bucket

import (
	"unsafe"

	"golang.org/x/exp/slices"

	"github.com/go-interner/interner/backend"
	"github.com/go-interner/interner/symbol"
)

// minSize is the capacity of the first bucket when no hint is given.
const minSize = 256

// span locates one record: either inside a bucket, or -- for strings
// pinned via InternStatic -- in the external slice.
type span struct {
	bucket int // -1 means "external"
	start  uint32
	length uint32
}

// Backend is the bucket-backed storage strategy. The zero value is ready
// to use.
type Backend[S symbol.Width] struct {
	buckets  []bucketBuf
	spans    []span
	external []string
}

type bucketBuf struct {
	buf []byte
	off int
}

// New returns an empty Backend.
func New[S symbol.Width]() *Backend[S] {
	return &Backend[S]{}
}

// WithCapacity returns an empty Backend sized to hold about n records
// totalling about bytes bytes without needing to grow. Both hints are
// advisory.
func WithCapacity[S symbol.Width](n, bytes int) *Backend[S] {
	b := &Backend[S]{}
	if n > 0 {
		b.spans = make([]span, 0, n)
	}
	if bytes > 0 {
		b.buckets = append(b.buckets, bucketBuf{buf: make([]byte, bytes)})
	}
	return b
}

// ensureRoom returns a bucket with at least n free bytes, allocating a
// new bucket (at least twice the size of the last one, and at least n
// bytes) if the current one doesn't have room.
func (b *Backend[S]) ensureRoom(n int) *bucketBuf {
	if len(b.buckets) > 0 {
		last := &b.buckets[len(b.buckets)-1]
		if len(last.buf)-last.off >= n {
			return last
		}
	}
	size := minSize
	if len(b.buckets) > 0 {
		size = len(b.buckets[len(b.buckets)-1].buf) * 2
	}
	if size < n {
		size = n
	}
	b.buckets = append(b.buckets, bucketBuf{buf: make([]byte, size)})
	return &b.buckets[len(b.buckets)-1]
}

// Intern pins a copy of s into the current (or a freshly grown) bucket
// and returns a fresh symbol for it.
func (b *Backend[S]) Intern(s string) (symbol.Symbol[S], error) {
	sym, ok := symbol.TryFromIndex[S](uint64(len(b.spans)))
	if !ok {
		return symbol.Symbol[S]{}, backend.ErrCapacityExceeded
	}
	bk := b.ensureRoom(len(s))
	start := bk.off
	copy(bk.buf[bk.off:], s)
	bk.off += len(s)
	b.spans = append(b.spans, span{
		bucket: len(b.buckets) - 1,
		start:  uint32(start),
		length: uint32(len(s)),
	})
	return sym, nil
}

// InternStatic records s by reference instead of copying it into a
// bucket, on the caller's promise that s outlives this Backend.
func (b *Backend[S]) InternStatic(s string) (symbol.Symbol[S], error) {
	sym, ok := symbol.TryFromIndex[S](uint64(len(b.spans)))
	if !ok {
		return symbol.Symbol[S]{}, backend.ErrCapacityExceeded
	}
	idx := len(b.external)
	b.external = append(b.external, s)
	b.spans = append(b.spans, span{bucket: -1, start: uint32(idx)})
	return sym, nil
}

func (b *Backend[S]) resolveSpan(sp span) string {
	if sp.bucket < 0 {
		return b.external[sp.start]
	}
	if sp.length == 0 {
		return ""
	}
	buf := b.buckets[sp.bucket].buf[sp.start : sp.start+sp.length]
	return unsafe.String(&buf[0], len(buf))
}

// Resolve returns the bytes for sym, or ("", false) if sym was not
// produced by this Backend.
func (b *Backend[S]) Resolve(sym symbol.Symbol[S]) (string, bool) {
	if !sym.Valid() {
		return "", false
	}
	idx := sym.ToIndex()
	if idx >= uint64(len(b.spans)) {
		return "", false
	}
	return b.resolveSpan(b.spans[idx]), true
}

// ResolveUnchecked skips the bounds check Resolve performs.
func (b *Backend[S]) ResolveUnchecked(sym symbol.Symbol[S]) string {
	return b.resolveSpan(b.spans[sym.ToIndex()])
}

// Len reports the number of records pinned so far.
func (b *Backend[S]) Len() int { return len(b.spans) }

// IsEmpty reports Len() == 0.
func (b *Backend[S]) IsEmpty() bool { return len(b.spans) == 0 }

// ShrinkToFit trims the side table's spare capacity. It never touches
// bucket memory: compacting a bucket would have to move bytes, and any
// move invalidates every unsafe.String already handed out for that
// bucket, breaking the "once returned, always resolvable" guarantee.
func (b *Backend[S]) ShrinkToFit() {
	b.spans = slices.Clone(b.spans)
	b.external = slices.Clone(b.external)
}

// Iterator walks every pinned record in symbol order.
func (b *Backend[S]) Iterator() backend.Iterator[symbol.Symbol[S]] {
	i := 0
	n := len(b.spans)
	return backend.NewIterator(func() (symbol.Symbol[S], string, bool) {
		if i >= n {
			var zero symbol.Symbol[S]
			return zero, "", false
		}
		sym := symbol.MustFromIndex[S](uint64(i))
		s := b.resolveSpan(b.spans[i])
		i++
		return sym, s, true
	})
}

var _ backend.Backend[symbol.Symbol32] = (*Backend[uint32])(nil)
