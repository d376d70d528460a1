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

// Package buffer implements the buffer storage strategy: no side table at
// all. Records are laid out back-to-back in a single []byte as
// varint(length) || bytes, and a symbol is the byte offset of a record's
// length prefix. This is the lowest-memory backend of the three, at the
// cost of Resolve needing to decode a varint header on every call instead
// of doing an O(1) side-table lookup.
//
// The length prefix uses the standard unsigned LEB128 encoding via
// encoding/binary's Uvarint/PutUvarint. ion.UnsafeWriteUVarint in the
// teacher codebase encodes a different, ion-specific varint (continuation
// bit on the *last* byte, written back-to-front), so it isn't reusable
// here -- the spec fixes the wire format to standard LEB128, and the
// standard library already implements exactly that.
package buffer

import (
	"encoding/binary"

	"github.com/go-interner/interner/backend"
	"github.com/go-interner/interner/symbol"
)

// Backend is the buffer storage strategy. The zero value is ready to use.
type Backend[S symbol.Width] struct {
	buf   []byte
	count int
}

// New returns an empty Backend.
func New[S symbol.Width]() *Backend[S] {
	return &Backend[S]{}
}

// WithCapacity returns an empty Backend whose buffer is pre-sized for
// about bytes bytes of record data. n is accepted for symmetry with the
// other backends but the buffer backend has no side table to size.
func WithCapacity[S symbol.Width](n, bytes int) *Backend[S] {
	b := &Backend[S]{}
	if bytes > 0 {
		b.buf = make([]byte, 0, bytes)
	}
	return b
}

// Intern appends a varint(len)||bytes record to the buffer and returns
// its offset as a symbol.
func (b *Backend[S]) Intern(s string) (symbol.Symbol[S], error) {
	offset := uint64(len(b.buf))
	sym, ok := symbol.TryFromIndex[S](offset)
	if !ok {
		return symbol.Symbol[S]{}, backend.ErrCapacityExceeded
	}
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(s)))
	b.buf = append(b.buf, hdr[:n]...)
	b.buf = append(b.buf, s...)
	b.count++
	return sym, nil
}

// InternStatic falls back to Intern: every record lives packed in the
// same buffer here, so there is nowhere to hold a caller-owned string by
// reference.
func (b *Backend[S]) InternStatic(s string) (symbol.Symbol[S], error) {
	return b.Intern(s)
}

// decode reads the length-prefixed record starting at offset. ok is false
// if offset does not point at a decodable record within the buffer's
// current bounds.
func (b *Backend[S]) decode(offset uint64) (s string, ok bool) {
	if offset >= uint64(len(b.buf)) {
		return "", false
	}
	length, n := binary.Uvarint(b.buf[offset:])
	if n <= 0 {
		return "", false
	}
	start := offset + uint64(n)
	end := start + length
	if end > uint64(len(b.buf)) {
		return "", false
	}
	return string(b.buf[start:end]), true
}

// Resolve returns the bytes for sym, or ("", false) if sym is the zero
// Symbol or the record decoded at its offset would not lie within this
// Backend's buffer -- including arbitrary out-of-range integers a caller
// might construct by hand. An in-range offset that is not the start of a
// record is not detected: it decodes whatever bytes are there.
func (b *Backend[S]) Resolve(sym symbol.Symbol[S]) (string, bool) {
	if !sym.Valid() {
		return "", false
	}
	return b.decode(sym.ToIndex())
}

// ResolveUnchecked skips the validity checks Resolve performs. The caller
// asserts sym was produced by this Backend.
func (b *Backend[S]) ResolveUnchecked(sym symbol.Symbol[S]) string {
	offset := sym.ToIndex()
	length, n := binary.Uvarint(b.buf[offset:])
	start := offset + uint64(n)
	return string(b.buf[start : start+length])
}

// Len reports the number of records pinned so far.
func (b *Backend[S]) Len() int { return b.count }

// IsEmpty reports Len() == 0.
func (b *Backend[S]) IsEmpty() bool { return b.count == 0 }

// ShrinkToFit reallocates the buffer down to its exact used size. Safe
// because Resolve always re-decodes from the buffer's current backing
// array; no pointer into it survives between calls.
func (b *Backend[S]) ShrinkToFit() {
	if len(b.buf) < cap(b.buf) {
		buf := make([]byte, len(b.buf))
		copy(buf, b.buf)
		b.buf = buf
	}
}

// Iterator walks the buffer sequentially, decoding one record at a time.
func (b *Backend[S]) Iterator() backend.Iterator[symbol.Symbol[S]] {
	offset := 0
	end := len(b.buf)
	return backend.NewIterator(func() (symbol.Symbol[S], string, bool) {
		if offset >= end {
			var zero symbol.Symbol[S]
			return zero, "", false
		}
		length, n := binary.Uvarint(b.buf[offset:end])
		sym := symbol.MustFromIndex[S](uint64(offset))
		start := offset + n
		s := string(b.buf[start : start+int(length)])
		offset = start + int(length)
		return sym, s, true
	})
}

var _ backend.Backend[symbol.Symbol32] = (*Backend[uint32])(nil)
