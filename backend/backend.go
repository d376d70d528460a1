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

// Package backend defines the storage contract shared by the three
// interned-byte storage strategies (bucket, strarena, buffer) and the
// errors they report.
package backend

import (
	"errors"
)

// ErrCapacityExceeded is returned by Intern when the backend's symbol
// width cannot represent another index. It is never produced by Resolve
// or any other read-only operation.
var ErrCapacityExceeded = errors.New("backend: symbol capacity exceeded")

// Backend is the capability set every storage strategy implements. S is
// the symbol type the backend issues; it is fixed by the backend's width,
// not by the caller.
type Backend[S comparable] interface {
	// Intern pins s, returning a fresh symbol. It never deduplicates on
	// its own -- that's the interner's job, one layer up -- so calling
	// Intern twice with equal strings returns two distinct symbols.
	Intern(s string) (S, error)

	// InternStatic is like Intern but promises the backend that s will
	// outlive the backend itself, which lets some backends skip a copy.
	// Backends that cannot take advantage of the promise fall back to
	// Intern.
	InternStatic(s string) (S, error)

	// Resolve returns the bytes associated with sym, or ("", false) if
	// sym was not produced by this backend instance.
	Resolve(sym S) (string, bool)

	// ResolveUnchecked is Resolve without the bounds/validity check. The
	// caller is asserting sym came from this backend and the backend is
	// still alive.
	ResolveUnchecked(sym S) string

	// ShrinkToFit releases any slack capacity it reasonably can without
	// invalidating symbols already issued.
	ShrinkToFit()

	// Len is the number of records pinned so far.
	Len() int

	// IsEmpty reports Len() == 0.
	IsEmpty() bool

	// Iterator walks every pinned record exactly once, in the order
	// symbols were issued.
	Iterator() Iterator[S]
}

// Iterator yields (symbol, bytes) pairs in symbol-index order. It follows
// the same Next-driven shape as bufio.Scanner and database/sql.Rows: call
// Next until its bool result is false; every call that reports true also
// returns that record's symbol and string.
//
// An Iterator snapshots the backend's length at creation time and never
// reads past it, so mutating the backend while iterating does not panic
// or corrupt the iterator -- it simply means the iterator may miss
// records added after it was created, per the documented "mutation
// during iteration invalidates the iterator" contract.
type Iterator[S comparable] struct {
	next func() (S, string, bool)
}

// NewIterator builds an Iterator around a next function. Backend
// implementations use this to adapt their own internal cursors.
func NewIterator[S comparable](next func() (S, string, bool)) Iterator[S] {
	return Iterator[S]{next: next}
}

// Next advances the iterator. It returns false once every pinned record
// has been yielded.
func (it *Iterator[S]) Next() (S, string, bool) {
	return it.next()
}
