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

// Package symbol defines the small, copyable identifiers that backends and
// interners hand out in place of interned strings.
package symbol

// Width is the set of unsigned integer types a Symbol can be built on.
// The backend that produces a symbol picks the width; an interner just
// inherits whatever width its backend uses.
type Width interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Symbol is an opaque, comparable handle for an interned string. A width-T
// Symbol can represent every index in [0, MaxIndex[T]()] -- the full range
// T can hold -- so validity can't be encoded by reserving a bit pattern of
// raw the way a nonzero-encoded index would (that would cost the width's
// top value, capping an 8-bit symbol at 255 distinct strings instead of the
// 256 its width should provide). Instead validity is a separate bool field;
// the zero value of Symbol[T] has valid == false regardless of raw, so it
// is still always invalid without needing to steal an index from T's range.
//
// Two symbols compare equal with == iff they were built from the same
// index. Symbols from different interners (even of the same width) are
// not meaningfully comparable; nothing prevents the comparison, but the
// result carries no guarantee.
type Symbol[T Width] struct {
	raw   T
	valid bool
}

// Zero is the always-invalid Symbol, useful as a sentinel return value.
var Zero = func() (z Symbol[uint32]) { return }()

// TryFromIndex builds a Symbol from a non-negative index. It fails (returns
// ok=false) iff n doesn't fit in the symbol's width; it never panics and
// never wraps silently.
func TryFromIndex[T Width](n uint64) (sym Symbol[T], ok bool) {
	max := uint64(^T(0))
	if n > max {
		return Symbol[T]{}, false
	}
	return Symbol[T]{raw: T(n), valid: true}, true
}

// MustFromIndex is TryFromIndex but panics on overflow. Intended for call
// sites that have already validated the index is in range (e.g. a backend
// converting its own freshly assigned ordinal).
func MustFromIndex[T Width](n uint64) Symbol[T] {
	sym, ok := TryFromIndex[T](n)
	if !ok {
		panic("symbol: index out of range for width")
	}
	return sym
}

// ToIndex recovers the index a Symbol was built from. Total: every Symbol
// value, including the zero value, maps to some index, but callers should
// check Valid before trusting the result for the zero value.
func (s Symbol[T]) ToIndex() uint64 {
	return uint64(s.raw)
}

// Valid reports whether s was produced by TryFromIndex/MustFromIndex,
// as opposed to being a zero value.
func (s Symbol[T]) Valid() bool {
	return s.valid
}

// Less orders symbols by index. Mostly useful for deterministic test
// output and debugging; interners themselves never need to sort symbols.
func (s Symbol[T]) Less(o Symbol[T]) bool {
	return s.raw < o.raw
}

// Hash returns a value suitable for using a Symbol as a map key in code
// that cannot use Symbol itself as the key type (e.g. across an interface
// boundary that only deals in uint64).
func (s Symbol[T]) Hash() uint64 {
	return uint64(s.raw)
}

// Symbol8, Symbol16, Symbol32 and SymbolArch are the four widths spec'd
// out for callers to pick from. Symbol32 is the default: it covers just
// over four billion distinct strings while remaining register-sized.
type (
	Symbol8    = Symbol[uint8]
	Symbol16   = Symbol[uint16]
	Symbol32   = Symbol[uint32]
	SymbolArch = Symbol[uint]
)

// MaxIndex returns the largest index representable by width T. A width-T
// Symbol can hold any index in [0, MaxIndex[T]()], i.e. MaxIndex[T]()+1
// distinct strings.
func MaxIndex[T Width]() uint64 {
	return uint64(^T(0))
}
