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

// Package persist is the optional serialization adapter described in
// spec.md §6: the on-wire form of an interner is simply its ordered
// sequence of stored strings, each length-prefixed with a standard
// varint. Loading re-interns every string in the order it was written,
// which reproduces the original symbol assignment exactly.
//
// Compression is optional and, when enabled, uses
// github.com/klauspost/compress/zstd -- the same library the teacher
// codebase wraps in compr.Compressor/Decompressor for its own on-disk
// block format.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/go-interner/interner/symtab"
)

// Save writes in's interned strings to w in symbol-index order. If
// compress is true, the stream is zstd-compressed.
func Save(w io.Writer, in *symtab.Default, compress bool) error {
	var enc *zstd.Encoder
	out := w
	if compress {
		var err error
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("persist: creating zstd writer: %w", err)
		}
		out = enc
	}

	it := in.Iterator()
	var hdr [binary.MaxVarintLen64]byte
	for {
		_, s, ok := it.Next()
		if !ok {
			break
		}
		n := binary.PutUvarint(hdr[:], uint64(len(s)))
		if _, err := out.Write(hdr[:n]); err != nil {
			return fmt.Errorf("persist: writing length prefix: %w", err)
		}
		if _, err := io.WriteString(out, s); err != nil {
			return fmt.Errorf("persist: writing record: %w", err)
		}
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("persist: closing zstd writer: %w", err)
		}
	}
	return nil
}

// Load reconstructs an Interner by re-interning every string read from r,
// in order. If compressed is true, r is assumed to be zstd-compressed
// (the form Save(..., compress=true) produces).
func Load(r io.Reader, compressed bool) (*symtab.Default, error) {
	src := r
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("persist: creating zstd reader: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	br := bufio.NewReader(src)
	in := symtab.New()
	for {
		length, err := binary.ReadUvarint(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("persist: reading length prefix: %w", err)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("persist: reading record: %w", err)
		}
		if _, err := in.GetOrIntern(string(buf)); err != nil {
			return nil, fmt.Errorf("persist: re-interning record: %w", err)
		}
	}
	return in, nil
}
