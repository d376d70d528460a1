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

// Command internbench interns a corpus of newline-delimited strings and
// reports how many were distinct and how long it took. It's the library's
// only user-facing surface; the flag-based CLI style follows
// cmd/sneller/main.go in the teacher codebase.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/go-interner/interner/backend"
	"github.com/go-interner/interner/backend/buffer"
	"github.com/go-interner/interner/backend/bucket"
	"github.com/go-interner/interner/backend/strarena"
	"github.com/go-interner/interner/persist"
	"github.com/go-interner/interner/symbol"
	"github.com/go-interner/interner/symtab"
)

var (
	dashconfig string
	dashinput  string
	dashdump   string
)

func init() {
	flag.StringVar(&dashconfig, "config", "", "YAML config file describing backend/width/capacity")
	flag.StringVar(&dashinput, "input", "", "file of newline-delimited strings to intern (default stdin)")
	flag.StringVar(&dashdump, "dump", "", "file to write the interned table to (only supported for the default strarena/32-bit backend)")
}

func main() {
	flag.Parse()
	cfg, err := loadConfig(dashconfig)
	if err != nil {
		log.Fatal(err)
	}

	runID := uuid.New()
	src := io.Reader(os.Stdin)
	if dashinput != "" {
		f, err := os.Open(dashinput)
		if err != nil {
			log.Fatalf("internbench[%s]: %v", runID, err)
		}
		defer f.Close()
		src = f
	}

	start := time.Now()
	lines, distinct, dflt, err := internAll(cfg, src)
	if err != nil {
		log.Fatalf("internbench[%s]: %v", runID, err)
	}
	elapsed := time.Since(start)

	fmt.Printf("run %s: backend=%s width=%s read %d lines, %d distinct strings, in %s\n",
		runID, cfg.Backend, cfg.Width, lines, distinct, elapsed)

	if dashdump != "" {
		if dflt == nil {
			log.Fatalf("internbench[%s]: -dump only supports backend=strarena width=32 (got backend=%s width=%s)", runID, cfg.Backend, cfg.Width)
		}
		f, err := os.Create(dashdump)
		if err != nil {
			log.Fatalf("internbench[%s]: %v", runID, err)
		}
		defer f.Close()
		if err := persist.Save(f, dflt, true); err != nil {
			log.Fatalf("internbench[%s]: dumping table: %v", runID, err)
		}
	}
}

// internAll reads newline-delimited strings from r into an interner
// chosen by cfg, returning the number of lines read, the number of
// distinct strings, and -- only when cfg selects the default
// strarena/32-bit combination -- the interner itself for -dump.
func internAll(cfg config, r io.Reader) (lines, distinct int, dflt *symtab.Default, err error) {
	switch cfg.Backend {
	case "", "strarena":
		switch cfg.Width {
		case "", "32":
			in := symtab.WithCapacity(cfg.Capacity, cfg.CapacityBytes)
			lines, err = scanInto(in, r)
			return lines, in.Len(), in, err
		case "8":
			in := symtab.NewWith[symbol.Symbol8](func() *strarena.Backend[uint8] { return strarena.New[uint8]() })
			lines, err = scanInto(in, r)
			return lines, in.Len(), nil, err
		case "16":
			in := symtab.NewWith[symbol.Symbol16](func() *strarena.Backend[uint16] { return strarena.New[uint16]() })
			lines, err = scanInto(in, r)
			return lines, in.Len(), nil, err
		case "arch":
			in := symtab.NewWith[symbol.SymbolArch](func() *strarena.Backend[uint] { return strarena.New[uint]() })
			lines, err = scanInto(in, r)
			return lines, in.Len(), nil, err
		}
	case "bucket":
		in := symtab.NewWith[symbol.Symbol32](func() *bucket.Backend[uint32] { return bucket.New[uint32]() })
		lines, err = scanInto(in, r)
		return lines, in.Len(), nil, err
	case "buffer":
		in := symtab.NewWith[symbol.Symbol32](func() *buffer.Backend[uint32] { return buffer.New[uint32]() })
		lines, err = scanInto(in, r)
		return lines, in.Len(), nil, err
	}
	return 0, 0, nil, fmt.Errorf("internbench: unrecognized backend/width: %q/%q", cfg.Backend, cfg.Width)
}

func scanInto[S comparable, B backend.Backend[S]](in *symtab.Interner[S, B], r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		if _, err := in.GetOrIntern(scanner.Text()); err != nil {
			return n, err
		}
		n++
	}
	return n, scanner.Err()
}
