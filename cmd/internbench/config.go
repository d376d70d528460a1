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

package main

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// config is decoded from a -config YAML file via sigs.k8s.io/yaml, which
// round-trips YAML through encoding/json -- hence the json struct tags.
type config struct {
	// Backend selects the storage strategy: "strarena" (default),
	// "bucket" or "buffer".
	Backend string `json:"backend"`
	// Width selects the symbol width: "8", "16", "32" (default) or
	// "arch". It applies to the strarena backend only; bucket and buffer
	// always use 32-bit symbols.
	Width string `json:"width"`
	// Capacity and CapacityBytes are advisory pre-sizing hints, mirrored
	// from symtab.WithCapacity. They are applied only to the default
	// strarena/32-bit combination and ignored otherwise.
	Capacity      int `json:"capacity"`
	CapacityBytes int `json:"capacityBytes"`
}

func defaultConfig() config {
	return config{Backend: "strarena", Width: "32"}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("internbench: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("internbench: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
