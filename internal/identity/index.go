// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package identity

import "fmt"

// Index - maps identity tokens to the position of the entity in the slice it was built from.
//
// It is built once per conversion, so every reference edge is resolved with a single lookup and an
// unresolved name is always an error.
type Index struct {
	positions map[string]int
	names     []string
}

func NewIndex(capacity int) *Index {
	return &Index{
		positions: make(map[string]int, capacity),
		names:     make([]string, 0, capacity),
	}
}

// Add - registers the name and returns its position. The position is the insertion order.
func (i *Index) Add(name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if _, ok := i.positions[name]; ok {
		return 0, fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	idx := len(i.names)
	i.positions[name] = idx
	i.names = append(i.names, name)
	return idx, nil
}

// Resolve - returns the position of the name.
func (i *Index) Resolve(name string) (int, error) {
	idx, ok := i.positions[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnresolved)
	}
	return idx, nil
}

func (i *Index) Contains(name string) bool {
	_, ok := i.positions[name]
	return ok
}

// Names - returns the names in insertion order.
func (i *Index) Names() []string {
	return i.names
}

func (i *Index) Len() int {
	return len(i.names)
}
