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

package joingraph

// Join - a named join between two tables referenced by name.
type Join struct {
	Name        string
	Source      string
	Destination string
}

// Edge - a directed join edge from the source table to the destination table.
type Edge struct {
	// id - the sequence number of the join in the input.
	id int
	// name - the join name.
	name string
	// from - the index of the source table in the Graph.
	from int
	// to - the index of the destination table in the Graph.
	to int
}

func NewEdge(id int, name string, from, to int) Edge {
	return Edge{
		id:   id,
		name: name,
		from: from,
		to:   to,
	}
}

// ID - returns the sequence number of the join.
func (e Edge) ID() int {
	return e.id
}

// Name - returns the join name.
func (e Edge) Name() string {
	return e.name
}

// From - returns the index of the source table.
func (e Edge) From() int {
	return e.from
}

// To - returns the index of the destination table.
func (e Edge) To() int {
	return e.to
}
