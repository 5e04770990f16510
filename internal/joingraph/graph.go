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

import (
	"errors"
	"fmt"

	"github.com/tssrikanth/codex2021/internal/identity"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrDuplicateJoin = errors.New("duplicate join name")
)

// Graph - the directed join graph of the worksheet tables.
type Graph struct {
	// Vertexes - table names.
	//
	// The index of the table in the slice is the index of the table in the Graph.
	Vertexes []string
	// Graph - outgoing edges of every vertex in the input order of the joins.
	Graph [][]Edge
	tables *identity.Index
}

// NewGraph - creates a new Graph instance.
//
// Every join source and destination must be one of the tables, and join names must be unique.
func NewGraph(tables []string, joins []Join) (Graph, error) {
	index := identity.NewIndex(len(tables))
	for _, t := range tables {
		if _, err := index.Add(t); err != nil {
			return Graph{}, fmt.Errorf("register table: %w", err)
		}
	}

	names := identity.NewIndex(len(joins))
	graph := make([][]Edge, len(tables))
	for id, j := range joins {
		if _, err := names.Add(j.Name); err != nil {
			return Graph{}, fmt.Errorf("join %q: %w", j.Name, ErrDuplicateJoin)
		}
		from, err := index.Resolve(j.Source)
		if err != nil {
			return Graph{}, fmt.Errorf("join %q source %q: %w", j.Name, j.Source, ErrTableNotFound)
		}
		to, err := index.Resolve(j.Destination)
		if err != nil {
			return Graph{}, fmt.Errorf("join %q destination %q: %w", j.Name, j.Destination, ErrTableNotFound)
		}
		graph[from] = append(graph[from], NewEdge(id, j.Name, from, to))
	}

	return Graph{
		Vertexes: tables,
		Graph:    graph,
		tables:   index,
	}, nil
}

// Index - returns the index of the table in the Graph.
func (g Graph) Index(table string) (int, error) {
	idx, err := g.tables.Resolve(table)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", table, ErrTableNotFound)
	}
	return idx, nil
}
