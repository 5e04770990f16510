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

import "slices"

// Path - how the vertex is reached from the root vertex.
type Path struct {
	// Reachable - the vertex is the root or is reached through joins.
	Reachable bool
	// Joins - the ordered join names from the root. Empty for the root.
	Joins []string
}

// Paths - walks the graph breadth-first from the root and returns the path of every vertex, indexed as
// Vertexes. Every vertex gets the shortest path; ties are broken by the join input order, so the result
// does not depend on anything but the input.
func (g Graph) Paths(root int) []Path {
	paths := make([]Path, len(g.Vertexes))
	if root < 0 || root >= len(g.Vertexes) {
		return paths
	}
	paths[root] = Path{Reachable: true}
	queue := []int{root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range g.Graph[v] {
			if paths[e.To()].Reachable {
				continue
			}
			joins := slices.Clone(paths[v].Joins)
			paths[e.To()] = Path{
				Reachable: true,
				Joins:     append(joins, e.Name()),
			}
			queue = append(queue, e.To())
		}
	}
	return paths
}

// Unreachable - returns indexes of the vertexes that cannot be reached from the root.
func Unreachable(paths []Path) []int {
	var res []int
	for idx, p := range paths {
		if !p.Reachable {
			res = append(res, idx)
		}
	}
	return res
}
