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

package validationcollector

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

type contextKey struct{}

var collectorKey = contextKey{}

// WithCollector adds a Collector to the context, allowing it to be retrieved later.
func WithCollector(ctx context.Context, vc *Collector) context.Context {
	return context.WithValue(ctx, collectorKey, vc)
}

// WithMeta returns a context with a child Collector that adds `meta` to its context.
func WithMeta(ctx context.Context, pairs ...any) context.Context {
	return WithCollector(ctx, FromContext(ctx).WithMeta(pairs...))
}

// FromContext returns the Collector from the context. A context without a collector gets a fresh one,
// so warnings of unrelated conversions never mix.
func FromContext(ctx context.Context) *Collector {
	if vc, ok := ctx.Value(collectorKey).(*Collector); ok {
		return vc
	}
	return NewCollector()
}

// Collector gathers warnings, layering on context metadata.
// You can fork it with WithMeta, but all forks write back to the same root.
type Collector struct {
	// parent - nil on the root.
	parent *Collector
	// warnings - stored only on the root.
	warnings []*Warning
	mu       sync.Mutex
	meta     map[string]any
}

// NewCollector creates a root collector with empty meta.
func NewCollector() *Collector {
	return &Collector{
		meta: make(map[string]any),
	}
}

func metaFromPairs(pairs ...any) map[string]any {
	if len(pairs)%2 != 0 {
		panic("pairs must have pairs")
	}
	meta := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("key should be a string, got %T", pairs[i]))
		}
		meta[key] = pairs[i+1]
	}
	return meta
}

// WithMeta returns a child collector that adds the key-value pairs to every warning.
func (vc *Collector) WithMeta(pairs ...any) *Collector {
	added := metaFromPairs(pairs...)
	merged := make(map[string]any, len(vc.meta)+len(added))
	maps.Copy(merged, vc.meta)
	maps.Copy(merged, added)
	return &Collector{
		parent: vc.Root(),
		meta:   merged,
	}
}

// Add enriches the warnings with this collector's metadata, then appends them to the root.
func (vc *Collector) Add(warnings ...*Warning) {
	root := vc.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	for _, w := range warnings {
		for k, v := range vc.meta {
			if _, ok := w.Meta[k]; !ok {
				w.AddMeta(k, v)
			}
		}
		root.warnings = append(root.warnings, w)
	}
}

// Warnings returns a copy of all warnings collected in the root.
func (vc *Collector) Warnings() []*Warning {
	root := vc.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return slices.Clone(root.warnings)
}

func (vc *Collector) HasWarnings() bool {
	return vc.Len() > 0
}

func (vc *Collector) Len() int {
	root := vc.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return len(root.warnings)
}

// Root walks up to the root collector.
func (vc *Collector) Root() *Collector {
	if vc.parent == nil {
		return vc
	}
	return vc.parent.Root()
}

func (vc *Collector) Meta() map[string]any {
	return maps.Clone(vc.meta)
}
