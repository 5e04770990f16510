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

// Package convert translates a model sheet into a semantic document (ToDocument) and back
// (ToModelSheet).
//
// Both directions are pure: the input is never mutated and an error always comes with the zero value of
// the result. Errors are *modelerr.MalformedFieldError, *modelerr.DanglingReferenceError or
// *modelerr.UnsupportedShapeError. Non-fatal findings go to the validationcollector.Collector
// found in the context.
package convert

import (
	"errors"
	"fmt"
)

var (
	errUnknownJoinPathMode = errors.New("unknown join path mode")
	errUnknownJoinType     = errors.New("unknown join type")
)

// JoinPathMode - how the table paths of the worksheet are built.
type JoinPathMode string

const (
	// JoinPathsTransitive - every table reachable from the root table gets the full ordered join path.
	JoinPathsTransitive JoinPathMode = "transitive"
	// JoinPathsDirect - every table that declares a join gets a path of that single join.
	JoinPathsDirect JoinPathMode = "direct"
)

func ParseJoinPathMode(v string) (JoinPathMode, error) {
	switch m := JoinPathMode(v); m {
	case JoinPathsTransitive, JoinPathsDirect:
		return m, nil
	case "":
		return JoinPathsTransitive, nil
	default:
		return "", fmt.Errorf("%q: %w", v, errUnknownJoinPathMode)
	}
}

type Options struct {
	JoinPaths JoinPathMode
	// Parallelism - the number of logical tables built at once. Zero or one means sequential.
	Parallelism int
}

func DefaultOptions() Options {
	return Options{
		JoinPaths:   JoinPathsTransitive,
		Parallelism: 1,
	}
}

// Converter - converts between the model sheet and the semantic document.
type Converter struct {
	opts Options
}

func NewConverter(opts Options) (*Converter, error) {
	mode, err := ParseJoinPathMode(string(opts.JoinPaths))
	if err != nil {
		return nil, fmt.Errorf("join paths: %w", err)
	}
	opts.JoinPaths = mode
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Converter{opts: opts}, nil
}

func (c *Converter) Options() Options {
	return c.opts
}
