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

package modelsheet

import (
	"errors"
	"fmt"
	"strings"
)

var errUnknownJoinType = errors.New("unknown join type")

type JoinType int

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeftOuter
	JoinTypeRightOuter
	JoinTypeOuter
)

// ParseJoinType - parses the join type cell. An empty cell is an inner join.
func ParseJoinType(v string) (JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "inner":
		return JoinTypeInner, nil
	case "left", "left_outer", "left outer":
		return JoinTypeLeftOuter, nil
	case "right", "right_outer", "right outer":
		return JoinTypeRightOuter, nil
	case "outer", "full", "full_outer", "full outer":
		return JoinTypeOuter, nil
	default:
		return 0, fmt.Errorf("%q: %w", v, errUnknownJoinType)
	}
}

func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "inner"
	case JoinTypeLeftOuter:
		return "left_outer"
	case JoinTypeRightOuter:
		return "right_outer"
	case JoinTypeOuter:
		return "outer"
	default:
		return fmt.Sprintf("JoinType(%d)", int(jt))
	}
}
