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
	"fmt"
	"maps"
	"slices"
	"strings"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	MetaKeyWorksheetName = "WorksheetName"
	MetaKeyTableName     = "TableName"
	MetaKeyColumnName    = "ColumnName"
	MetaKeyJoinName      = "JoinName"
)

// Warning - a non-fatal finding of the conversion.
type Warning struct {
	Msg      string         `json:"msg,omitempty"`
	Severity Severity       `json:"severity,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

func NewWarning() *Warning {
	return &Warning{
		Severity: SeverityWarning,
		Meta:     make(map[string]any),
	}
}

func (w *Warning) SetMsg(msg string) *Warning {
	w.Msg = msg
	return w
}

func (w *Warning) SetMsgf(msg string, args ...any) *Warning {
	w.Msg = fmt.Sprintf(msg, args...)
	return w
}

func (w *Warning) SetSeverity(severity Severity) *Warning {
	w.Severity = severity
	return w
}

func (w *Warning) AddMeta(key string, value any) *Warning {
	w.Meta[key] = value
	return w
}

// MetaString - renders the meta sorted by key.
func (w *Warning) MetaString() string {
	keys := slices.Sorted(maps.Keys(w.Meta))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, w.Meta[k]))
	}
	return strings.Join(parts, " ")
}

func (w *Warning) String() string {
	meta := w.MetaString()
	if meta == "" {
		return fmt.Sprintf("%s: %s", w.Severity, w.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Severity, w.Msg, meta)
}
