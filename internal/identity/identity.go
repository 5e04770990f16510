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

import (
	"errors"
	"fmt"
	"strings"
)

// ColumnSeparator - separates the table and the column in a qualified column id.
const ColumnSeparator = "::"

var (
	ErrEmptyName       = errors.New("empty name")
	ErrMalformedColumn = errors.New("malformed column id")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnresolved      = errors.New("unresolved name")
)

// Table - returns the canonical identity token of the table. Surrounding whitespace is not significant,
// the case is.
func Table(name string) (string, error) {
	res := strings.TrimSpace(name)
	if res == "" {
		return "", fmt.Errorf("table: %w", ErrEmptyName)
	}
	return res, nil
}

// Column - returns the qualified column id table::column.
func Column(table, column string) (string, error) {
	t, err := Table(table)
	if err != nil {
		return "", err
	}
	c := strings.TrimSpace(column)
	if c == "" {
		return "", fmt.Errorf("column of table %q: %w", t, ErrEmptyName)
	}
	return t + ColumnSeparator + c, nil
}

// SplitColumn - splits the qualified column id into the table and the column.
func SplitColumn(id string) (table string, column string, err error) {
	table, column, ok := strings.Cut(id, ColumnSeparator)
	if !ok {
		return "", "", fmt.Errorf("%q: %w", id, ErrMalformedColumn)
	}
	if strings.TrimSpace(table) == "" || strings.TrimSpace(column) == "" {
		return "", "", fmt.Errorf("%q: %w", id, ErrMalformedColumn)
	}
	return table, column, nil
}
