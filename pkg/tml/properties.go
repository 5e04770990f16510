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

package tml

import "slices"

type JoinType string

const (
	JoinTypeInner      JoinType = "INNER"
	JoinTypeLeftOuter  JoinType = "LEFT_OUTER"
	JoinTypeRightOuter JoinType = "RIGHT_OUTER"
	JoinTypeOuter      JoinType = "OUTER"
)

func (jt JoinType) Valid() bool {
	switch jt {
	case JoinTypeInner, JoinTypeLeftOuter, JoinTypeRightOuter, JoinTypeOuter:
		return true
	}
	return false
}

// ColumnProperties - aggregation, formatting, indexing, visibility and currency/calendar settings
// of a column.
type ColumnProperties struct {
	ColumnType             string          `yaml:"column_type,omitempty" json:"column_type,omitempty"`
	IsAdditive             bool            `yaml:"is_additive,omitempty" json:"is_additive,omitempty"`
	Aggregation            string          `yaml:"aggregation,omitempty" json:"aggregation,omitempty"`
	IsHidden               bool            `yaml:"is_hidden,omitempty" json:"is_hidden,omitempty"`
	Synonyms               []string        `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	IndexType              string          `yaml:"index_type,omitempty" json:"index_type,omitempty"`
	IndexPriority          float64         `yaml:"index_priority,omitempty" json:"index_priority,omitempty"`
	FormatPattern          string          `yaml:"format_pattern,omitempty" json:"format_pattern,omitempty"`
	CurrencyType           *CurrencyFormat `yaml:"currency_type,omitempty" json:"currency_type,omitempty"`
	IsAttributionDimension bool            `yaml:"is_attribution_dimension,omitempty" json:"is_attribution_dimension,omitempty"`
	SpotIQPreference       string          `yaml:"spotiq_preference,omitempty" json:"spotiq_preference,omitempty"`
	Calendar               string          `yaml:"calendar,omitempty" json:"calendar,omitempty"`
}

// CurrencyFormat - the currency is taken from the referenced column.
type CurrencyFormat struct {
	Column string `yaml:"column" json:"column"`
}

// Equal - reports whether both property sets are the same. A nil and an empty synonym list are equal.
func (p ColumnProperties) Equal(other ColumnProperties) bool {
	if !slices.Equal(p.Synonyms, other.Synonyms) {
		return false
	}
	if (p.CurrencyType == nil) != (other.CurrencyType == nil) {
		return false
	}
	if p.CurrencyType != nil && *p.CurrencyType != *other.CurrencyType {
		return false
	}
	return p.ColumnType == other.ColumnType &&
		p.IsAdditive == other.IsAdditive &&
		p.Aggregation == other.Aggregation &&
		p.IsHidden == other.IsHidden &&
		p.IndexType == other.IndexType &&
		p.IndexPriority == other.IndexPriority &&
		p.FormatPattern == other.FormatPattern &&
		p.IsAttributionDimension == other.IsAttributionDimension &&
		p.SpotIQPreference == other.SpotIQPreference &&
		p.Calendar == other.Calendar
}
