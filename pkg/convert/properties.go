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

package convert

import (
	"slices"

	"github.com/tssrikanth/codex2021/pkg/modelsheet"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

var (
	documentJoinTypes = map[modelsheet.JoinType]tml.JoinType{
		modelsheet.JoinTypeInner:      tml.JoinTypeInner,
		modelsheet.JoinTypeLeftOuter:  tml.JoinTypeLeftOuter,
		modelsheet.JoinTypeRightOuter: tml.JoinTypeRightOuter,
		modelsheet.JoinTypeOuter:      tml.JoinTypeOuter,
	}
	sheetJoinTypes = map[tml.JoinType]modelsheet.JoinType{
		tml.JoinTypeInner:      modelsheet.JoinTypeInner,
		tml.JoinTypeLeftOuter:  modelsheet.JoinTypeLeftOuter,
		tml.JoinTypeRightOuter: modelsheet.JoinTypeRightOuter,
		tml.JoinTypeOuter:      modelsheet.JoinTypeOuter,
	}
)

func columnProperties(a modelsheet.AttributeRow) tml.ColumnProperties {
	var currency *tml.CurrencyFormat
	if a.CurrencyType != "" {
		currency = &tml.CurrencyFormat{Column: a.CurrencyType}
	}
	return tml.ColumnProperties{
		ColumnType:             a.ColumnType,
		IsAdditive:             a.Additive,
		Aggregation:            a.Aggregation,
		IsHidden:               a.Hidden,
		Synonyms:               slices.Clone(a.Synonyms),
		IndexType:              a.IndexType,
		IndexPriority:          a.IndexPriority,
		FormatPattern:          a.FormatPattern,
		CurrencyType:           currency,
		IsAttributionDimension: a.AttributionDimension,
		SpotIQPreference:       a.SpotIQPreference,
		Calendar:               a.CalendarType,
	}
}

func attributeRow(table string, c tml.LogicalColumn, exposed bool) modelsheet.AttributeRow {
	p := c.Properties
	var currency string
	if p.CurrencyType != nil {
		currency = p.CurrencyType.Column
	}
	return modelsheet.AttributeRow{
		Table:                table,
		Column:               c.Name,
		Description:          c.Description,
		ColumnType:           p.ColumnType,
		DataType:             c.DbColumnProperties.DataType,
		Additive:             p.IsAdditive,
		Aggregation:          p.Aggregation,
		Hidden:               p.IsHidden,
		Synonyms:             slices.Clone(p.Synonyms),
		IndexType:            p.IndexType,
		IndexPriority:        p.IndexPriority,
		FormatPattern:        p.FormatPattern,
		CurrencyType:         currency,
		AttributionDimension: p.IsAttributionDimension,
		SpotIQPreference:     p.SpotIQPreference,
		CalendarType:         p.Calendar,
		WorksheetColumn:      exposed,
	}
}
