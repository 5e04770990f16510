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
	"strings"

	"github.com/spf13/cast"

	"github.com/tssrikanth/codex2021/pkg/modelerr"
)

const (
	worksheetColumnYes = "Y"
	worksheetColumnNo  = "N"
)

// Format - converts the typed model sheet into raw rows, so that Parse(Format(m)) equals m. A synonym that
// the synonyms cell cannot hold fails with *modelerr.UnsupportedShapeError.
func Format(m ModelSheet, opts Options) (RawModelSheet, error) {
	res := RawModelSheet{
		Worksheets: make([]RawWorksheetRow, 0, len(m.Worksheets)),
		Tables:     make([]RawTableRow, 0, len(m.Tables)),
		Attributes: make([]RawAttributeRow, 0, len(m.Attributes)),
	}
	for _, ws := range m.Worksheets {
		res.Worksheets = append(res.Worksheets, RawWorksheetRow{
			WorksheetName:   ws.Name,
			Tables:          ws.Table,
			BypassRLS:       cast.ToString(ws.BypassRLS),
			ProgressiveJoin: cast.ToString(ws.ProgressiveJoin),
		})
	}
	for _, t := range m.Tables {
		row := RawTableRow{
			Table:      t.Name,
			Database:   t.Database,
			Schema:     t.Schema,
			DbTable:    t.DbTable,
			Connection: t.Connection,
		}
		if t.Join != nil {
			row.JoinName = t.Join.Name
			row.JoinsWith = t.Join.JoinsWith
			row.JoinType = t.Join.Type.String()
			row.JoinCardinality = cast.ToString(t.Join.OneToOne)
		}
		res.Tables = append(res.Tables, row)
	}
	for _, a := range m.Attributes {
		synonyms, err := joinSynonyms(a, opts.delimiter())
		if err != nil {
			return RawModelSheet{}, err
		}
		worksheetColumn := worksheetColumnNo
		if a.WorksheetColumn {
			worksheetColumn = worksheetColumnYes
		}
		res.Attributes = append(res.Attributes, RawAttributeRow{
			Table:              a.Table,
			Column:             a.Column,
			Description:        a.Description,
			ColumnType:         a.ColumnType,
			DataType:           a.DataType,
			Additive:           cast.ToString(a.Additive),
			Aggregation:        a.Aggregation,
			Hidden:             cast.ToString(a.Hidden),
			Synonyms:           synonyms,
			IndexType:          a.IndexType,
			IndexPriority:      cast.ToString(a.IndexPriority),
			FormatPattern:      a.FormatPattern,
			CurrencyType:       a.CurrencyType,
			AttributeDimension: cast.ToString(a.AttributionDimension),
			SpotIQPreference:   a.SpotIQPreference,
			CalendarType:       a.CalendarType,
			WorksheetColumn:    worksheetColumn,
		})
	}
	return res, nil
}

// joinSynonyms - joins the synonyms into the cell SplitSynonyms reads back unchanged.
func joinSynonyms(a AttributeRow, delimiter string) (string, error) {
	for _, s := range a.Synonyms {
		var reason string
		switch {
		case strings.Contains(s, delimiter):
			reason = "contains the delimiter " + delimiter
		case strings.TrimSpace(s) == "":
			reason = "is empty"
		case strings.TrimSpace(s) != s:
			reason = "has leading or trailing spaces"
		}
		if reason != "" {
			return "", modelerr.NewUnsupportedShapeError(
				a.Table, "column %q %s %q %s", a.Column, FieldSynonyms, s, reason,
			)
		}
	}
	return strings.Join(a.Synonyms, delimiter), nil
}
