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
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/tssrikanth/codex2021/pkg/modelerr"
)

const DefaultSynonymDelimiter = ","

var (
	errNotFinite         = errors.New("value is not a finite number")
	errJoinWithoutTarget = errors.New("join attributes are set but joins_with is empty")
	errEmptyJoinName     = errors.New("join name is required when joins_with is set")
)

// Options - parse and format options of the model sheet.
type Options struct {
	// SynonymDelimiter - separates synonyms in the synonyms cell.
	SynonymDelimiter string
}

func DefaultOptions() Options {
	return Options{
		SynonymDelimiter: DefaultSynonymDelimiter,
	}
}

func (o Options) delimiter() string {
	if o.SynonymDelimiter == "" {
		return DefaultSynonymDelimiter
	}
	return o.SynonymDelimiter
}

// Parse - converts the raw model sheet into the typed one. The first cell that does not parse aborts
// the parsing with *modelerr.MalformedFieldError.
func Parse(raw RawModelSheet, opts Options) (ModelSheet, error) {
	res := ModelSheet{
		Worksheets: make([]WorksheetRow, 0, len(raw.Worksheets)),
		Tables:     make([]TableRow, 0, len(raw.Tables)),
		Attributes: make([]AttributeRow, 0, len(raw.Attributes)),
	}
	for _, r := range raw.Worksheets {
		ws, err := parseWorksheetRow(r)
		if err != nil {
			return ModelSheet{}, err
		}
		res.Worksheets = append(res.Worksheets, ws)
	}
	for _, r := range raw.Tables {
		t, err := parseTableRow(r)
		if err != nil {
			return ModelSheet{}, err
		}
		res.Tables = append(res.Tables, t)
	}
	for _, r := range raw.Attributes {
		a, err := parseAttributeRow(r, opts)
		if err != nil {
			return ModelSheet{}, err
		}
		res.Attributes = append(res.Attributes, a)
	}
	return res, nil
}

func parseWorksheetRow(r RawWorksheetRow) (WorksheetRow, error) {
	name := strings.TrimSpace(r.WorksheetName)
	bypassRLS, err := ParseBool(r.BypassRLS)
	if err != nil {
		return WorksheetRow{}, modelerr.NewMalformedFieldError(r.Tables, "", FieldBypassRLS, r.BypassRLS, err)
	}
	progressiveJoin, err := ParseBool(r.ProgressiveJoin)
	if err != nil {
		return WorksheetRow{}, modelerr.NewMalformedFieldError(r.Tables, "", FieldProgressiveJoin, r.ProgressiveJoin, err)
	}
	return WorksheetRow{
		Name:            name,
		Table:           strings.TrimSpace(r.Tables),
		BypassRLS:       bypassRLS,
		ProgressiveJoin: progressiveJoin,
	}, nil
}

func parseTableRow(r RawTableRow) (TableRow, error) {
	table := strings.TrimSpace(r.Table)
	joinsWith := strings.TrimSpace(r.JoinsWith)
	joinName := strings.TrimSpace(r.JoinName)
	res := TableRow{
		Name:       table,
		Database:   r.Database,
		Schema:     r.Schema,
		DbTable:    r.DbTable,
		Connection: r.Connection,
	}
	if joinsWith == "" {
		if joinName != "" || strings.TrimSpace(r.JoinType) != "" || strings.TrimSpace(r.JoinCardinality) != "" {
			return TableRow{}, modelerr.NewMalformedFieldError(table, "", FieldJoinsWith, r.JoinsWith, errJoinWithoutTarget)
		}
		return res, nil
	}
	if joinName == "" {
		return TableRow{}, modelerr.NewMalformedFieldError(table, "", FieldJoinName, r.JoinName, errEmptyJoinName)
	}
	joinType, err := ParseJoinType(r.JoinType)
	if err != nil {
		return TableRow{}, modelerr.NewMalformedFieldError(table, "", FieldJoinType, r.JoinType, err)
	}
	oneToOne, err := ParseBool(r.JoinCardinality)
	if err != nil {
		return TableRow{}, modelerr.NewMalformedFieldError(table, "", FieldJoinCardinality, r.JoinCardinality, err)
	}
	res.Join = &TableJoin{
		Name:      joinName,
		JoinsWith: joinsWith,
		Type:      joinType,
		OneToOne:  oneToOne,
	}
	return res, nil
}

func parseAttributeRow(r RawAttributeRow, opts Options) (AttributeRow, error) {
	table := strings.TrimSpace(r.Table)
	column := strings.TrimSpace(r.Column)
	malformed := func(field, value string, err error) error {
		return modelerr.NewMalformedFieldError(table, column, field, value, err)
	}

	additive, err := ParseBool(r.Additive)
	if err != nil {
		return AttributeRow{}, malformed(FieldAdditive, r.Additive, err)
	}
	hidden, err := ParseBool(r.Hidden)
	if err != nil {
		return AttributeRow{}, malformed(FieldHidden, r.Hidden, err)
	}
	indexPriority, err := ParseFloat(r.IndexPriority)
	if err != nil {
		return AttributeRow{}, malformed(FieldIndexPriority, r.IndexPriority, err)
	}
	attributionDimension, err := ParseBool(r.AttributeDimension)
	if err != nil {
		return AttributeRow{}, malformed(FieldAttributeDimension, r.AttributeDimension, err)
	}
	worksheetColumn, err := ParseBool(r.WorksheetColumn)
	if err != nil {
		return AttributeRow{}, malformed(FieldWorksheetColumn, r.WorksheetColumn, err)
	}

	return AttributeRow{
		Table:                table,
		Column:               column,
		Description:          r.Description,
		ColumnType:           r.ColumnType,
		DataType:             r.DataType,
		Additive:             additive,
		Aggregation:          r.Aggregation,
		Hidden:               hidden,
		Synonyms:             SplitSynonyms(r.Synonyms, opts.delimiter()),
		IndexType:            r.IndexType,
		IndexPriority:        indexPriority,
		FormatPattern:        r.FormatPattern,
		CurrencyType:         strings.TrimSpace(r.CurrencyType),
		AttributionDimension: attributionDimension,
		SpotIQPreference:     r.SpotIQPreference,
		CalendarType:         r.CalendarType,
		WorksheetColumn:      worksheetColumn,
	}, nil
}

// ParseBool - parses a flag cell. Empty is false, Y/N and yes/no are accepted in any case in addition
// to the values accepted by cast.ToBoolE.
func ParseBool(v string) (bool, error) {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "":
		return false, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return cast.ToBoolE(s)
}

// ParseFloat - parses a numeric cell. Empty is zero.
func ParseFloat(v string) (float64, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, nil
	}
	res, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0, errNotFinite
	}
	return res, nil
}

// SplitSynonyms - splits the synonyms cell. Synonyms are trimmed and empty ones are dropped.
func SplitSynonyms(v, delimiter string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var res []string
	for _, s := range strings.Split(v, delimiter) {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
