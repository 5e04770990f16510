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

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"

	"github.com/tssrikanth/codex2021/internal/validationcollector"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

const descriptionWidth = 40

var errUnknownFormat = errors.New("unknown output format")

type OutputFormat string

const (
	FormatNameJson OutputFormat = "json"
	FormatNameText OutputFormat = "text"
)

func (m OutputFormat) Validate() error {
	switch m {
	case FormatNameJson, FormatNameText:
		return nil
	default:
		return fmt.Errorf("format '%s': %w", m, errUnknownFormat)
	}
}

type TableSummary struct {
	Name         string   `json:"name"`
	DB           string   `json:"db,omitempty"`
	Schema       string   `json:"schema,omitempty"`
	DbTable      string   `json:"db_table,omitempty"`
	Connection   string   `json:"connection,omitempty"`
	ColumnsCount int      `json:"columns_count"`
	JoinPath     []string `json:"join_path,omitempty"`
}

type ColumnSummary struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	ColumnType  string `json:"column_type,omitempty"`
	Aggregation string `json:"aggregation,omitempty"`
}

// Summary - the document overview printed by inspect.
type Summary struct {
	Worksheet        string                         `json:"worksheet"`
	GUID             string                         `json:"guid,omitempty"`
	Properties       tml.QueryProperties            `json:"properties"`
	Tables           []TableSummary                 `json:"tables,omitempty"`
	Joins            []tml.Join                     `json:"joins,omitempty"`
	WorksheetColumns []ColumnSummary                `json:"worksheet_columns,omitempty"`
	Warnings         []*validationcollector.Warning `json:"warnings,omitempty"`
}

func NewSummary(doc tml.Document, warnings []*validationcollector.Warning) Summary {
	paths := make(map[string][]string, len(doc.Worksheet.TablePaths))
	for _, p := range doc.Worksheet.TablePaths {
		for _, jp := range p.JoinPath {
			paths[p.Table] = append(paths[p.Table], jp.Join...)
		}
	}
	res := Summary{
		Worksheet:  doc.Worksheet.Name,
		GUID:       doc.GUID,
		Properties: doc.Worksheet.Properties,
		Joins:      doc.Worksheet.Joins,
		Warnings:   warnings,
	}
	for _, t := range doc.Tables {
		res.Tables = append(res.Tables, TableSummary{
			Name:         t.Name,
			DB:           t.DB,
			Schema:       t.Schema,
			DbTable:      t.DbTable,
			Connection:   t.Connection.Name,
			ColumnsCount: len(t.Columns),
			JoinPath:     paths[t.Name],
		})
	}
	for _, c := range doc.Worksheet.Columns {
		res.WorksheetColumns = append(res.WorksheetColumns, ColumnSummary{
			ID:          c.ColumnID,
			Description: c.Description,
			ColumnType:  c.Properties.ColumnType,
			Aggregation: c.Properties.Aggregation,
		})
	}
	return res
}

// Render - writes the summary in the requested format.
func Render(w io.Writer, format OutputFormat, s Summary) error {
	if err := format.Validate(); err != nil {
		return err
	}
	switch format {
	case FormatNameJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return renderText(w, s)
	}
}

// RenderWarnings - writes only the warnings. Nothing is written in text format when there are none.
func RenderWarnings(w io.Writer, format OutputFormat, warnings []*validationcollector.Warning) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if format == FormatNameJson {
		if warnings == nil {
			warnings = []*validationcollector.Warning{}
		}
		return json.NewEncoder(w).Encode(warnings)
	}
	if len(warnings) == 0 {
		return nil
	}
	return renderWarningsText(w, warnings)
}

func renderText(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "Worksheet: %s\nGUID: %s\nBypass RLS: %s\nProgressive join: %s\n\n",
		s.Worksheet, s.GUID,
		cast.ToString(s.Properties.IsBypassRLS), cast.ToString(s.Properties.JoinProgressive),
	); err != nil {
		return err
	}

	tables := tablewriter.NewWriter(w)
	tables.SetHeader([]string{"Table", "Database", "Schema", "Db table", "Connection", "Columns", "Join path"})
	for _, t := range s.Tables {
		tables.Append([]string{
			t.Name, t.DB, t.Schema, t.DbTable, t.Connection,
			cast.ToString(t.ColumnsCount), strings.Join(t.JoinPath, " -> "),
		})
	}
	tables.Render()

	if len(s.Joins) > 0 {
		joins := tablewriter.NewWriter(w)
		joins.SetHeader([]string{"Join", "Source", "Destination", "Type", "One to one"})
		for _, j := range s.Joins {
			joins.Append([]string{j.Name, j.Source, j.Destination, string(j.Type), cast.ToString(j.IsOneToOne)})
		}
		joins.Render()
	}

	if len(s.WorksheetColumns) > 0 {
		columns := tablewriter.NewWriter(w)
		columns.SetAutoWrapText(false)
		columns.SetRowLine(true)
		columns.SetHeader([]string{"Column id", "Description", "Column type", "Aggregation"})
		for _, c := range s.WorksheetColumns {
			columns.Append([]string{c.ID, WrapString(c.Description, descriptionWidth), c.ColumnType, c.Aggregation})
		}
		columns.Render()
	}

	if len(s.Warnings) > 0 {
		return renderWarningsText(w, s.Warnings)
	}
	return nil
}

func renderWarningsText(w io.Writer, warnings []*validationcollector.Warning) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Severity", "Message", "Meta"})
	for _, warn := range warnings {
		table.Append([]string{string(warn.Severity), WrapString(warn.Msg, descriptionWidth), warn.MetaString()})
	}
	table.Render()
	return nil
}

// WrapString - wraps v by words. Words longer than maxLength are split.
func WrapString(v string, maxLength int) string {
	if maxLength <= 0 {
		return v
	}
	strs := strings.Split(wordwrap.WrapString(v, uint(maxLength)), "\n")
	res := make([]string, 0, len(strs))
	for _, s := range strs {
		for len(s) > maxLength {
			res = append(res, s[:maxLength])
			s = s[maxLength:]
		}
		res = append(res, s)
	}
	return strings.Join(res, "\n")
}
