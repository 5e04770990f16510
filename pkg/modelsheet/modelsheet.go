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

// Package modelsheet contains the flat, spreadsheet shaped representation of a semantic model.
//
// The model sheet has three sheets: worksheets, tables and attributes. Every cell is a string in the
// file (see RawModelSheet); Parse turns the raw rows into typed rows (ModelSheet) and fails with
// modelerr.ErrMalformedField when a boolean, numeric or enumerated cell does not parse. Format is the
// inverse of Parse.
package modelsheet

// ModelSheet - the typed tabular model.
type ModelSheet struct {
	// Worksheets - one row per table included into the worksheet. The first row references the root table.
	Worksheets []WorksheetRow
	Tables     []TableRow
	Attributes []AttributeRow
}

// WorksheetRow - includes a table into the worksheet.
type WorksheetRow struct {
	Name string
	// Table - the table included into the worksheet.
	Table           string
	BypassRLS       bool
	ProgressiveJoin bool
}

// TableRow - a logical table and its optional outgoing join.
type TableRow struct {
	Name       string
	Database   string
	Schema     string
	DbTable    string
	Connection string
	// Join - nil when the table does not join with any other table.
	Join *TableJoin
}

// TableJoin - the outgoing join of the table.
type TableJoin struct {
	Name string
	// JoinsWith - the destination table name.
	JoinsWith string
	Type      JoinType
	OneToOne  bool
}

// AttributeRow - a column of a table with its presentation metadata.
type AttributeRow struct {
	Table       string
	Column      string
	Description string
	ColumnType  string
	// DataType - the physical data type of the column.
	DataType             string
	Additive             bool
	Aggregation          string
	Hidden               bool
	Synonyms             []string
	IndexType            string
	IndexPriority        float64
	FormatPattern        string
	CurrencyType         string
	AttributionDimension bool
	SpotIQPreference     string
	CalendarType         string
	// WorksheetColumn - the column is exposed on the worksheet level as well.
	WorksheetColumn bool
}
