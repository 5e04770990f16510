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

// Package tml contains the hierarchical semantic document: one worksheet and one logical table per
// source table. Entities reference each other by name (Identity), never by pointer.
package tml

// Document - the semantic document of a single worksheet.
type Document struct {
	// GUID - stable identifier of the document derived from the worksheet name.
	GUID      string         `yaml:"guid,omitempty" json:"guid,omitempty"`
	Worksheet Worksheet      `yaml:"worksheet" json:"worksheet"`
	Tables    []LogicalTable `yaml:"tables,omitempty" json:"tables,omitempty"`
}

// Table - finds the logical table by name.
func (d *Document) Table(name string) (LogicalTable, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return LogicalTable{}, false
}

// Identity - a reference to an entity by name.
type Identity struct {
	Name string `yaml:"name" json:"name"`
}

type Worksheet struct {
	Name string `yaml:"name" json:"name"`
	// Tables - the tables included into the worksheet. The first one is the root table.
	Tables     []Identity        `yaml:"tables,omitempty" json:"tables,omitempty"`
	Joins      []Join            `yaml:"joins,omitempty" json:"joins,omitempty"`
	TablePaths []TablePath       `yaml:"table_paths,omitempty" json:"table_paths,omitempty"`
	Columns    []WorksheetColumn `yaml:"worksheet_columns,omitempty" json:"worksheet_columns,omitempty"`
	Properties QueryProperties   `yaml:"properties" json:"properties"`
}

type Join struct {
	Name        string   `yaml:"name" json:"name"`
	Source      string   `yaml:"source" json:"source"`
	Destination string   `yaml:"destination" json:"destination"`
	Type        JoinType `yaml:"type" json:"type"`
	IsOneToOne  bool     `yaml:"is_one_to_one" json:"is_one_to_one"`
}

// TablePath - how the table is reached from the root table of the worksheet.
type TablePath struct {
	ID    string `yaml:"id" json:"id"`
	Table string `yaml:"table" json:"table"`
	// JoinPath - empty for the root table and for tables that are not reached through joins.
	JoinPath []JoinPath `yaml:"join_path,omitempty" json:"join_path,omitempty"`
}

// JoinPath - ordered join names from the root table.
type JoinPath struct {
	Join []string `yaml:"join" json:"join"`
}

type WorksheetColumn struct {
	Name string `yaml:"name" json:"name"`
	// ColumnID - qualified column id table::column.
	ColumnID    string           `yaml:"column_id" json:"column_id"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Properties  ColumnProperties `yaml:"properties" json:"properties"`
}

type QueryProperties struct {
	IsBypassRLS     bool `yaml:"is_bypass_rls" json:"is_bypass_rls"`
	JoinProgressive bool `yaml:"join_progressive" json:"join_progressive"`
}

type LogicalTable struct {
	Name       string          `yaml:"name" json:"name"`
	DB         string          `yaml:"db,omitempty" json:"db,omitempty"`
	Schema     string          `yaml:"schema,omitempty" json:"schema,omitempty"`
	DbTable    string          `yaml:"db_table,omitempty" json:"db_table,omitempty"`
	Connection Identity        `yaml:"connection" json:"connection"`
	Columns    []LogicalColumn `yaml:"columns,omitempty" json:"columns,omitempty"`
	// JoinsWith - outgoing relations of the table.
	JoinsWith []Relation `yaml:"joins_with,omitempty" json:"joins_with,omitempty"`
}

type LogicalColumn struct {
	Name               string             `yaml:"name" json:"name"`
	DbColumnName       string             `yaml:"db_column_name" json:"db_column_name"`
	Description        string             `yaml:"description,omitempty" json:"description,omitempty"`
	Properties         ColumnProperties   `yaml:"properties" json:"properties"`
	DbColumnProperties DbColumnProperties `yaml:"db_column_properties" json:"db_column_properties"`
}

type DbColumnProperties struct {
	DataType string `yaml:"data_type,omitempty" json:"data_type,omitempty"`
}

// Relation - an outgoing join of a logical table.
type Relation struct {
	Name        string   `yaml:"name" json:"name"`
	Destination Identity `yaml:"destination" json:"destination"`
	On          string   `yaml:"on,omitempty" json:"on,omitempty"`
	Type        JoinType `yaml:"type" json:"type"`
}
