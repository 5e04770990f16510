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

// Header names of the model sheet. They are used as the CSV header, the YAML keys and the field
// names reported in parse errors.
const (
	FieldWorksheetName   = "worksheet_name"
	FieldTables          = "tables"
	FieldBypassRLS       = "bypass_rls"
	FieldProgressiveJoin = "progressive_join"

	FieldTable           = "table"
	FieldDatabase        = "database"
	FieldSchema          = "schema"
	FieldDbTable         = "db_table"
	FieldConnection      = "connection"
	FieldJoinName        = "join_name"
	FieldJoinsWith       = "joins_with"
	FieldJoinType        = "join_type"
	FieldJoinCardinality = "join_cardinality"

	FieldColumn             = "column"
	FieldDescription        = "description"
	FieldColumnType         = "column_type"
	FieldDataType           = "data_type"
	FieldAdditive           = "additive"
	FieldAggregation        = "aggregation"
	FieldHidden             = "hidden"
	FieldSynonyms           = "synonyms"
	FieldIndexType          = "index_type"
	FieldIndexPriority      = "index_priority"
	FieldFormatPattern      = "format_pattern"
	FieldCurrencyType       = "currency_type"
	FieldAttributeDimension = "attribute_dimension"
	FieldSpotIQPreference   = "spotiq_preference"
	FieldCalendarType       = "calendar_type"
	FieldWorksheetColumn    = "worksheet_column"
)

// RawModelSheet - the model sheet as it is stored in the file.
type RawModelSheet struct {
	Worksheets []RawWorksheetRow `mapstructure:"worksheets" yaml:"worksheets" json:"worksheets"`
	Tables     []RawTableRow     `mapstructure:"tables" yaml:"tables" json:"tables"`
	Attributes []RawAttributeRow `mapstructure:"attributes" yaml:"attributes" json:"attributes"`
}

type RawWorksheetRow struct {
	WorksheetName   string `mapstructure:"worksheet_name" yaml:"worksheet_name" json:"worksheet_name"`
	Tables          string `mapstructure:"tables" yaml:"tables" json:"tables"`
	BypassRLS       string `mapstructure:"bypass_rls" yaml:"bypass_rls,omitempty" json:"bypass_rls,omitempty"`
	ProgressiveJoin string `mapstructure:"progressive_join" yaml:"progressive_join,omitempty" json:"progressive_join,omitempty"`
}

type RawTableRow struct {
	Table           string `mapstructure:"table" yaml:"table" json:"table"`
	Database        string `mapstructure:"database" yaml:"database,omitempty" json:"database,omitempty"`
	Schema          string `mapstructure:"schema" yaml:"schema,omitempty" json:"schema,omitempty"`
	DbTable         string `mapstructure:"db_table" yaml:"db_table,omitempty" json:"db_table,omitempty"`
	Connection      string `mapstructure:"connection" yaml:"connection,omitempty" json:"connection,omitempty"`
	JoinName        string `mapstructure:"join_name" yaml:"join_name,omitempty" json:"join_name,omitempty"`
	JoinsWith       string `mapstructure:"joins_with" yaml:"joins_with,omitempty" json:"joins_with,omitempty"`
	JoinType        string `mapstructure:"join_type" yaml:"join_type,omitempty" json:"join_type,omitempty"`
	JoinCardinality string `mapstructure:"join_cardinality" yaml:"join_cardinality,omitempty" json:"join_cardinality,omitempty"`
}

type RawAttributeRow struct {
	Table              string `mapstructure:"table" yaml:"table" json:"table"`
	Column             string `mapstructure:"column" yaml:"column" json:"column"`
	Description        string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
	ColumnType         string `mapstructure:"column_type" yaml:"column_type,omitempty" json:"column_type,omitempty"`
	DataType           string `mapstructure:"data_type" yaml:"data_type,omitempty" json:"data_type,omitempty"`
	Additive           string `mapstructure:"additive" yaml:"additive,omitempty" json:"additive,omitempty"`
	Aggregation        string `mapstructure:"aggregation" yaml:"aggregation,omitempty" json:"aggregation,omitempty"`
	Hidden             string `mapstructure:"hidden" yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Synonyms           string `mapstructure:"synonyms" yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	IndexType          string `mapstructure:"index_type" yaml:"index_type,omitempty" json:"index_type,omitempty"`
	IndexPriority      string `mapstructure:"index_priority" yaml:"index_priority,omitempty" json:"index_priority,omitempty"`
	FormatPattern      string `mapstructure:"format_pattern" yaml:"format_pattern,omitempty" json:"format_pattern,omitempty"`
	CurrencyType       string `mapstructure:"currency_type" yaml:"currency_type,omitempty" json:"currency_type,omitempty"`
	AttributeDimension string `mapstructure:"attribute_dimension" yaml:"attribute_dimension,omitempty" json:"attribute_dimension,omitempty"`
	SpotIQPreference   string `mapstructure:"spotiq_preference" yaml:"spotiq_preference,omitempty" json:"spotiq_preference,omitempty"`
	CalendarType       string `mapstructure:"calendar_type" yaml:"calendar_type,omitempty" json:"calendar_type,omitempty"`
	WorksheetColumn    string `mapstructure:"worksheet_column" yaml:"worksheet_column,omitempty" json:"worksheet_column,omitempty"`
}

// WorksheetHeader - the column order of the worksheets sheet.
var WorksheetHeader = []string{
	FieldWorksheetName, FieldTables, FieldBypassRLS, FieldProgressiveJoin,
}

// TableHeader - the column order of the tables sheet.
var TableHeader = []string{
	FieldTable, FieldDatabase, FieldSchema, FieldDbTable, FieldConnection,
	FieldJoinName, FieldJoinsWith, FieldJoinType, FieldJoinCardinality,
}

// AttributeHeader - the column order of the attributes sheet.
var AttributeHeader = []string{
	FieldTable, FieldColumn, FieldDescription, FieldColumnType, FieldDataType, FieldAdditive,
	FieldAggregation, FieldHidden, FieldSynonyms, FieldIndexType, FieldIndexPriority,
	FieldFormatPattern, FieldCurrencyType, FieldAttributeDimension, FieldSpotIQPreference,
	FieldCalendarType, FieldWorksheetColumn,
}
