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
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tssrikanth/codex2021/internal/identity"
	"github.com/tssrikanth/codex2021/internal/validationcollector"
	"github.com/tssrikanth/codex2021/pkg/modelerr"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

/*
salesSheet:

	orders -ord_cust-> customers -cust_reg-> regions
	products -prod_ord-> orders (products is not reachable from orders)
*/
func salesSheet() modelsheet.ModelSheet {
	worksheet := func(table string) modelsheet.WorksheetRow {
		return modelsheet.WorksheetRow{Name: "Sales", Table: table, ProgressiveJoin: true}
	}
	return modelsheet.ModelSheet{
		Worksheets: []modelsheet.WorksheetRow{
			worksheet("orders"),
			worksheet("customers"),
			worksheet("regions"),
			worksheet("products"),
		},
		Tables: []modelsheet.TableRow{
			{
				Name:       "orders",
				Database:   "SALES_DB",
				Schema:     "PUBLIC",
				DbTable:    "ORDERS",
				Connection: "snowflake",
				Join: &modelsheet.TableJoin{
					Name:      "ord_cust",
					JoinsWith: "customers",
					Type:      modelsheet.JoinTypeInner,
					OneToOne:  true,
				},
			},
			{
				Name:       "customers",
				Database:   "SALES_DB",
				Schema:     "PUBLIC",
				DbTable:    "CUSTOMERS",
				Connection: "snowflake",
				Join: &modelsheet.TableJoin{
					Name:      "cust_reg",
					JoinsWith: "regions",
					Type:      modelsheet.JoinTypeLeftOuter,
				},
			},
			{
				Name:       "regions",
				Database:   "SALES_DB",
				Schema:     "PUBLIC",
				DbTable:    "REGIONS",
				Connection: "snowflake",
			},
			{
				Name:       "products",
				Database:   "SALES_DB",
				Schema:     "PUBLIC",
				DbTable:    "PRODUCTS",
				Connection: "snowflake",
				Join: &modelsheet.TableJoin{
					Name:      "prod_ord",
					JoinsWith: "orders",
					Type:      modelsheet.JoinTypeOuter,
				},
			},
		},
		Attributes: []modelsheet.AttributeRow{
			{
				Table:           "orders",
				Column:          "amount",
				Description:     "Order amount",
				ColumnType:      "MEASURE",
				DataType:        "DOUBLE",
				Additive:        true,
				Aggregation:     "SUM",
				Synonyms:        []string{"total", "revenue"},
				IndexType:       "DONT_INDEX",
				IndexPriority:   1,
				FormatPattern:   "#,##0.00",
				CurrencyType:    "currency_code",
				WorksheetColumn: true,
			},
			{
				Table:            "customers",
				Column:           "name",
				ColumnType:       "ATTRIBUTE",
				DataType:         "VARCHAR",
				SpotIQPreference: "EXCLUDE",
				WorksheetColumn:  true,
			},
			{
				Table:      "orders",
				Column:     "order_date",
				ColumnType: "ATTRIBUTE",
				DataType:   "DATE",
				Hidden:     true,
			},
			{
				Table:                "regions",
				Column:               "region",
				ColumnType:           "ATTRIBUTE",
				DataType:             "VARCHAR",
				AttributionDimension: true,
				CalendarType:         "fiscal",
			},
			{
				Table:      "products",
				Column:     "sku",
				ColumnType: "ATTRIBUTE",
				DataType:   "VARCHAR",
			},
		},
	}
}

func newConverter(t *testing.T, mode JoinPathMode, parallelism int) *Converter {
	t.Helper()
	c, err := NewConverter(Options{JoinPaths: mode, Parallelism: parallelism})
	require.NoError(t, err)
	return c
}

func salesDocument(t *testing.T, mode JoinPathMode) tml.Document {
	t.Helper()
	doc, err := newConverter(t, mode, 1).ToDocument(context.Background(), salesSheet())
	require.NoError(t, err)
	return doc
}

var sheetOrder = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmpopts.SortSlices(func(a, b modelsheet.WorksheetRow) bool { return a.Table < b.Table }),
	cmpopts.SortSlices(func(a, b modelsheet.TableRow) bool { return a.Name < b.Name }),
	cmpopts.SortSlices(func(a, b modelsheet.AttributeRow) bool {
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		return a.Column < b.Column
	}),
}

func TestNewConverter(t *testing.T) {
	c, err := NewConverter(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), c.Options())

	_, err = NewConverter(Options{JoinPaths: "shortest"})
	require.ErrorIs(t, err, errUnknownJoinPathMode)
}

func TestParseJoinPathMode(t *testing.T) {
	for _, v := range []string{"", "transitive", "direct"} {
		_, err := ParseJoinPathMode(v)
		require.NoError(t, err, v)
	}
	_, err := ParseJoinPathMode("Direct")
	require.ErrorIs(t, err, errUnknownJoinPathMode)
}

func TestToDocument_ScenarioA(t *testing.T) {
	raw := modelsheet.RawModelSheet{
		Worksheets: []modelsheet.RawWorksheetRow{{WorksheetName: "Sales", Tables: "orders"}},
		Tables:     []modelsheet.RawTableRow{{Table: "orders", Connection: "snowflake"}},
		Attributes: []modelsheet.RawAttributeRow{
			{Table: "orders", Column: "amount", WorksheetColumn: "Y", Additive: "true", IndexPriority: "1.0"},
		},
	}
	doc, err := newConverter(t, JoinPathsTransitive, 1).
		ParseAndConvert(context.Background(), raw, modelsheet.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, doc.Tables, 1)
	orders := doc.Tables[0]
	assert.Equal(t, "orders", orders.Name)
	require.Len(t, orders.Columns, 1)
	assert.Equal(t, "amount", orders.Columns[0].Name)
	assert.True(t, orders.Columns[0].Properties.IsAdditive)
	assert.Equal(t, 1.0, orders.Columns[0].Properties.IndexPriority)

	require.Len(t, doc.Worksheet.Columns, 1)
	assert.Equal(t, "orders::amount", doc.Worksheet.Columns[0].ColumnID)
	assert.Equal(t, []tml.TablePath{{ID: "orders", Table: "orders"}}, doc.Worksheet.TablePaths)
	assert.Empty(t, doc.Worksheet.Joins)
}

func TestToDocument_ScenarioB(t *testing.T) {
	raw := modelsheet.RawModelSheet{
		Worksheets: []modelsheet.RawWorksheetRow{
			{WorksheetName: "Sales", Tables: "orders"},
			{WorksheetName: "Sales", Tables: "customers"},
		},
		Tables: []modelsheet.RawTableRow{
			{
				Table:           "orders",
				Connection:      "snowflake",
				JoinName:        "ord_cust",
				JoinsWith:       "customers",
				JoinType:        "inner",
				JoinCardinality: "true",
			},
			{Table: "customers", Connection: "snowflake"},
		},
	}
	doc, err := newConverter(t, JoinPathsTransitive, 1).
		ParseAndConvert(context.Background(), raw, modelsheet.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []tml.Join{
		{Name: "ord_cust", Source: "orders", Destination: "customers", Type: tml.JoinTypeInner, IsOneToOne: true},
	}, doc.Worksheet.Joins)

	orders, ok := doc.Table("orders")
	require.True(t, ok)
	assert.Equal(t, []tml.Relation{
		{Name: "ord_cust", Destination: tml.Identity{Name: "customers"}, On: "snowflake", Type: tml.JoinTypeInner},
	}, orders.JoinsWith)

	customers, ok := doc.Table("customers")
	require.True(t, ok)
	assert.Empty(t, customers.JoinsWith)
}

func TestToDocument_ScenarioC(t *testing.T) {
	raw := modelsheet.RawModelSheet{
		Worksheets: []modelsheet.RawWorksheetRow{{WorksheetName: "Sales", Tables: "orders"}},
		Tables:     []modelsheet.RawTableRow{{Table: "orders"}},
		Attributes: []modelsheet.RawAttributeRow{
			{Table: "orders", Column: "amount", IndexPriority: "not-a-number"},
		},
	}
	doc, err := newConverter(t, JoinPathsTransitive, 1).
		ParseAndConvert(context.Background(), raw, modelsheet.DefaultOptions())
	require.ErrorIs(t, err, modelerr.ErrMalformedField)
	var malformed *modelerr.MalformedFieldError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "orders", malformed.Table)
	assert.Equal(t, "amount", malformed.Column)
	assert.Equal(t, modelsheet.FieldIndexPriority, malformed.Field)
	assert.Empty(t, cmp.Diff(tml.Document{}, doc))
}

func TestToDocument_ScenarioD(t *testing.T) {
	m := salesSheet()
	m.Tables[0].Join.JoinsWith = "stores"
	doc, err := newConverter(t, JoinPathsTransitive, 1).ToDocument(context.Background(), m)
	require.ErrorIs(t, err, modelerr.ErrDanglingReference)
	var dangling *modelerr.DanglingReferenceError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "stores", dangling.Name)
	assert.Equal(t, "orders", dangling.From)
	assert.Empty(t, cmp.Diff(tml.Document{}, doc))
}

func TestToDocument_TransitivePaths(t *testing.T) {
	vc := validationcollector.NewCollector()
	ctx := validationcollector.WithCollector(context.Background(), vc)
	doc, err := newConverter(t, JoinPathsTransitive, 1).ToDocument(ctx, salesSheet())
	require.NoError(t, err)

	expected := []tml.TablePath{
		{ID: "orders", Table: "orders"},
		{ID: "customers", Table: "customers", JoinPath: []tml.JoinPath{{Join: []string{"ord_cust"}}}},
		{ID: "regions", Table: "regions", JoinPath: []tml.JoinPath{{Join: []string{"ord_cust", "cust_reg"}}}},
		{ID: "products", Table: "products"},
	}
	assert.Equal(t, expected, doc.Worksheet.TablePaths)

	warnings := vc.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, validationcollector.SeverityWarning, warnings[0].Severity)
	assert.Equal(t, map[string]any{
		validationcollector.MetaKeyWorksheetName: "Sales",
		validationcollector.MetaKeyTableName:     "products",
	}, warnings[0].Meta)
}

func TestToDocument_DirectPaths(t *testing.T) {
	vc := validationcollector.NewCollector()
	ctx := validationcollector.WithCollector(context.Background(), vc)
	doc, err := newConverter(t, JoinPathsDirect, 1).ToDocument(ctx, salesSheet())
	require.NoError(t, err)

	expected := []tml.TablePath{
		{ID: "orders", Table: "orders", JoinPath: []tml.JoinPath{{Join: []string{"ord_cust"}}}},
		{ID: "customers", Table: "customers", JoinPath: []tml.JoinPath{{Join: []string{"cust_reg"}}}},
		{ID: "regions", Table: "regions"},
		{ID: "products", Table: "products", JoinPath: []tml.JoinPath{{Join: []string{"prod_ord"}}}},
	}
	assert.Equal(t, expected, doc.Worksheet.TablePaths)
	assert.False(t, vc.HasWarnings())
}

func TestToDocument_Document(t *testing.T) {
	doc := salesDocument(t, JoinPathsTransitive)

	assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceOID, []byte("Sales")).String(), doc.GUID)
	assert.Equal(t, "Sales", doc.Worksheet.Name)
	assert.Equal(t, tml.QueryProperties{JoinProgressive: true}, doc.Worksheet.Properties)
	assert.Equal(t, []tml.Identity{
		{Name: "orders"}, {Name: "customers"}, {Name: "regions"}, {Name: "products"},
	}, doc.Worksheet.Tables)

	orders, ok := doc.Table("orders")
	require.True(t, ok)
	expected := tml.LogicalTable{
		Name:       "orders",
		DB:         "SALES_DB",
		Schema:     "PUBLIC",
		DbTable:    "ORDERS",
		Connection: tml.Identity{Name: "snowflake"},
		Columns: []tml.LogicalColumn{
			{
				Name:         "amount",
				DbColumnName: "amount",
				Description:  "Order amount",
				Properties: tml.ColumnProperties{
					ColumnType:    "MEASURE",
					IsAdditive:    true,
					Aggregation:   "SUM",
					Synonyms:      []string{"total", "revenue"},
					IndexType:     "DONT_INDEX",
					IndexPriority: 1,
					FormatPattern: "#,##0.00",
					CurrencyType:  &tml.CurrencyFormat{Column: "currency_code"},
				},
				DbColumnProperties: tml.DbColumnProperties{DataType: "DOUBLE"},
			},
			{
				Name:               "order_date",
				DbColumnName:       "order_date",
				Properties:         tml.ColumnProperties{ColumnType: "ATTRIBUTE", IsHidden: true},
				DbColumnProperties: tml.DbColumnProperties{DataType: "DATE"},
			},
		},
		JoinsWith: []tml.Relation{
			{Name: "ord_cust", Destination: tml.Identity{Name: "customers"}, On: "snowflake", Type: tml.JoinTypeInner},
		},
	}
	assert.Empty(t, cmp.Diff(expected, orders))

	assert.Equal(t, []string{"orders::amount", "customers::name"}, []string{
		doc.Worksheet.Columns[0].ColumnID, doc.Worksheet.Columns[1].ColumnID,
	})
	assert.Nil(t, doc.Worksheet.Columns[1].Properties.CurrencyType)
}

func TestToDocument_IdentityConsistency(t *testing.T) {
	doc := salesDocument(t, JoinPathsTransitive)
	for _, wc := range doc.Worksheet.Columns {
		table, column, err := identity.SplitColumn(wc.ColumnID)
		require.NoError(t, err)
		lt, ok := doc.Table(table)
		require.True(t, ok, wc.ColumnID)
		var found bool
		for _, c := range lt.Columns {
			if c.Name == column {
				found = true
			}
		}
		assert.True(t, found, wc.ColumnID)
	}
}

func TestToDocument_NoDanglingJoins(t *testing.T) {
	doc := salesDocument(t, JoinPathsTransitive)
	for _, j := range doc.Worksheet.Joins {
		_, ok := doc.Table(j.Source)
		assert.True(t, ok, j.Name)
		_, ok = doc.Table(j.Destination)
		assert.True(t, ok, j.Name)
	}
	for _, lt := range doc.Tables {
		for _, rel := range lt.JoinsWith {
			_, ok := doc.Table(rel.Destination.Name)
			assert.True(t, ok, rel.Name)
		}
	}
}

func TestToDocument_Deterministic(t *testing.T) {
	encode := func(c *Converter) []byte {
		doc, err := c.ToDocument(context.Background(), salesSheet())
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, tml.Encode(&buf, doc))
		return buf.Bytes()
	}
	sequential := encode(newConverter(t, JoinPathsTransitive, 1))
	for range 10 {
		assert.Equal(t, sequential, encode(newConverter(t, JoinPathsTransitive, 1)))
		assert.Equal(t, sequential, encode(newConverter(t, JoinPathsTransitive, 8)))
	}
}

func TestToDocument_Errors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(m *modelsheet.ModelSheet)
		expected error
	}{
		{
			name:     "no worksheet rows",
			modify:   func(m *modelsheet.ModelSheet) { m.Worksheets = nil },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "multiple worksheets",
			modify:   func(m *modelsheet.ModelSheet) { m.Worksheets[1].Name = "Marketing" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "inconsistent worksheet properties",
			modify:   func(m *modelsheet.ModelSheet) { m.Worksheets[2].BypassRLS = true },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "empty worksheet name",
			modify:   func(m *modelsheet.ModelSheet) { m.Worksheets[0].Name = "" },
			expected: modelerr.ErrMalformedField,
		},
		{
			name:     "unknown worksheet table",
			modify:   func(m *modelsheet.ModelSheet) { m.Worksheets[3].Table = "stores" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "duplicate table",
			modify:   func(m *modelsheet.ModelSheet) { m.Tables[3].Name = "regions" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "empty table name",
			modify:   func(m *modelsheet.ModelSheet) { m.Tables[2].Name = " " },
			expected: modelerr.ErrMalformedField,
		},
		{
			name:     "self join",
			modify:   func(m *modelsheet.ModelSheet) { m.Tables[0].Join.JoinsWith = "orders" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "duplicate join name",
			modify:   func(m *modelsheet.ModelSheet) { m.Tables[1].Join.Name = "ord_cust" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "attribute of unknown table",
			modify:   func(m *modelsheet.ModelSheet) { m.Attributes[4].Table = "stores" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "duplicate column",
			modify:   func(m *modelsheet.ModelSheet) { m.Attributes[2].Column = "amount" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "empty column name",
			modify:   func(m *modelsheet.ModelSheet) { m.Attributes[3].Column = "" },
			expected: modelerr.ErrMalformedField,
		},
		{
			name:     "empty worksheet column name",
			modify:   func(m *modelsheet.ModelSheet) { m.Attributes[1].Column = "" },
			expected: modelerr.ErrMalformedField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := salesSheet()
			tt.modify(&m)
			for _, parallelism := range []int{1, 4} {
				doc, err := newConverter(t, JoinPathsTransitive, parallelism).ToDocument(context.Background(), m)
				require.ErrorIs(t, err, tt.expected)
				assert.Empty(t, cmp.Diff(tml.Document{}, doc))
			}
		})
	}
}

func TestToDocument_ParallelErrorOrder(t *testing.T) {
	m := salesSheet()
	m.Attributes = append(m.Attributes,
		modelsheet.AttributeRow{Table: "products", Column: "sku"},
		modelsheet.AttributeRow{Table: "customers", Column: "name"},
	)
	for range 10 {
		_, err := newConverter(t, JoinPathsTransitive, 4).ToDocument(context.Background(), m)
		var shape *modelerr.UnsupportedShapeError
		require.ErrorAs(t, err, &shape)
		assert.Equal(t, "customers", shape.Subject)
	}
}

func TestToDocument_TableNotInWorksheet(t *testing.T) {
	m := salesSheet()
	m.Worksheets = m.Worksheets[:3]
	m.Worksheets = append(m.Worksheets, m.Worksheets[0])

	vc := validationcollector.NewCollector()
	ctx := validationcollector.WithCollector(context.Background(), vc)
	doc, err := newConverter(t, JoinPathsDirect, 1).ToDocument(ctx, m)
	require.NoError(t, err)

	assert.Equal(t, []tml.Identity{{Name: "orders"}, {Name: "customers"}, {Name: "regions"}}, doc.Worksheet.Tables)
	require.Equal(t, 1, vc.Len())
	w := vc.Warnings()[0]
	assert.Equal(t, validationcollector.SeverityInfo, w.Severity)
	assert.Equal(t, "products", w.Meta[validationcollector.MetaKeyTableName])
}

func TestRoundTrip(t *testing.T) {
	for _, mode := range []JoinPathMode{JoinPathsTransitive, JoinPathsDirect} {
		t.Run(string(mode), func(t *testing.T) {
			c := newConverter(t, mode, 2)
			original := salesSheet()
			doc, err := c.ToDocument(context.Background(), original)
			require.NoError(t, err)

			back, err := c.ToModelSheet(context.Background(), doc)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(original, back, sheetOrder...))
			assert.Empty(t, cmp.Diff(salesSheet(), original), "input is not mutated")
		})
	}
}

func TestRoundTrip_ThroughRawSheet(t *testing.T) {
	opts := modelsheet.Options{SynonymDelimiter: "|"}
	c := newConverter(t, JoinPathsTransitive, 1)
	raw, err := modelsheet.Format(salesSheet(), opts)
	require.NoError(t, err)

	doc, err := c.ParseAndConvert(context.Background(), raw, opts)
	require.NoError(t, err)
	back, err := c.ToModelSheet(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(salesSheet(), back, sheetOrder...))
}

func TestRoundTrip_ThroughYAML(t *testing.T) {
	c := newConverter(t, JoinPathsTransitive, 1)
	doc, err := c.ToDocument(context.Background(), salesSheet())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tml.Encode(&buf, doc))
	decoded, err := tml.Decode(&buf)
	require.NoError(t, err)

	back, err := c.ToModelSheet(context.Background(), decoded)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(salesSheet(), back, sheetOrder...))
}

func TestToModelSheet_SingleTable(t *testing.T) {
	doc := tml.Document{
		Worksheet: tml.Worksheet{
			Name:       "Sales",
			Tables:     []tml.Identity{{Name: "orders"}},
			TablePaths: []tml.TablePath{{ID: "orders", Table: "orders"}},
			Properties: tml.QueryProperties{IsBypassRLS: true},
		},
		Tables: []tml.LogicalTable{{Name: "orders", Connection: tml.Identity{Name: "snowflake"}}},
	}
	m, err := newConverter(t, JoinPathsTransitive, 1).ToModelSheet(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, []modelsheet.WorksheetRow{{Name: "Sales", Table: "orders", BypassRLS: true}}, m.Worksheets)
	assert.Equal(t, []modelsheet.TableRow{{Name: "orders", Connection: "snowflake"}}, m.Tables)
	assert.Empty(t, m.Attributes)
}

func TestToModelSheet_DirectPathsInTransitiveMode(t *testing.T) {
	doc := salesDocument(t, JoinPathsDirect)

	_, err := newConverter(t, JoinPathsDirect, 1).ToModelSheet(context.Background(), doc)
	require.NoError(t, err)

	m, err := newConverter(t, JoinPathsTransitive, 1).ToModelSheet(context.Background(), doc)
	var shapeErr *modelerr.UnsupportedShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "orders", shapeErr.Subject)
	assert.Empty(t, cmp.Diff(modelsheet.ModelSheet{}, m))
}

func TestToModelSheet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mode     JoinPathMode
		modify   func(d *tml.Document)
		expected error
	}{
		{
			name:     "empty worksheet name",
			modify:   func(d *tml.Document) { d.Worksheet.Name = "" },
			expected: modelerr.ErrMalformedField,
		},
		{
			name:     "worksheet without tables",
			modify:   func(d *tml.Document) { d.Worksheet.Tables = nil },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "unknown worksheet table",
			modify:   func(d *tml.Document) { d.Worksheet.Tables[1].Name = "stores" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "worksheet table listed twice",
			modify:   func(d *tml.Document) { d.Worksheet.Tables[1].Name = "orders" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "duplicate logical table",
			modify:   func(d *tml.Document) { d.Tables[3].Name = "regions" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "multiple relations",
			modify: func(d *tml.Document) {
				d.Tables[0].JoinsWith = append(d.Tables[0].JoinsWith, tml.Relation{
					Name: "ord_reg", Destination: tml.Identity{Name: "regions"}, Type: tml.JoinTypeInner,
				})
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "relation without join",
			modify:   func(d *tml.Document) { d.Tables[0].JoinsWith[0].Name = "ord_store" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "relation destination differs from join",
			modify:   func(d *tml.Document) { d.Tables[0].JoinsWith[0].Destination.Name = "regions" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "relation type differs from join",
			modify:   func(d *tml.Document) { d.Tables[0].JoinsWith[0].Type = tml.JoinTypeOuter },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "relation condition",
			modify:   func(d *tml.Document) { d.Tables[0].JoinsWith[0].On = "[orders::id] = [customers::id]" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "join without relation",
			modify:   func(d *tml.Document) { d.Tables[1].JoinsWith = nil },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "join source is unknown",
			modify:   func(d *tml.Document) { d.Worksheet.Joins[0].Source = "stores" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "join source differs from relation owner",
			modify:   func(d *tml.Document) { d.Worksheet.Joins[0].Source = "regions" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "unknown join type",
			modify:   func(d *tml.Document) { d.Worksheet.Joins[1].Type = "CROSS" },
			expected: modelerr.ErrMalformedField,
		},
		{
			name:     "duplicate join",
			modify:   func(d *tml.Document) { d.Worksheet.Joins = append(d.Worksheet.Joins, d.Worksheet.Joins[0]) },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "table path of unknown table",
			modify:   func(d *tml.Document) { d.Worksheet.TablePaths[1].Table = "stores" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "table path of unknown join",
			modify:   func(d *tml.Document) { d.Worksheet.TablePaths[1].JoinPath[0].Join[0] = "ord_store" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "multi hop path in direct mode",
			mode:     JoinPathsDirect,
			modify:   func(*tml.Document) {},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "single path on the wrong table",
			modify: func(d *tml.Document) {
				d.Worksheet.TablePaths = []tml.TablePath{
					{ID: "x", Table: "orders", JoinPath: []tml.JoinPath{{Join: []string{"ord_cust"}}}},
				}
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "table path id differs from table",
			modify:   func(d *tml.Document) { d.Worksheet.TablePaths[1].ID = "cust" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "table paths reordered",
			modify: func(d *tml.Document) {
				p := d.Worksheet.TablePaths
				p[0], p[1] = p[1], p[0]
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "missing table path",
			modify:   func(d *tml.Document) { d.Worksheet.TablePaths = d.Worksheet.TablePaths[:3] },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "join path differs from the path from the root",
			modify: func(d *tml.Document) {
				d.Worksheet.TablePaths[2].JoinPath = []tml.JoinPath{{Join: []string{"cust_reg"}}}
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "path on the root table",
			modify: func(d *tml.Document) {
				d.Worksheet.TablePaths[0].JoinPath = []tml.JoinPath{{Join: []string{"prod_ord"}}}
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "join path split into several entries",
			modify: func(d *tml.Document) {
				d.Worksheet.TablePaths[2].JoinPath = []tml.JoinPath{
					{Join: []string{"ord_cust"}}, {Join: []string{"cust_reg"}},
				}
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "self join",
			modify: func(d *tml.Document) {
				d.Worksheet.Joins[1].Destination = "customers"
				d.Tables[1].JoinsWith[0].Destination.Name = "customers"
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "unknown worksheet column",
			modify:   func(d *tml.Document) { d.Worksheet.Columns[0].ColumnID = "orders::discount" },
			expected: modelerr.ErrDanglingReference,
		},
		{
			name:     "worksheet column description differs",
			modify:   func(d *tml.Document) { d.Worksheet.Columns[0].Description = "Amount" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "worksheet column properties differ",
			modify:   func(d *tml.Document) { d.Worksheet.Columns[1].Properties.IsHidden = true },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name: "worksheet column listed twice",
			modify: func(d *tml.Document) {
				d.Worksheet.Columns = append(d.Worksheet.Columns, d.Worksheet.Columns[0])
			},
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "db column name differs",
			modify:   func(d *tml.Document) { d.Tables[0].Columns[1].DbColumnName = "ORDER_DT" },
			expected: modelerr.ErrUnsupportedShape,
		},
		{
			name:     "duplicate column",
			modify:   func(d *tml.Document) { d.Tables[0].Columns[1].Name = "amount" },
			expected: modelerr.ErrUnsupportedShape,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := salesDocument(t, JoinPathsTransitive)
			tt.modify(&doc)
			mode := tt.mode
			if mode == "" {
				mode = JoinPathsTransitive
			}
			m, err := newConverter(t, mode, 1).ToModelSheet(context.Background(), doc)
			require.ErrorIs(t, err, tt.expected)
			assert.Empty(t, cmp.Diff(modelsheet.ModelSheet{}, m))
		})
	}
}
