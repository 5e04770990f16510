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
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tssrikanth/codex2021/internal/identity"
	"github.com/tssrikanth/codex2021/internal/joingraph"
	"github.com/tssrikanth/codex2021/internal/validationcollector"
	"github.com/tssrikanth/codex2021/pkg/modelerr"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

// sheet - the model sheet with every name reference resolved to a position.
type sheet struct {
	name       string
	properties tml.QueryProperties
	// worksheetTables - positions of the worksheet tables in tables. The first one is the root.
	worksheetTables []int
	tables          *identity.Index
	// columns - attribute rows grouped by the position of the owning table.
	columns [][]modelsheet.AttributeRow
}

// ParseAndConvert parses the raw model sheet and converts it into the document.
func (c *Converter) ParseAndConvert(
	ctx context.Context, raw modelsheet.RawModelSheet, opts modelsheet.Options,
) (tml.Document, error) {
	m, err := modelsheet.Parse(raw, opts)
	if err != nil {
		return tml.Document{}, fmt.Errorf("parse model sheet: %w", err)
	}
	return c.ToDocument(ctx, m)
}

// ToDocument converts the model sheet into the document. Non-fatal findings are added to the collector
// stored in ctx.
func (c *Converter) ToDocument(ctx context.Context, m modelsheet.ModelSheet) (tml.Document, error) {
	s, err := resolveSheet(m)
	if err != nil {
		return tml.Document{}, err
	}
	ctx = validationcollector.WithMeta(ctx, validationcollector.MetaKeyWorksheetName, s.name)
	logger := log.Ctx(ctx).With().Str("Worksheet", s.name).Logger()

	joins, graph, err := buildJoins(m.Tables, s.tables)
	if err != nil {
		return tml.Document{}, err
	}

	worksheetColumns, err := buildWorksheetColumns(m.Attributes)
	if err != nil {
		return tml.Document{}, err
	}

	tables, err := c.buildLogicalTables(m.Tables, s.columns)
	if err != nil {
		return tml.Document{}, err
	}

	paths := c.buildTablePaths(ctx, m.Tables, graph, s.worksheetTables[0])
	warnNotInWorksheet(ctx, s)

	worksheetIdentities := make([]tml.Identity, 0, len(s.worksheetTables))
	for _, idx := range s.worksheetTables {
		worksheetIdentities = append(worksheetIdentities, tml.Identity{Name: s.tables.Names()[idx]})
	}

	logger.Debug().
		Int("TablesCount", len(tables)).
		Int("JoinsCount", len(joins)).
		Int("WorksheetColumnsCount", len(worksheetColumns)).
		Str("JoinPaths", string(c.opts.JoinPaths)).
		Msg("document built")

	return tml.Document{
		GUID: documentGUID(s.name),
		Worksheet: tml.Worksheet{
			Name:       s.name,
			Tables:     worksheetIdentities,
			Joins:      joins,
			TablePaths: paths,
			Columns:    worksheetColumns,
			Properties: s.properties,
		},
		Tables: tables,
	}, nil
}

func documentGUID(worksheet string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(worksheet)).String()
}

func resolveSheet(m modelsheet.ModelSheet) (*sheet, error) {
	if len(m.Worksheets) == 0 {
		return nil, modelerr.NewUnsupportedShapeError("worksheet", "model sheet has no worksheet rows")
	}

	tables := identity.NewIndex(len(m.Tables))
	for _, t := range m.Tables {
		if _, err := identity.Table(t.Name); err != nil {
			return nil, modelerr.NewMalformedFieldError("", "", modelsheet.FieldTable, t.Name, err)
		}
		if _, err := tables.Add(t.Name); err != nil {
			return nil, modelerr.NewUnsupportedShapeError(t.Name, "table is defined more than once")
		}
	}

	first := m.Worksheets[0]
	if first.Name == "" {
		return nil, modelerr.NewMalformedFieldError("", "", modelsheet.FieldWorksheetName, first.Name, identity.ErrEmptyName)
	}
	s := &sheet{
		name: first.Name,
		properties: tml.QueryProperties{
			IsBypassRLS:     first.BypassRLS,
			JoinProgressive: first.ProgressiveJoin,
		},
		tables:  tables,
		columns: make([][]modelsheet.AttributeRow, tables.Len()),
	}

	seen := make(map[int]struct{}, len(m.Worksheets))
	for _, ws := range m.Worksheets {
		if ws.Name != first.Name {
			return nil, modelerr.NewUnsupportedShapeError(
				"worksheet", "multiple worksheets are not supported: %q and %q", first.Name, ws.Name,
			)
		}
		if ws.BypassRLS != first.BypassRLS || ws.ProgressiveJoin != first.ProgressiveJoin {
			return nil, modelerr.NewUnsupportedShapeError(first.Name, "inconsistent worksheet properties")
		}
		idx, err := tables.Resolve(ws.Table)
		if err != nil {
			return nil, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindWorksheetTable, ws.Table, first.Name)
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		s.worksheetTables = append(s.worksheetTables, idx)
	}

	for _, a := range m.Attributes {
		idx, err := tables.Resolve(a.Table)
		if err != nil {
			return nil, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindTable, a.Table, a.Column)
		}
		s.columns[idx] = append(s.columns[idx], a)
	}
	return s, nil
}

func buildJoins(rows []modelsheet.TableRow, tables *identity.Index) ([]tml.Join, joingraph.Graph, error) {
	var (
		joins []tml.Join
		edges []joingraph.Join
	)
	names := identity.NewIndex(len(rows))
	for _, t := range rows {
		if t.Join == nil {
			continue
		}
		j := t.Join
		if !tables.Contains(j.JoinsWith) {
			return nil, joingraph.Graph{}, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindTable, j.JoinsWith, t.Name)
		}
		if j.JoinsWith == t.Name {
			return nil, joingraph.Graph{}, modelerr.NewUnsupportedShapeError(t.Name, "table joins with itself")
		}
		if _, err := names.Add(j.Name); err != nil {
			return nil, joingraph.Graph{}, modelerr.NewUnsupportedShapeError(j.Name, "join name is used more than once")
		}
		joins = append(joins, tml.Join{
			Name:        j.Name,
			Source:      t.Name,
			Destination: j.JoinsWith,
			Type:        documentJoinTypes[j.Type],
			IsOneToOne:  j.OneToOne,
		})
		edges = append(edges, joingraph.Join{
			Name:        j.Name,
			Source:      t.Name,
			Destination: j.JoinsWith,
		})
	}
	graph, err := joingraph.NewGraph(tables.Names(), edges)
	if err != nil {
		return nil, joingraph.Graph{}, fmt.Errorf("build join graph: %w", err)
	}
	return joins, graph, nil
}

func buildWorksheetColumns(attributes []modelsheet.AttributeRow) ([]tml.WorksheetColumn, error) {
	var res []tml.WorksheetColumn
	for _, a := range attributes {
		if !a.WorksheetColumn {
			continue
		}
		id, err := columnID(a)
		if err != nil {
			return nil, err
		}
		res = append(res, tml.WorksheetColumn{
			Name:        a.Column,
			ColumnID:    id,
			Description: a.Description,
			Properties:  columnProperties(a),
		})
	}
	return res, nil
}

func columnID(a modelsheet.AttributeRow) (string, error) {
	id, err := identity.Column(a.Table, a.Column)
	if err != nil {
		return "", modelerr.NewMalformedFieldError(a.Table, "", modelsheet.FieldColumn, a.Column, err)
	}
	return id, nil
}

// buildLogicalTables builds the table subtrees concurrently. The result and the reported error follow
// the input order of the tables regardless of the completion order.
func (c *Converter) buildLogicalTables(
	rows []modelsheet.TableRow, columns [][]modelsheet.AttributeRow,
) ([]tml.LogicalTable, error) {
	res := make([]tml.LogicalTable, len(rows))
	errs := make([]error, len(rows))

	var eg errgroup.Group
	eg.SetLimit(c.opts.Parallelism)
	for idx := range rows {
		eg.Go(func() error {
			res[idx], errs[idx] = logicalTable(rows[idx], columns[idx])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := firstError(errs); err != nil {
		return nil, err
	}
	return res, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func logicalTable(t modelsheet.TableRow, attributes []modelsheet.AttributeRow) (tml.LogicalTable, error) {
	names := identity.NewIndex(len(attributes))
	var columns []tml.LogicalColumn
	for _, a := range attributes {
		if _, err := columnID(a); err != nil {
			return tml.LogicalTable{}, err
		}
		if _, err := names.Add(a.Column); err != nil {
			return tml.LogicalTable{}, modelerr.NewUnsupportedShapeError(
				t.Name, "column %q is defined more than once", a.Column,
			)
		}
		columns = append(columns, tml.LogicalColumn{
			Name:         a.Column,
			DbColumnName: a.Column,
			Description:  a.Description,
			Properties:   columnProperties(a),
			DbColumnProperties: tml.DbColumnProperties{
				DataType: a.DataType,
			},
		})
	}

	var relations []tml.Relation
	if t.Join != nil {
		relations = []tml.Relation{
			{
				Name:        t.Join.Name,
				Destination: tml.Identity{Name: t.Join.JoinsWith},
				On:          t.Connection,
				Type:        documentJoinTypes[t.Join.Type],
			},
		}
	}

	return tml.LogicalTable{
		Name:       t.Name,
		DB:         t.Database,
		Schema:     t.Schema,
		DbTable:    t.DbTable,
		Connection: tml.Identity{Name: t.Connection},
		Columns:    columns,
		JoinsWith:  relations,
	}, nil
}

func (c *Converter) buildTablePaths(
	ctx context.Context, rows []modelsheet.TableRow, graph joingraph.Graph, root int,
) []tml.TablePath {
	res := make([]tml.TablePath, 0, len(rows))
	switch c.opts.JoinPaths {
	case JoinPathsDirect:
		for _, t := range rows {
			p := tml.TablePath{ID: t.Name, Table: t.Name}
			if t.Join != nil {
				p.JoinPath = []tml.JoinPath{{Join: []string{t.Join.Name}}}
			}
			res = append(res, p)
		}
	default:
		paths := graph.Paths(root)
		for idx, t := range rows {
			p := tml.TablePath{ID: t.Name, Table: t.Name}
			if len(paths[idx].Joins) > 0 {
				p.JoinPath = []tml.JoinPath{{Join: paths[idx].Joins}}
			}
			res = append(res, p)
		}
		for _, idx := range joingraph.Unreachable(paths) {
			validationcollector.FromContext(ctx).Add(
				validationcollector.NewWarning().
					SetMsgf("table is not reachable from the root table %q", graph.Vertexes[root]).
					AddMeta(validationcollector.MetaKeyTableName, graph.Vertexes[idx]),
			)
		}
	}
	return res
}

func warnNotInWorksheet(ctx context.Context, s *sheet) {
	included := make([]bool, s.tables.Len())
	for _, idx := range s.worksheetTables {
		included[idx] = true
	}
	for idx, ok := range included {
		if ok {
			continue
		}
		validationcollector.FromContext(ctx).Add(
			validationcollector.NewWarning().
				SetSeverity(validationcollector.SeverityInfo).
				SetMsg("table is not included into the worksheet").
				AddMeta(validationcollector.MetaKeyTableName, s.tables.Names()[idx]),
		)
	}
}
