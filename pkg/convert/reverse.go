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
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/tssrikanth/codex2021/internal/identity"
	"github.com/tssrikanth/codex2021/internal/joingraph"
	"github.com/tssrikanth/codex2021/pkg/modelerr"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

// columnRef - position of a logical column in the document.
type columnRef struct {
	table  int
	column int
}

// document - the document with every name reference resolved to a position.
type document struct {
	doc    tml.Document
	tables *identity.Index
	joins  *identity.Index
	// columns - column id -> position of the logical column.
	columns map[string]columnRef
	// exposed - column id -> the column is mirrored by a worksheet column.
	exposed map[string]bool
}

// ToModelSheet converts the document into the model sheet. Every construct the model sheet cannot
// express fails with *modelerr.UnsupportedShapeError rather than being dropped.
func (c *Converter) ToModelSheet(ctx context.Context, doc tml.Document) (modelsheet.ModelSheet, error) {
	d, err := resolveDocument(doc)
	if err != nil {
		return modelsheet.ModelSheet{}, err
	}
	if err := d.checkRelations(); err != nil {
		return modelsheet.ModelSheet{}, err
	}
	if err := d.checkTablePaths(c.opts.JoinPaths); err != nil {
		return modelsheet.ModelSheet{}, err
	}
	if err := d.resolveWorksheetColumns(); err != nil {
		return modelsheet.ModelSheet{}, err
	}

	res := modelsheet.ModelSheet{
		Worksheets: d.worksheetRows(),
		Tables:     d.tableRows(),
		Attributes: d.attributeRows(),
	}
	log.Ctx(ctx).Debug().
		Str("Worksheet", doc.Worksheet.Name).
		Int("TablesCount", len(res.Tables)).
		Int("AttributesCount", len(res.Attributes)).
		Msg("model sheet built")
	return res, nil
}

func resolveDocument(doc tml.Document) (*document, error) {
	ws := doc.Worksheet
	if ws.Name == "" {
		return nil, modelerr.NewMalformedFieldError("", "", modelsheet.FieldWorksheetName, ws.Name, identity.ErrEmptyName)
	}
	if len(ws.Tables) == 0 {
		return nil, modelerr.NewUnsupportedShapeError(ws.Name, "worksheet has no tables")
	}

	d := &document{
		doc:     doc,
		tables:  identity.NewIndex(len(doc.Tables)),
		joins:   identity.NewIndex(len(ws.Joins)),
		columns: make(map[string]columnRef),
		exposed: make(map[string]bool),
	}

	for tIdx, t := range doc.Tables {
		if _, err := identity.Table(t.Name); err != nil {
			return nil, modelerr.NewMalformedFieldError("", "", modelsheet.FieldTable, t.Name, err)
		}
		if _, err := d.tables.Add(t.Name); err != nil {
			return nil, modelerr.NewUnsupportedShapeError(t.Name, "logical table is defined more than once")
		}
		for cIdx, col := range t.Columns {
			if col.DbColumnName != "" && col.DbColumnName != col.Name {
				return nil, modelerr.NewUnsupportedShapeError(
					t.Name, "column %q has db column name %q", col.Name, col.DbColumnName,
				)
			}
			id, err := identity.Column(t.Name, col.Name)
			if err != nil {
				return nil, modelerr.NewMalformedFieldError(t.Name, "", modelsheet.FieldColumn, col.Name, err)
			}
			if _, ok := d.columns[id]; ok {
				return nil, modelerr.NewUnsupportedShapeError(t.Name, "column %q is defined more than once", col.Name)
			}
			d.columns[id] = columnRef{table: tIdx, column: cIdx}
		}
	}

	seen := make(map[string]struct{}, len(ws.Tables))
	for _, t := range ws.Tables {
		if !d.tables.Contains(t.Name) {
			return nil, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindWorksheetTable, t.Name, ws.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return nil, modelerr.NewUnsupportedShapeError(ws.Name, "table %q is listed more than once", t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	for _, j := range ws.Joins {
		if _, err := d.joins.Add(j.Name); err != nil {
			return nil, modelerr.NewUnsupportedShapeError(j.Name, "join name is used more than once")
		}
		if !d.tables.Contains(j.Source) {
			return nil, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindTable, j.Source, j.Name)
		}
		if !d.tables.Contains(j.Destination) {
			return nil, modelerr.NewDanglingReferenceError(modelerr.ReferenceKindTable, j.Destination, j.Name)
		}
		if j.Source == j.Destination {
			return nil, modelerr.NewUnsupportedShapeError(j.Name, "table %q joins with itself", j.Source)
		}
		if !j.Type.Valid() {
			return nil, modelerr.NewMalformedFieldError(
				j.Source, "", modelsheet.FieldJoinType, string(j.Type), errUnknownJoinType,
			)
		}
	}
	return d, nil
}

// checkRelations matches the relations of the logical tables with the worksheet joins one to one.
func (d *document) checkRelations() error {
	ws := d.doc.Worksheet
	mirrored := make([]bool, len(ws.Joins))
	for _, t := range d.doc.Tables {
		if len(t.JoinsWith) > 1 {
			return modelerr.NewUnsupportedShapeError(
				t.Name, "%d outgoing relations, a table row holds at most one join", len(t.JoinsWith),
			)
		}
		for _, rel := range t.JoinsWith {
			idx, err := d.joins.Resolve(rel.Name)
			if err != nil {
				return modelerr.NewDanglingReferenceError(modelerr.ReferenceKindJoin, rel.Name, t.Name)
			}
			j := ws.Joins[idx]
			if j.Source != t.Name || j.Destination != rel.Destination.Name {
				return modelerr.NewUnsupportedShapeError(
					rel.Name, "relation %q -> %q does not match join %q -> %q",
					t.Name, rel.Destination.Name, j.Source, j.Destination,
				)
			}
			if rel.Type != j.Type {
				return modelerr.NewUnsupportedShapeError(
					rel.Name, "relation type %q does not match join type %q", rel.Type, j.Type,
				)
			}
			if rel.On != "" && rel.On != t.Connection.Name {
				return modelerr.NewUnsupportedShapeError(
					rel.Name, "join condition %q is not expressible in a table row", rel.On,
				)
			}
			mirrored[idx] = true
		}
	}
	for idx, ok := range mirrored {
		if !ok {
			return modelerr.NewUnsupportedShapeError(ws.Joins[idx].Name, "join has no relation on the source table")
		}
	}
	return nil
}

// checkTablePaths compares the table paths with the ones the model sheet rebuilds in the given mode.
// Any other path would be lost on the way back.
func (d *document) checkTablePaths(mode JoinPathMode) error {
	ws := d.doc.Worksheet
	for _, p := range ws.TablePaths {
		if !d.tables.Contains(p.Table) {
			return modelerr.NewDanglingReferenceError(modelerr.ReferenceKindTable, p.Table, "table path "+p.ID)
		}
		for _, jp := range p.JoinPath {
			for _, name := range jp.Join {
				if !d.joins.Contains(name) {
					return modelerr.NewDanglingReferenceError(modelerr.ReferenceKindJoin, name, "table path "+p.ID)
				}
			}
		}
	}

	expected, err := d.expectedTablePaths(mode)
	if err != nil {
		return err
	}
	if len(ws.TablePaths) != len(expected) {
		return modelerr.NewUnsupportedShapeError(
			ws.Name, "%d table paths, the model sheet holds one per logical table (%d)",
			len(ws.TablePaths), len(expected),
		)
	}
	for idx, p := range ws.TablePaths {
		exp := expected[idx]
		if p.ID != exp.ID || p.Table != exp.Table {
			return modelerr.NewUnsupportedShapeError(
				p.Table, "table path %q at position %d, expected the path of table %q", p.ID, idx, exp.Table,
			)
		}
		if !joinPathEqual(p.JoinPath, exp.JoinPath) {
			return modelerr.NewUnsupportedShapeError(
				p.Table, "join path %v does not match the %s join path %v",
				joinPathNames(p.JoinPath), mode, joinPathNames(exp.JoinPath),
			)
		}
	}
	return nil
}

// expectedTablePaths - one path per logical table in the document order, built the way ToDocument does.
func (d *document) expectedTablePaths(mode JoinPathMode) ([]tml.TablePath, error) {
	res := make([]tml.TablePath, 0, len(d.doc.Tables))
	if mode == JoinPathsDirect {
		for _, t := range d.doc.Tables {
			p := tml.TablePath{ID: t.Name, Table: t.Name}
			if len(t.JoinsWith) == 1 {
				p.JoinPath = []tml.JoinPath{{Join: []string{t.JoinsWith[0].Name}}}
			}
			res = append(res, p)
		}
		return res, nil
	}

	edges := make([]joingraph.Join, 0, len(d.doc.Worksheet.Joins))
	for _, j := range d.doc.Worksheet.Joins {
		edges = append(edges, joingraph.Join{Name: j.Name, Source: j.Source, Destination: j.Destination})
	}
	graph, err := joingraph.NewGraph(d.tables.Names(), edges)
	if err != nil {
		return nil, fmt.Errorf("build join graph: %w", err)
	}
	// resolved by resolveDocument
	root, _ := d.tables.Resolve(d.doc.Worksheet.Tables[0].Name)
	paths := graph.Paths(root)
	for idx, t := range d.doc.Tables {
		p := tml.TablePath{ID: t.Name, Table: t.Name}
		if len(paths[idx].Joins) > 0 {
			p.JoinPath = []tml.JoinPath{{Join: paths[idx].Joins}}
		}
		res = append(res, p)
	}
	return res, nil
}

func joinPathEqual(a, b []tml.JoinPath) bool {
	return slices.EqualFunc(a, b, func(x, y tml.JoinPath) bool {
		return slices.Equal(x.Join, y.Join)
	})
}

func joinPathNames(jp []tml.JoinPath) []string {
	var res []string
	for _, p := range jp {
		res = append(res, p.Join...)
	}
	return res
}

func (d *document) resolveWorksheetColumns() error {
	for _, wc := range d.doc.Worksheet.Columns {
		ref, ok := d.columns[wc.ColumnID]
		if !ok {
			return modelerr.NewDanglingReferenceError(modelerr.ReferenceKindColumn, wc.ColumnID, d.doc.Worksheet.Name)
		}
		if d.exposed[wc.ColumnID] {
			return modelerr.NewUnsupportedShapeError(wc.ColumnID, "worksheet column is defined more than once")
		}
		col := d.doc.Tables[ref.table].Columns[ref.column]
		if wc.Name != col.Name || wc.Description != col.Description || !wc.Properties.Equal(col.Properties) {
			return modelerr.NewUnsupportedShapeError(wc.ColumnID, "worksheet column differs from the logical column")
		}
		d.exposed[wc.ColumnID] = true
	}
	return nil
}

func (d *document) worksheetRows() []modelsheet.WorksheetRow {
	ws := d.doc.Worksheet
	res := make([]modelsheet.WorksheetRow, 0, len(ws.Tables))
	for _, t := range ws.Tables {
		res = append(res, modelsheet.WorksheetRow{
			Name:            ws.Name,
			Table:           t.Name,
			BypassRLS:       ws.Properties.IsBypassRLS,
			ProgressiveJoin: ws.Properties.JoinProgressive,
		})
	}
	return res
}

func (d *document) tableRows() []modelsheet.TableRow {
	ws := d.doc.Worksheet
	res := make([]modelsheet.TableRow, 0, len(d.doc.Tables))
	for _, t := range d.doc.Tables {
		row := modelsheet.TableRow{
			Name:       t.Name,
			Database:   t.DB,
			Schema:     t.Schema,
			DbTable:    t.DbTable,
			Connection: t.Connection.Name,
		}
		if len(t.JoinsWith) == 1 {
			rel := t.JoinsWith[0]
			// resolved by checkRelations
			idx, _ := d.joins.Resolve(rel.Name)
			row.Join = &modelsheet.TableJoin{
				Name:      rel.Name,
				JoinsWith: rel.Destination.Name,
				Type:      sheetJoinTypes[rel.Type],
				OneToOne:  ws.Joins[idx].IsOneToOne,
			}
		}
		res = append(res, row)
	}
	return res
}

func (d *document) attributeRows() []modelsheet.AttributeRow {
	var res []modelsheet.AttributeRow
	for _, t := range d.doc.Tables {
		for _, col := range t.Columns {
			// the id is valid since resolveDocument
			id, _ := identity.Column(t.Name, col.Name)
			res = append(res, attributeRow(t.Name, col, d.exposed[id]))
		}
	}
	return res
}
