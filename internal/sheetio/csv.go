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

package sheetio

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/tssrikanth/codex2021/internal/storages"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
)

const (
	WorksheetsFile = "worksheets.csv"
	TablesFile     = "tables.csv"
	AttributesFile = "attributes.csv"

	byteOrderMark = "\ufeff"
)

var (
	errMissingSheet    = errors.New("model sheet file is missing")
	errEmptyHeader     = errors.New("header row is missing")
	errUnknownColumn   = errors.New("unknown column")
	errDuplicateColumn = errors.New("duplicate column")
	errMissingColumn   = errors.New("required column is missing")
	errTooManyCells    = errors.New("row has more cells than the header")
)

// ReadCSV - reads worksheets.csv and tables.csv (both required) and attributes.csv (optional) from st.
func ReadCSV(ctx context.Context, st storages.Storager) (modelsheet.RawModelSheet, error) {
	var (
		raw modelsheet.RawModelSheet
		err error
	)
	raw.Worksheets, err = readSheet[modelsheet.RawWorksheetRow](
		ctx, st, WorksheetsFile, modelsheet.WorksheetHeader, true,
		modelsheet.FieldWorksheetName, modelsheet.FieldTables,
	)
	if err != nil {
		return modelsheet.RawModelSheet{}, err
	}
	raw.Tables, err = readSheet[modelsheet.RawTableRow](
		ctx, st, TablesFile, modelsheet.TableHeader, true, modelsheet.FieldTable,
	)
	if err != nil {
		return modelsheet.RawModelSheet{}, err
	}
	raw.Attributes, err = readSheet[modelsheet.RawAttributeRow](
		ctx, st, AttributesFile, modelsheet.AttributeHeader, false,
		modelsheet.FieldTable, modelsheet.FieldColumn,
	)
	if err != nil {
		return modelsheet.RawModelSheet{}, err
	}
	return raw, nil
}

// WriteCSV - writes the three sheets into st. The columns follow the model sheet header order.
func WriteCSV(ctx context.Context, st storages.Storager, raw modelsheet.RawModelSheet) error {
	if err := writeSheet(ctx, st, WorksheetsFile, modelsheet.WorksheetHeader, raw.Worksheets); err != nil {
		return err
	}
	if err := writeSheet(ctx, st, TablesFile, modelsheet.TableHeader, raw.Tables); err != nil {
		return err
	}
	return writeSheet(ctx, st, AttributesFile, modelsheet.AttributeHeader, raw.Attributes)
}

func readSheet[T any](
	ctx context.Context, st storages.Storager, name string, header []string, required bool, mandatory ...string,
) ([]T, error) {
	exists, err := st.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", name, err)
	}
	if !exists {
		if required {
			return nil, fmt.Errorf("%s in %s: %w", name, st.GetCwd(), errMissingSheet)
		}
		log.Ctx(ctx).Debug().Str("File", name).Str("Dir", st.GetCwd()).Msg("optional sheet is missing")
		return nil, nil
	}

	r, err := st.GetObject(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, errEmptyHeader)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	columns, err := parseHeader(record, header, mandatory)
	if err != nil {
		return nil, fmt.Errorf("%s header: %w", name, err)
	}

	var res []T
	for {
		record, err = reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if len(record) > len(columns) {
			return nil, fmt.Errorf("%s line %d: %w", name, line, errTooManyCells)
		}
		cells := make(map[string]any, len(columns))
		for idx, value := range record {
			cells[columns[idx]] = value
		}
		var row T
		if err := mapstructure.Decode(cells, &row); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		res = append(res, row)
	}
	log.Ctx(ctx).Debug().Str("File", name).Int("RowsCount", len(res)).Msg("sheet read")
	return res, nil
}

// parseHeader - normalizes the header cells: case and surrounding spaces are ignored, inner spaces
// match underscores.
func parseHeader(record, known, mandatory []string) ([]string, error) {
	res := make([]string, 0, len(record))
	for idx, cell := range record {
		if idx == 0 {
			cell = strings.TrimPrefix(cell, byteOrderMark)
		}
		column := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		if !slices.Contains(known, column) {
			return nil, fmt.Errorf("%q: %w", cell, errUnknownColumn)
		}
		if slices.Contains(res, column) {
			return nil, fmt.Errorf("%q: %w", cell, errDuplicateColumn)
		}
		res = append(res, column)
	}
	for _, m := range mandatory {
		if !slices.Contains(res, m) {
			return nil, fmt.Errorf("%q: %w", m, errMissingColumn)
		}
	}
	return res, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func writeSheet[T any](ctx context.Context, st storages.Storager, name string, header []string, rows []T) error {
	buf := bytes.NewBuffer(nil)
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for idx, row := range rows {
		var cells map[string]any
		if err := mapstructure.Decode(row, &cells); err != nil {
			return fmt.Errorf("%s row %d: %w", name, idx, err)
		}
		record := make([]string, 0, len(header))
		for _, column := range header {
			record = append(record, cast.ToString(cells[column]))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, idx, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := st.PutObject(ctx, name, buf); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
