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

// Package sheetio reads and writes model sheets. A model sheet is stored either as a directory of three
// CSV files (worksheets.csv, tables.csv, attributes.csv) or as a single YAML file.
package sheetio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tssrikanth/codex2021/internal/storages/directory"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var (
	errUnknownFormat = errors.New("unknown model sheet format")
	errEmptyPath     = errors.New("path is required")
)

func ParseFormat(v string) (Format, error) {
	switch f := Format(v); f {
	case FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%q: %w", v, errUnknownFormat)
	}
}

// Read - reads the model sheet stored in path. For FormatCSV path is a directory.
func Read(ctx context.Context, format Format, path string) (modelsheet.RawModelSheet, error) {
	if path == "" {
		return modelsheet.RawModelSheet{}, errEmptyPath
	}
	log.Ctx(ctx).Debug().
		Str("Format", string(format)).
		Str("Path", path).
		Msg("reading model sheet")
	switch format {
	case FormatCSV:
		st, err := directory.NewStorage(&directory.Config{Path: path})
		if err != nil {
			return modelsheet.RawModelSheet{}, fmt.Errorf("open directory: %w", err)
		}
		return ReadCSV(ctx, st)
	case FormatYAML:
		f, err := os.Open(path)
		if err != nil {
			return modelsheet.RawModelSheet{}, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		return ReadYAML(f)
	default:
		return modelsheet.RawModelSheet{}, fmt.Errorf("%q: %w", format, errUnknownFormat)
	}
}

// Write - writes the model sheet into path. A YAML model sheet with an empty path is written into stdout.
func Write(ctx context.Context, format Format, path string, raw modelsheet.RawModelSheet, stdout io.Writer) error {
	log.Ctx(ctx).Debug().
		Str("Format", string(format)).
		Str("Path", path).
		Msg("writing model sheet")
	switch format {
	case FormatCSV:
		if path == "" {
			return fmt.Errorf("csv output directory: %w", errEmptyPath)
		}
		st, err := directory.NewStorage(&directory.Config{Path: path})
		if err != nil {
			return fmt.Errorf("open directory: %w", err)
		}
		return WriteCSV(ctx, st, raw)
	case FormatYAML:
		if path == "" {
			return WriteYAML(stdout, raw)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		if err := WriteYAML(f, raw); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%q: %w", format, errUnknownFormat)
	}
}
