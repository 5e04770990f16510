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

// Package cmdrun contains the logic of the CLI commands. The commands only parse the flags and call
// the Run functions with the loaded config.
package cmdrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tssrikanth/codex2021/internal/domains"
	"github.com/tssrikanth/codex2021/internal/sheetio"
	"github.com/tssrikanth/codex2021/internal/utils/logger"
	"github.com/tssrikanth/codex2021/internal/validationcollector"
	"github.com/tssrikanth/codex2021/pkg/convert"
	"github.com/tssrikanth/codex2021/pkg/tml"
)

const (
	nonZeroExitCode = 1
	zeroExitCode    = 0
)

var errEmptyInput = errors.New("input path is required")

func setupInfrastructure(cfg *domains.Config) error {
	if err := logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	return nil
}

func setupContext(ctx context.Context) context.Context {
	ctx = log.Logger.WithContext(ctx)
	return validationcollector.WithCollector(ctx, validationcollector.NewCollector())
}

func newConverter(cfg *domains.Config) (*convert.Converter, error) {
	c, err := convert.NewConverter(cfg.Convert.ConverterOptions())
	if err != nil {
		return nil, fmt.Errorf("init converter: %w", err)
	}
	return c, nil
}

// readModelSheetDocument - reads the model sheet from cfg.Input and converts it into the document.
func readModelSheetDocument(ctx context.Context, cfg *domains.Config) (tml.Document, error) {
	c, err := newConverter(cfg)
	if err != nil {
		return tml.Document{}, err
	}
	raw, err := sheetio.Read(ctx, cfg.Input.Format, cfg.Input.Path)
	if err != nil {
		return tml.Document{}, fmt.Errorf("read model sheet: %w", err)
	}
	doc, err := c.ParseAndConvert(ctx, raw, cfg.Convert.SheetOptions())
	if err != nil {
		return tml.Document{}, fmt.Errorf("convert model sheet: %w", err)
	}
	return doc, nil
}

func readDocument(path string) (tml.Document, error) {
	if path == "" {
		return tml.Document{}, errEmptyInput
	}
	f, err := os.Open(path)
	if err != nil {
		return tml.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return tml.Decode(f)
}

func writeDocument(path string, doc tml.Document, stdout io.Writer) error {
	if path == "" {
		return tml.Encode(stdout, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create document file: %w", err)
	}
	if err := tml.Encode(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func logWarnings(ctx context.Context) {
	for _, w := range validationcollector.FromContext(ctx).Warnings() {
		event := log.Ctx(ctx).Warn()
		if w.Severity == validationcollector.SeverityInfo {
			event = log.Ctx(ctx).Info()
		}
		event.Fields(w.Meta).Msg(w.Msg)
	}
}
