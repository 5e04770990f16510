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

package cmdrun

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/tssrikanth/codex2021/internal/domains"
	"github.com/tssrikanth/codex2021/internal/sheetio"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
)

// RunToModelSheet - converts the document stored in cfg.Input.Path into the model sheet.
func RunToModelSheet(cfg *domains.Config, stdout io.Writer) error {
	if err := setupInfrastructure(cfg); err != nil {
		return fmt.Errorf("setup infrastructure: %w", err)
	}
	ctx := setupContext(context.Background())

	c, err := newConverter(cfg)
	if err != nil {
		return err
	}
	doc, err := readDocument(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	m, err := c.ToModelSheet(ctx, doc)
	if err != nil {
		return fmt.Errorf("convert document: %w", err)
	}
	raw, err := modelsheet.Format(m, cfg.Convert.SheetOptions())
	if err != nil {
		return fmt.Errorf("format model sheet: %w", err)
	}
	if err := sheetio.Write(ctx, cfg.Output.Format, cfg.Output.Path, raw, stdout); err != nil {
		return fmt.Errorf("write model sheet: %w", err)
	}
	log.Ctx(ctx).Info().
		Str("Worksheet", doc.Worksheet.Name).
		Int("AttributesCount", len(raw.Attributes)).
		Msg("document converted")
	return nil
}
