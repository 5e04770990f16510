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
)

// RunToTML - converts the model sheet into the document and writes it as YAML.
func RunToTML(cfg *domains.Config, stdout io.Writer) error {
	if err := setupInfrastructure(cfg); err != nil {
		return fmt.Errorf("setup infrastructure: %w", err)
	}
	ctx := setupContext(context.Background())

	doc, err := readModelSheetDocument(ctx, cfg)
	if err != nil {
		return err
	}
	logWarnings(ctx)
	if err := writeDocument(cfg.Output.Path, doc, stdout); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	log.Ctx(ctx).Info().
		Str("Worksheet", doc.Worksheet.Name).
		Int("TablesCount", len(doc.Tables)).
		Msg("model sheet converted")
	return nil
}
