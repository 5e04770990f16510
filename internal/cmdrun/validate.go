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
	"github.com/tssrikanth/codex2021/internal/report"
	"github.com/tssrikanth/codex2021/internal/validationcollector"
)

// RunValidate - converts the model sheet forth and back and prints the warnings. The exit code is
// non-zero when any direction fails.
func RunValidate(cfg *domains.Config, stdout io.Writer) (int, error) {
	if err := setupInfrastructure(cfg); err != nil {
		return nonZeroExitCode, fmt.Errorf("setup infrastructure: %w", err)
	}
	if err := cfg.Inspect.Format.Validate(); err != nil {
		return nonZeroExitCode, err
	}
	ctx := setupContext(context.Background())

	doc, err := readModelSheetDocument(ctx, cfg)
	if err != nil {
		return nonZeroExitCode, err
	}
	c, err := newConverter(cfg)
	if err != nil {
		return nonZeroExitCode, err
	}
	if _, err := c.ToModelSheet(ctx, doc); err != nil {
		return nonZeroExitCode, fmt.Errorf("convert document back: %w", err)
	}

	warnings := validationcollector.FromContext(ctx).Warnings()
	if err := report.RenderWarnings(stdout, cfg.Inspect.Format, warnings); err != nil {
		return nonZeroExitCode, fmt.Errorf("render warnings: %w", err)
	}
	log.Ctx(ctx).Info().
		Str("Worksheet", doc.Worksheet.Name).
		Int("WarningsCount", len(warnings)).
		Msg("model sheet is valid")
	return zeroExitCode, nil
}
