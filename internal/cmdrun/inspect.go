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
	"fmt"
	"io"

	"github.com/tssrikanth/codex2021/internal/domains"
	"github.com/tssrikanth/codex2021/internal/report"
)

// RunInspect - prints the summary of the document stored in cfg.Input.Path.
func RunInspect(cfg *domains.Config, stdout io.Writer) error {
	if err := setupInfrastructure(cfg); err != nil {
		return fmt.Errorf("setup infrastructure: %w", err)
	}
	if err := cfg.Inspect.Format.Validate(); err != nil {
		return err
	}
	doc, err := readDocument(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if err := report.Render(stdout, cfg.Inspect.Format, report.NewSummary(doc, nil)); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}
