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

package to_modelsheet

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tssrikanth/codex2021/internal/cmdrun"
	"github.com/tssrikanth/codex2021/internal/domains"
	configUtils "github.com/tssrikanth/codex2021/internal/utils/config"
)

var (
	Cmd = &cobra.Command{
		Use:   "to-modelsheet",
		Short: "convert a TML semantic document into a model sheet",
		Example: "  modelsheet to-modelsheet --input sales.worksheet.tml --output ./sales\n" +
			"  modelsheet to-modelsheet --input sales.worksheet.tml --output-format yaml",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.RunToModelSheet(Config, os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()
)

func init() {
	Cmd.Flags().String("input", "", "TML file")
	Cmd.Flags().String("output", "", "model sheet directory (csv) or file (yaml). Stdout for yaml if empty")
	Cmd.Flags().String("output-format", "csv", "model sheet format [csv|yaml]")
	Cmd.Flags().String("join-paths", "transitive", "table paths mode the document was built with [transitive|direct]")
	Cmd.Flags().String("synonym-delimiter", ",", "delimiter of the synonyms cell")

	for flagName, key := range map[string]string{
		"input":             "input.path",
		"output":            "output.path",
		"output-format":     "output.format",
		"join-paths":        "convert.join_paths",
		"synonym-delimiter": "convert.synonym_delimiter",
	} {
		if err := configUtils.AnnotateFlag(Cmd, flagName, key); err != nil {
			log.Fatal().Err(err).Msg("fatal")
		}
	}
}
