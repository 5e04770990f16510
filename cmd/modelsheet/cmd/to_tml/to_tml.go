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

package to_tml

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
		Use:   "to-tml",
		Short: "convert a model sheet into a TML semantic document",
		Example: "  modelsheet to-tml --input ./sales --output sales.worksheet.tml\n" +
			"  modelsheet to-tml --input sales.yml --input-format yaml --join-paths direct",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.RunToTML(Config, os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()
)

func init() {
	Cmd.Flags().String("input", "", "model sheet directory (csv) or file (yaml)")
	Cmd.Flags().String("input-format", "csv", "model sheet format [csv|yaml]")
	Cmd.Flags().String("output", "", "TML file. Stdout if empty")
	Cmd.Flags().String("join-paths", "transitive", "table paths building mode [transitive|direct]")
	Cmd.Flags().String("synonym-delimiter", ",", "delimiter of the synonyms cell")
	Cmd.Flags().Int("parallelism", 1, "number of logical tables built at once")

	for flagName, key := range map[string]string{
		"input":             "input.path",
		"input-format":      "input.format",
		"output":            "output.path",
		"join-paths":        "convert.join_paths",
		"synonym-delimiter": "convert.synonym_delimiter",
		"parallelism":       "convert.parallelism",
	} {
		if err := configUtils.AnnotateFlag(Cmd, flagName, key); err != nil {
			log.Fatal().Err(err).Msg("fatal")
		}
	}
}
