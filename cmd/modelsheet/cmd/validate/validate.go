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

package validate

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
		Use:   "validate",
		Short: "check that a model sheet converts into a TML document and back",
		Long: "Converts the model sheet into a TML document and the document back into a model sheet. " +
			"Prints the collected warnings and exits with a non-zero code when the conversion fails.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			code, err := cmdrun.RunValidate(Config, os.Stdout)
			if err != nil {
				log.Error().Err(err).Msg("")
			}
			os.Exit(code)
		},
	}
	Config = domains.NewConfig()
)

func init() {
	Cmd.Flags().String("input", "", "model sheet directory (csv) or file (yaml)")
	Cmd.Flags().String("input-format", "csv", "model sheet format [csv|yaml]")
	Cmd.Flags().String("join-paths", "transitive", "table paths building mode [transitive|direct]")
	Cmd.Flags().String("format", "text", "warnings output format [text|json]")

	for flagName, key := range map[string]string{
		"input":        "input.path",
		"input-format": "input.format",
		"join-paths":   "convert.join_paths",
		"format":       "inspect.format",
	} {
		if err := configUtils.AnnotateFlag(Cmd, flagName, key); err != nil {
			log.Fatal().Err(err).Msg("fatal")
		}
	}
}
