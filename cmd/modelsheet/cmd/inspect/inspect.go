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

package inspect

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
		Use:   "inspect",
		Short: "print the summary of a TML semantic document",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.RunInspect(Config, os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()
)

func init() {
	Cmd.Flags().String("input", "", "TML file")
	Cmd.Flags().String("format", "text", "output format [text|json]")

	if err := configUtils.AnnotateFlag(Cmd, "input", "input.path"); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
	if err := configUtils.AnnotateFlag(Cmd, "format", "inspect.format"); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
