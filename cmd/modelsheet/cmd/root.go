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

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tssrikanth/codex2021/cmd/modelsheet/cmd/inspect"
	"github.com/tssrikanth/codex2021/cmd/modelsheet/cmd/to_modelsheet"
	"github.com/tssrikanth/codex2021/cmd/modelsheet/cmd/to_tml"
	"github.com/tssrikanth/codex2021/cmd/modelsheet/cmd/validate"
	"github.com/tssrikanth/codex2021/internal/domains"
	configUtils "github.com/tssrikanth/codex2021/internal/utils/config"
)

const (
	appName        = "modelsheet"
	configFileName = "config.yml"
)

var (
	Version    string
	Commit     string
	CommitDate string

	RootCmd = &cobra.Command{
		Use:   appName,
		Short: "modelsheet converts between a model sheet and a TML semantic document",
		Long: "Converts a flat model sheet (worksheets, tables and attributes sheets) into a TML " +
			"semantic document (worksheet, logical tables, joins and column properties) and back. " +
			"Model sheets are stored as a directory of CSV files or as a single YAML file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configUtils.BindAnnotatedFlags(cmd, viper.GetViper()); err != nil {
				return err
			}
			return loadConfig()
		},
		SilenceUsage: true,
	}
	cfgFile string
	Config  = domains.NewConfig()
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		RootCmd.Version = fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	} else {
		RootCmd.Version = fmt.Sprintf("%s %s", Commit, CommitDate)
	}

	cobra.OnInitialize(initConfig)
	// Removing short help flag from default
	RootCmd.PersistentFlags().BoolP("help", "", false, "help for modelsheet")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	RootCmd.PersistentFlags().StringP("log-format", "", "text", "logging format [text|json]")
	RootCmd.PersistentFlags().StringP("log-level", "", zerolog.LevelInfoValue,
		fmt.Sprintf(
			"logging level %s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
		),
	)

	RootCmd.AddCommand(to_tml.Cmd)
	RootCmd.AddCommand(to_modelsheet.Cmd)
	RootCmd.AddCommand(inspect.Cmd)
	RootCmd.AddCommand(validate.Cmd)

	if err := viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	if err := viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	RootCmd.InitDefaultCompletionCmd()
	RootCmd.InitDefaultHelpCmd()
	RootCmd.InitDefaultVersionFlag()

	for _, c := range RootCmd.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
}

// defaultConfigFile - the config file in the user config directory. Empty when it does not exist.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appName, configFileName)
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("Path", p).Msg("cannot check default config file")
		}
		return ""
	}
	return p
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Msg("error reading from config file")
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func loadConfig() error {
	decoderCfg := func(cfg *mapstructure.DecoderConfig) {
		cfg.DecodeHook = configUtils.DecodeHook()
	}
	if err := viper.Unmarshal(Config, decoderCfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}
