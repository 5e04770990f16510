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

package domains

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tssrikanth/codex2021/internal/report"
	"github.com/tssrikanth/codex2021/internal/sheetio"
	"github.com/tssrikanth/codex2021/internal/utils/logger"
	"github.com/tssrikanth/codex2021/pkg/convert"
	"github.com/tssrikanth/codex2021/pkg/modelsheet"
)

var (
	Cfg  *Config
	once sync.Once
)

func NewConfig() *Config {
	once.Do(
		func() {
			Cfg = &Config{
				Log: LogConfig{
					Format: logger.LogFormatTextValue,
					Level:  zerolog.LevelInfoValue,
				},
				Convert: ConvertConfig{
					JoinPaths:        convert.JoinPathsTransitive,
					SynonymDelimiter: modelsheet.DefaultSynonymDelimiter,
					Parallelism:      1,
				},
				Input: InputConfig{
					Format: sheetio.FormatCSV,
				},
				Output: OutputConfig{
					Format: sheetio.FormatCSV,
				},
				Inspect: InspectConfig{
					Format: report.FormatNameText,
				},
			}
		},
	)
	return Cfg
}

type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert" json:"convert"`
	Input   InputConfig   `mapstructure:"input" yaml:"input" json:"input"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output" json:"output"`
	Inspect InspectConfig `mapstructure:"inspect" yaml:"inspect" json:"inspect"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type ConvertConfig struct {
	// JoinPaths - transitive|direct
	JoinPaths        convert.JoinPathMode `mapstructure:"join_paths" yaml:"join_paths" json:"join_paths,omitempty"`
	SynonymDelimiter string               `mapstructure:"synonym_delimiter" yaml:"synonym_delimiter" json:"synonym_delimiter,omitempty"`
	Parallelism      int                  `mapstructure:"parallelism" yaml:"parallelism" json:"parallelism,omitempty"`
}

func (c ConvertConfig) ConverterOptions() convert.Options {
	return convert.Options{
		JoinPaths:   c.JoinPaths,
		Parallelism: c.Parallelism,
	}
}

func (c ConvertConfig) SheetOptions() modelsheet.Options {
	return modelsheet.Options{
		SynonymDelimiter: c.SynonymDelimiter,
	}
}

type InputConfig struct {
	Format sheetio.Format `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Path   string         `mapstructure:"path" yaml:"path" json:"path,omitempty"`
}

type OutputConfig struct {
	Format sheetio.Format `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	// Path - the output file or directory. Empty means stdout where the format allows it.
	Path string `mapstructure:"path" yaml:"path" json:"path,omitempty"`
}

type InspectConfig struct {
	Format report.OutputFormat `mapstructure:"format" yaml:"format" json:"format,omitempty"`
}
