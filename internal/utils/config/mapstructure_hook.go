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

package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/tssrikanth/codex2021/internal/report"
	"github.com/tssrikanth/codex2021/internal/sheetio"
	"github.com/tssrikanth/codex2021/pkg/convert"
)

// JoinPathModeHookFunc - parses the join path mode string. An empty string is the default mode.
func JoinPathModeHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(convert.JoinPathMode("")) {
			return data, nil
		}
		return convert.ParseJoinPathMode(data.(string))
	}
}

// SheetFormatHookFunc - parses the model sheet format string.
func SheetFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(sheetio.Format("")) {
			return data, nil
		}
		return sheetio.ParseFormat(data.(string))
	}
}

// OutputFormatHookFunc - validates the report output format string.
func OutputFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(report.OutputFormat("")) {
			return data, nil
		}
		res := report.OutputFormat(data.(string))
		if err := res.Validate(); err != nil {
			return nil, err
		}
		return res, nil
	}
}

// DecodeHook - all the hooks required by domains.Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		JoinPathModeHookFunc(),
		SheetFormatHookFunc(),
		OutputFormatHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
