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

package sheetio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tssrikanth/codex2021/pkg/modelsheet"
)

const yamlIndent = 2

var errEmptySheet = errors.New("empty model sheet")

func ReadYAML(r io.Reader) (modelsheet.RawModelSheet, error) {
	var raw modelsheet.RawModelSheet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return modelsheet.RawModelSheet{}, errEmptySheet
		}
		return modelsheet.RawModelSheet{}, fmt.Errorf("decode model sheet: %w", err)
	}
	return raw, nil
}

func WriteYAML(w io.Writer, raw modelsheet.RawModelSheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode model sheet: %w", err)
	}
	return enc.Close()
}
