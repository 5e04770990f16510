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

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	origLogger := log.Logger
	origDefault := zerolog.DefaultContextLogger
	defer func() {
		log.Logger = origLogger
		zerolog.DefaultContextLogger = origDefault
	}()

	buf := bytes.NewBuffer(nil)
	require.NoError(t, setLogger(buf, zerolog.LevelInfoValue, LogFormatJsonValue))

	log.Ctx(context.Background()).Debug().Msg("hidden")
	log.Ctx(context.Background()).Info().Str("Worksheet", "Sales").Msg("converted")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"Worksheet":"Sales"`)
	assert.Contains(t, buf.String(), `"message":"converted"`)
}

func TestSetLogger_Errors(t *testing.T) {
	err := setLogger(bytes.NewBuffer(nil), "trace", LogFormatTextValue)
	require.ErrorIs(t, err, errUnknownLogLevel)

	err = setLogger(bytes.NewBuffer(nil), zerolog.LevelInfoValue, "xml")
	require.ErrorIs(t, err, errUnknownLogFormat)
}
