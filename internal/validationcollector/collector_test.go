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

package validationcollector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_WithMeta(t *testing.T) {
	root := NewCollector()
	ctx := WithCollector(context.Background(), root)
	ctx = WithMeta(ctx, MetaKeyWorksheetName, "Sales")

	child := FromContext(ctx).WithMeta(MetaKeyTableName, "orders")
	child.Add(NewWarning().SetMsg("table is unreachable"))

	FromContext(ctx).Add(
		NewWarning().
			SetSeverity(SeverityInfo).
			SetMsgf("%d tables", 2).
			AddMeta(MetaKeyWorksheetName, "Override"),
	)

	require.Equal(t, 2, root.Len())
	assert.True(t, root.HasWarnings())

	warnings := root.Warnings()
	assert.Equal(t, map[string]any{
		MetaKeyWorksheetName: "Sales",
		MetaKeyTableName:     "orders",
	}, warnings[0].Meta)
	assert.Equal(t, "warning: table is unreachable (TableName=orders WorksheetName=Sales)", warnings[0].String())

	assert.Equal(t, SeverityInfo, warnings[1].Severity)
	assert.Equal(t, "Override", warnings[1].Meta[MetaKeyWorksheetName])

	assert.Equal(t, map[string]any{MetaKeyWorksheetName: "Sales", MetaKeyTableName: "orders"}, child.Meta())
	assert.Same(t, root, child.Root())
}

func TestFromContext_WithoutCollector(t *testing.T) {
	a := FromContext(context.Background())
	b := FromContext(context.Background())
	a.Add(NewWarning().SetMsg("a"))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "warning: a", a.Warnings()[0].String())
}

func TestMetaFromPairs_Panics(t *testing.T) {
	assert.Panics(t, func() { NewCollector().WithMeta("key") })
	assert.Panics(t, func() { NewCollector().WithMeta(1, "value") })
}
