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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configKeyAnnotation = "config_key"

// AnnotateFlag - marks the flag of the command as the source of the config key. The binding is
// done by BindAnnotatedFlags for the command being executed only, so several commands may provide
// the same key with their own flags.
func AnnotateFlag(cmd *cobra.Command, flagName, configKey string) error {
	if err := cmd.Flags().SetAnnotation(flagName, configKeyAnnotation, []string{configKey}); err != nil {
		return fmt.Errorf("annotate flag %q: %w", flagName, err)
	}
	return nil
}

// BindAnnotatedFlags - binds the annotated flags of cmd to their viper keys.
func BindAnnotatedFlags(cmd *cobra.Command, v *viper.Viper) error {
	var err error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		keys, ok := flag.Annotations[configKeyAnnotation]
		if !ok || err != nil {
			return
		}
		for _, key := range keys {
			if bindErr := v.BindPFlag(key, flag); bindErr != nil {
				err = fmt.Errorf("bind flag %q to %q: %w", flag.Name, key, bindErr)
				return
			}
		}
	})
	return err
}
