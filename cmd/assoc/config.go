/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/assoc/apis"
	"dirpx.dev/assoc/config"
	"dirpx.dev/assoc/store/sqlstore"
)

const (
	keyRedeclare = "engine.redeclare"
	keyMaxDepth  = "engine.max_depth"
	keyDriver    = "store.driver"
	keyDSN       = "store.dsn"
	keyTable     = "store.table"
	keySchema    = "schema"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"schema":     keySchema,
	"driver":     keyDriver,
	"dsn":        keyDSN,
	"log-level":  keyLogLevel,
	"log-format": keyLogFormat,
}

// loadConfig reads the configuration file, the ASSOC_* environment and the
// flags of cmd, in increasing priority. A missing assoc.yaml in the working
// directory is not an error; a missing explicit file is.
func loadConfig(path string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(keyRedeclare, config.DefaultRedeclare.String())
	v.SetDefault(keyMaxDepth, config.DefaultMaxDepth)
	v.SetDefault(keyDriver, "sqlite")
	v.SetDefault(keyDSN, "assoc.db")
	v.SetDefault(keyTable, sqlstore.DefaultTable)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")

	v.SetEnvPrefix("ASSOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("ASSOC_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("assoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if cmd != nil {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}
	return v, nil
}

// engineConfig builds the engine configuration from v.
func engineConfig(v *viper.Viper) (apis.Config, error) {
	policy, err := apis.ParseRedeclarePolicy(v.GetString(keyRedeclare))
	if err != nil {
		return apis.Config{}, err
	}
	cfg := config.NewConfig(
		config.WithRedeclare(policy),
		config.WithMaxDepth(v.GetInt(keyMaxDepth)),
	)
	return cfg, config.Validate(cfg)
}

// newLogger builds the process logger writing to w.
func newLogger(v *viper.Viper, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(v.GetString(keyLogFormat)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("log format %q: want text or json", v.GetString(keyLogFormat))
}
