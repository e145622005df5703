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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/assoc"
	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/schema"
	"dirpx.dev/assoc/store/sqlstore"
)

// version is set at link time.
var version = "dev"

var errNoSchema = errors.New("no schema: set --schema or the schema config key")

// app carries the state shared by subcommands after PersistentPreRunE.
type app struct {
	cfgPath string
	v       *viper.Viper
	logger  *slog.Logger
	catalog *schema.Catalog
	store   *sqlstore.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "assoc",
		Short:        "Materialize resource trees from a relationship schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default ./assoc.yaml)")
	pf.String("schema", "", "schema file")
	pf.String("driver", "", "store driver: sqlite, mysql or postgres")
	pf.String("dsn", "", "store data source name")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	root.AddCommand(
		newMaterializeCmd(a),
		newDumpCmd(a),
		newTablesCmd(a),
		newPutCmd(a),
		newGetCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, configures the engine and declares the schema.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	v, err := loadConfig(a.cfgPath, cmd)
	if err != nil {
		return err
	}
	a.v = v

	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	cfg, err := engineConfig(v)
	if err != nil {
		return err
	}
	if err := assoc.SetConfig(cfg); err != nil {
		return err
	}

	path := v.GetString(keySchema)
	if path == "" {
		return nil
	}
	f, err := schema.LoadFile(path)
	if err != nil {
		return err
	}
	cat, err := schema.Build(f)
	if err != nil {
		return fmt.Errorf("schema %s: %w", path, err)
	}
	if err := cat.Apply(assoc.Declare); err != nil {
		return fmt.Errorf("schema %s: %w", path, err)
	}
	a.catalog = cat
	a.logger.Debug("schema declared", "path", path,
		"classes", len(cat.Classes()), "collections", len(cat.Collections()))
	return nil
}

// class looks up a model class in the loaded schema.
func (a *app) class(name string) (*resource.Class, error) {
	if a.catalog == nil {
		return nil, errNoSchema
	}
	c, ok := a.catalog.Class(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", schema.ErrUnknownName, name)
	}
	return c, nil
}

// openStore opens the configured store once per invocation.
func (a *app) openStore(ctx context.Context) (*sqlstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := sqlstore.Open(ctx, a.v.GetString(keyDriver), a.v.GetString(keyDSN),
		sqlstore.WithLogger(a.logger),
		sqlstore.WithTable(a.v.GetString(keyTable)),
	)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
