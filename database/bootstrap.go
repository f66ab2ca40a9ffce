/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/uptrace/bun"
)

// Bootstrapper creates the registered tables if they are missing. It never
// alters an existing table.
type Bootstrapper struct {
	db     *bun.DB
	logger Logger
}

func NewBootstrapper(db *bun.DB, logger Logger) *Bootstrapper {
	if logger == nil {
		logger = GetLogger()
	}
	return &Bootstrapper{db: db, logger: logger}
}

// Run creates tables when cfg asks for it and then adds foreign keys.
func (b *Bootstrapper) Run(ctx context.Context, cfg BootstrapConfig) error {
	if !cfg.CreateTablesOnStartup {
		return nil
	}
	err := b.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return b.CreateTables(ctx, tx)
	})
	if err != nil {
		return err
	}
	if !cfg.EnableForeignKey {
		return nil
	}

	fkm := NewForeignKeyManager(b.logger, cfg.ForeignKeyFile)
	if errs := fkm.ValidateConstraints(); len(errs) > 0 {
		for _, e := range errs {
			b.logger.Error("Foreign key constraint validation failed", "error", e)
		}
		return fmt.Errorf("foreign key constraint validation failed, %d errors in total", len(errs))
	}
	return fkm.AddAllForeignKeys(ctx, b.db)
}

// CreateTables issues CREATE TABLE IF NOT EXISTS per registered model in
// priority order.
func (b *Bootstrapper) CreateTables(ctx context.Context, db bun.IDB) error {
	for _, model := range RegisteredModelInstances() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %s: %w", modelName(model), err)
		}
		b.logger.Debug("Table ready", "model", modelName(model))
	}
	return nil
}

func modelName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
