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
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"gopkg.in/yaml.v3"
)

var validFKActions = []string{"CASCADE", "RESTRICT", "SET NULL", "NO ACTION"}

// ForeignKeyConstraint describes a foreign key relationship between tables.
type ForeignKeyConstraint struct {
	Table           string `yaml:"table"`
	Column          string `yaml:"column"`
	ReferenceTable  string `yaml:"reference_table"`
	ReferenceColumn string `yaml:"reference_column"`
	OnDelete        string `yaml:"on_delete,omitempty"` // CASCADE, RESTRICT, SET NULL, NO ACTION
	OnUpdate        string `yaml:"on_update,omitempty"`
	ConstraintName  string `yaml:"constraint_name,omitempty"`
}

// ForeignKeyConfig is the YAML document listing constraints.
type ForeignKeyConfig struct {
	ForeignKeys []ForeignKeyConstraint `yaml:"foreign_keys"`
}

// GenerateConstraintName returns the explicit name or fk_<table>_<column>.
func (fk *ForeignKeyConstraint) GenerateConstraintName() string {
	if fk.ConstraintName != "" {
		return fk.ConstraintName
	}
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// GenerateSQL returns the ALTER TABLE statement adding the constraint.
func (fk *ForeignKeyConstraint) GenerateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
		fk.Table, fk.GenerateConstraintName(), fk.Column, fk.ReferenceTable, fk.ReferenceColumn)
	if fk.OnDelete != "" {
		fmt.Fprintf(&b, " ON DELETE %s", strings.ToUpper(fk.OnDelete))
	}
	if fk.OnUpdate != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", strings.ToUpper(fk.OnUpdate))
	}
	return b.String()
}

// Validate reports the first structural problem of the constraint.
func (fk *ForeignKeyConstraint) Validate() error {
	switch {
	case fk.Table == "":
		return fmt.Errorf("table name cannot be empty")
	case fk.Column == "":
		return fmt.Errorf("column name cannot be empty: %s", fk.Table)
	case fk.ReferenceTable == "":
		return fmt.Errorf("reference table name cannot be empty: %s.%s", fk.Table, fk.Column)
	case fk.ReferenceColumn == "":
		return fmt.Errorf("reference column name cannot be empty: %s.%s -> %s", fk.Table, fk.Column, fk.ReferenceTable)
	}
	for _, action := range []string{fk.OnDelete, fk.OnUpdate} {
		if action != "" && !isValidFKAction(action) {
			return fmt.Errorf("invalid referential action %q on %s", action, fk.GenerateConstraintName())
		}
	}
	return nil
}

func isValidFKAction(action string) bool {
	for _, a := range validFKActions {
		if strings.EqualFold(action, a) {
			return true
		}
	}
	return false
}

var (
	registeredFKs   []ForeignKeyConstraint
	registeredFKsMu sync.RWMutex
)

// RegisterForeignKey declares a constraint in code; models call it from init.
func RegisterForeignKey(fk ForeignKeyConstraint) {
	registeredFKsMu.Lock()
	defer registeredFKsMu.Unlock()
	registeredFKs = append(registeredFKs, fk)
}

// RegisteredForeignKeys returns a copy of the code-declared constraints.
func RegisteredForeignKeys() []ForeignKeyConstraint {
	registeredFKsMu.RLock()
	defer registeredFKsMu.RUnlock()
	out := make([]ForeignKeyConstraint, len(registeredFKs))
	copy(out, registeredFKs)
	return out
}

// LoadForeignKeyConfig reads constraints from a YAML file.
func LoadForeignKeyConfig(path string) ([]ForeignKeyConstraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read foreign key config: %w", err)
	}
	var cfg ForeignKeyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse foreign key config %s: %w", path, err)
	}
	return cfg.ForeignKeys, nil
}

// ForeignKeyManager adds constraints after the tables exist.
type ForeignKeyManager struct {
	constraints []ForeignKeyConstraint
	logger      Logger
}

// NewForeignKeyManager uses the YAML file at configPath when it is set and
// readable, falling back to the code-declared constraints.
func NewForeignKeyManager(logger Logger, configPath string) *ForeignKeyManager {
	if logger == nil {
		logger = GetLogger()
	}
	constraints := RegisteredForeignKeys()
	if configPath != "" {
		loaded, err := LoadForeignKeyConfig(configPath)
		if err != nil {
			logger.Warn("Using code-declared foreign keys", "config_path", configPath, "error", err)
		} else {
			constraints = loaded
		}
	}
	return &ForeignKeyManager{constraints: constraints, logger: logger}
}

// Constraints returns the managed constraints.
func (fkm *ForeignKeyManager) Constraints() []ForeignKeyConstraint {
	return fkm.constraints
}

// ValidateConstraints checks every constraint and collects the problems.
func (fkm *ForeignKeyManager) ValidateConstraints() []error {
	var errs []error
	for i := range fkm.constraints {
		if err := fkm.constraints[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// AddAllForeignKeys executes every valid constraint. sqlite cannot add
// constraints to existing tables, so the call is a no-op there. Failures
// such as an already existing constraint are logged and skipped.
func (fkm *ForeignKeyManager) AddAllForeignKeys(ctx context.Context, db bun.IDB) error {
	if db.Dialect().Name() == dialect.SQLite {
		fkm.logger.Debug("Skipping foreign keys on sqlite")
		return nil
	}
	for _, fk := range fkm.constraints {
		if err := fk.Validate(); err != nil {
			fkm.logger.Warn("Invalid foreign key constraint", "error", err)
			continue
		}
		if _, err := db.ExecContext(ctx, fk.GenerateSQL()); err != nil {
			fkm.logger.Debug("Failed to add foreign key constraint", "constraint", fk.GenerateConstraintName(), "error", err)
			continue
		}
		fkm.logger.Info("Added foreign key constraint", "constraint", fk.GenerateConstraintName())
	}
	return nil
}
