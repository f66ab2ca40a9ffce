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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
profile: prod
server:
  addr: ":9090"
  read_timeout: 5s
log:
  level: debug
  format: json
database:
  connection:
    type: postgres
    driver: pgx
    host: db
    port: 5432
    dbname: roster
    max_open_conns: 20
    slow_query_time: 500ms
  bootstrap:
    create_tables_on_startup: true
    enable_foreign_key: true
  data_init:
    auto_init_on_startup: false
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load(writeFile(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "json", cfg.Log.Format)

	db := cfg.ConfigLoader()
	assert.Equal(t, "postgres", db.ConnectionConfig.Type)
	assert.Equal(t, "pgx", db.ConnectionConfig.Driver)
	assert.Equal(t, 20, db.ConnectionConfig.MaxOpenConns)
	assert.Equal(t, 500*time.Millisecond, db.ConnectionConfig.SlowQueryTime)
	assert.True(t, db.BootstrapConfig.EnableForeignKey)
	assert.False(t, cfg.SeedDemoData())
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "SERVER_ADDR=:7070\nLOG_LEVEL=warn\n")
	t.Setenv("APP_ENV_FILE", envFile)
	t.Setenv("LOG_FORMAT", "text")
	// godotenv never overrides a variable that is already set
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("SERVER_ADDR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, ProfileLocal, cfg.Profile)
	assert.Equal(t, "sqlite", cfg.Database.ConnectionConfig.Type)
	assert.True(t, cfg.SeedDemoData())
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "log.format")
}
