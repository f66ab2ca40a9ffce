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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/utils"
	"gopkg.in/yaml.v3"
)

const ProfileLocal = "local"

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// AppConfig is the whole application configuration.
type AppConfig struct {
	Profile  string          `yaml:"profile"`
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
	Database database.Config `yaml:"database"`
}

var _ database.AbstractDatabaseConfigProvider = (*AppConfig)(nil)

// Default returns a configuration that runs against a local sqlite file.
func Default() *AppConfig {
	return &AppConfig{
		Profile: ProfileLocal,
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Database: database.Config{
			ConnectionConfig: *database.DefaultConnectionConfig(),
			BootstrapConfig:  database.BootstrapConfig{CreateTablesOnStartup: true},
			DataInitConfig:   database.DataInitConfig{AutoInitOnStartup: true, Environment: ProfileLocal},
		},
	}
}

// Load reads .env (variables already set win), then the YAML file at path
// over the defaults, then the APP_*, SERVER_ADDR and LOG_* variables. An
// empty path skips the file.
func Load(path string) (*AppConfig, error) {
	envFile := utils.EnvDefaultString("APP_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Profile = utils.EnvDefaultString("APP_PROFILE", cfg.Profile)
	cfg.Server.Addr = utils.EnvDefaultString("SERVER_ADDR", cfg.Server.Addr)
	cfg.Log.Level = utils.EnvDefaultString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = utils.EnvDefaultString("LOG_FORMAT", cfg.Log.Format)
	cfg.Database.DataInitConfig.AutoInitOnStartup = utils.EnvDefaultBool("APP_SEED_DEMO_DATA", cfg.Database.DataInitConfig.AutoInitOnStartup)
	if cfg.Database.DataInitConfig.Environment == "" {
		cfg.Database.DataInitConfig.Environment = cfg.Profile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Database.ConnectionConfig.Type == "" {
		return errors.New("database.connection.type is required")
	}
	return nil
}

// ConfigLoader exposes the database section.
func (c *AppConfig) ConfigLoader() *database.Config {
	return &c.Database
}

// SeedDemoData reports whether demo data should be seeded on startup; it
// only ever happens under the local profile.
func (c *AppConfig) SeedDemoData() bool {
	return c.Database.DataInitConfig.AutoInitOnStartup && c.Database.DataInitConfig.Environment == ProfileLocal
}
