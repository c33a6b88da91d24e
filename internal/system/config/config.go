/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname" env:"SERVER_HOSTNAME"`
	Port     int    `yaml:"port" env:"SERVER_PORT"`
	HTTPOnly bool   `yaml:"http_only" env:"SERVER_HTTP_ONLY"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type" env:"TYPE"`
	Hostname        string `yaml:"hostname" env:"HOSTNAME"`
	Port            int    `yaml:"port" env:"PORT"`
	Name            string `yaml:"name" env:"NAME"`
	Username        string `yaml:"username" env:"USERNAME"`
	Password        string `yaml:"password" env:"PASSWORD"`
	SSLMode         string `yaml:"sslmode" env:"SSLMODE"`
	Path            string `yaml:"path" env:"PATH"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity" envPrefix:"IDENTITY_DB_"`
	Runtime  DataSource `yaml:"runtime" envPrefix:"RUNTIME_DB_"`
}

// CacheConfig holds the in-memory cache configuration details.
type CacheConfig struct {
	Disabled bool `yaml:"disabled" env:"CACHE_DISABLED"`
	Size     int  `yaml:"size"`
	TTL      int  `yaml:"ttl"`
}

// SessionConfig holds the authentication session store configuration details.
type SessionConfig struct {
	Store string `yaml:"store" env:"SESSION_STORE"`
	TTL   int    `yaml:"ttl" env:"SESSION_TTL"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	Address   string `yaml:"address" env:"REDIS_ADDRESS"`
	Username  string `yaml:"username" env:"REDIS_USERNAME"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB"`
	KeyPrefix string `yaml:"key_prefix"`
}

// FlowConfig holds the configuration details for flow definitions and validation.
type FlowConfig struct {
	DefinitionsDirectory string `yaml:"definitions_directory"`
	Store                string `yaml:"store" env:"FLOW_STORE"`
	StrictValidation     bool   `yaml:"strict_validation" env:"FLOW_STRICT_VALIDATION"`
}

// JWTConfig holds the token issuance configuration details.
type JWTConfig struct {
	Issuer         string `yaml:"issuer" env:"JWT_ISSUER"`
	ValidityPeriod int64  `yaml:"validity_period"`
	KeyFile        string `yaml:"key_file"`
	KeyID          string `yaml:"key_id"`
}

// AuditConfig holds the audit event dispatching configuration details.
type AuditConfig struct {
	Enabled    bool `yaml:"enabled" env:"AUDIT_ENABLED"`
	BufferSize int  `yaml:"buffer_size"`
	DropIfFull bool `yaml:"drop_if_full"`
}

// CORSConfig holds the cross origin resource sharing configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// BruteForceConfig holds the brute-force protection policy of a realm.
type BruteForceConfig struct {
	Enabled       bool `yaml:"enabled"`
	MaxFailures   int  `yaml:"max_failures"`
	FailureWindow int  `yaml:"failure_window"`
	WaitIncrement int  `yaml:"wait_increment"`
	MaxWait       int  `yaml:"max_wait"`
}

// RealmConfig holds the configuration details of a realm.
type RealmConfig struct {
	Name                 string           `yaml:"name"`
	BrowserFlow          string           `yaml:"browser_flow"`
	FirstBrokerLoginFlow string           `yaml:"first_broker_login_flow"`
	SessionTTL           int              `yaml:"session_ttl"`
	MaxLoginAttempts     int              `yaml:"max_login_attempts"`
	BruteForce           BruteForceConfig `yaml:"brute_force"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Flow     FlowConfig     `yaml:"flow"`
	JWT      JWTConfig      `yaml:"jwt"`
	Audit    AuditConfig    `yaml:"audit"`
	CORS     CORSConfig     `yaml:"cors"`
	Realms   []RealmConfig  `yaml:"realms"`
}

// LoadConfig loads the configurations from the specified YAML file and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := applyEnvironmentOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvironmentOverrides overrides configuration values with the matching environment variables.
// Values are only replaced when the corresponding variable is set.
func applyEnvironmentOverrides(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: constants.EnvironmentVariablePrefix}); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}
