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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testDeploymentYAML = `
server:
  hostname: "localhost"
  port: 8090
  http_only: true
database:
  identity:
    type: "sqlite"
    path: "repository/database/identity.db"
  runtime:
    type: "postgres"
    hostname: "db"
    port: 5432
    name: "runtimedb"
session:
  store: "memory"
  ttl: 1800
flow:
  definitions_directory: "repository/resources/flows"
  store: "database"
  strict_validation: true
jwt:
  issuer: "https://localhost:8090"
  validity_period: 3600
realms:
  - name: "master"
    browser_flow: "browser"
    first_broker_login_flow: "first broker login"
    session_ttl: 600
    brute_force:
      enabled: true
      max_failures: 5
`

type ConfigTestSuite struct {
	suite.Suite
	configPath string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	dir := suite.T().TempDir()
	suite.configPath = filepath.Join(dir, "deployment.yaml")
	err := os.WriteFile(suite.configPath, []byte(testDeploymentYAML), 0o600)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	ResetServerRuntime()
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	cfg, err := LoadConfig(suite.configPath)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8090, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)
	assert.Equal(suite.T(), "sqlite", cfg.Database.Identity.Type)
	assert.Equal(suite.T(), "runtimedb", cfg.Database.Runtime.Name)
	assert.Equal(suite.T(), "memory", cfg.Session.Store)
	assert.Equal(suite.T(), 1800, cfg.Session.TTL)
	assert.True(suite.T(), cfg.Flow.StrictValidation)
	assert.Equal(suite.T(), int64(3600), cfg.JWT.ValidityPeriod)
	require.Len(suite.T(), cfg.Realms, 1)
	assert.Equal(suite.T(), "first broker login", cfg.Realms[0].FirstBrokerLoginFlow)
	assert.Equal(suite.T(), 5, cfg.Realms[0].BruteForce.MaxFailures)
}

func (suite *ConfigTestSuite) TestLoadConfigWithEnvironmentOverrides() {
	suite.T().Setenv("AUTHFLOW_SERVER_PORT", "9443")
	suite.T().Setenv("AUTHFLOW_SESSION_STORE", "redis")
	suite.T().Setenv("AUTHFLOW_REDIS_ADDRESS", "redis:6379")
	suite.T().Setenv("AUTHFLOW_RUNTIME_DB_HOSTNAME", "runtime-db")

	cfg, err := LoadConfig(suite.configPath)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 9443, cfg.Server.Port)
	assert.Equal(suite.T(), "redis", cfg.Session.Store)
	assert.Equal(suite.T(), "redis:6379", cfg.Redis.Address)
	assert.Equal(suite.T(), "runtime-db", cfg.Database.Runtime.Hostname)
	// Values without a matching variable keep the file value.
	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 1800, cfg.Session.TTL)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidEnvironmentValue() {
	suite.T().Setenv("AUTHFLOW_SERVER_PORT", "not-a-number")

	cfg, err := LoadConfig(suite.configPath)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	cfg, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	path := filepath.Join(suite.T().TempDir(), "invalid.yaml")
	require.NoError(suite.T(), os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	cfg, err := LoadConfig(path)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestServerRuntime() {
	assert.Panics(suite.T(), func() {
		GetServerRuntime()
	})

	cfg := &Config{Server: ServerConfig{Port: 1}}
	require.NoError(suite.T(), InitializeServerRuntime("/opt/authflow", cfg))
	// Later initializations are ignored.
	require.NoError(suite.T(), InitializeServerRuntime("/other", &Config{}))

	runtime := GetServerRuntime()
	assert.Equal(suite.T(), "/opt/authflow", runtime.ServerHome)
	assert.Equal(suite.T(), 1, runtime.Config.Server.Port)
}
