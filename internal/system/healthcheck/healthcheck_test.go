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

package healthcheck

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/system/database/client"
	"github.com/asgardeo/authflow/internal/system/database/model"
	"github.com/asgardeo/authflow/tests/mocks/databasemock"
)

type HealthCheckTestSuite struct {
	suite.Suite
	dbProvider *databasemock.MockDBProvider
	identity   *databasemock.MockDBClient
	runtime    *databasemock.MockDBClient
	mux        *http.ServeMux
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.identity = &databasemock.MockDBClient{}
	suite.runtime = &databasemock.MockDBClient{}
	suite.dbProvider = &databasemock.MockDBProvider{Clients: map[string]client.DBClientInterface{
		"identity": suite.identity,
		"runtime":  suite.runtime,
	}}
	suite.mux = http.NewServeMux()
	Initialize(suite.mux, suite.dbProvider, []string{"identity", "runtime"})
}

func (suite *HealthCheckTestSuite) get(path string) (int, ServerStatus) {
	rr := httptest.NewRecorder()
	suite.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var status ServerStatus
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &status))
	return rr.Code, status
}

func (suite *HealthCheckTestSuite) TestLiveness() {
	code, status := suite.get("/health/liveness")

	assert.Equal(suite.T(), http.StatusOK, code)
	assert.Equal(suite.T(), StatusUp, status.Status)
	assert.Empty(suite.T(), suite.dbProvider.GetDBClientCalls)
}

func (suite *HealthCheckTestSuite) TestReadinessUp() {
	code, status := suite.get("/health/readiness")

	assert.Equal(suite.T(), http.StatusOK, code)
	assert.Equal(suite.T(), StatusUp, status.Status)
	assert.Equal(suite.T(), []ServiceStatus{
		{ServiceName: "identity", Status: StatusUp},
		{ServiceName: "runtime", Status: StatusUp},
	}, status.ServiceStatus)
	assert.Equal(suite.T(), "HLC-00001", suite.identity.QueryCalls[0].Query.ID)
}

func (suite *HealthCheckTestSuite) TestReadinessDownWhenQueryFails() {
	suite.runtime.MockQuery = func(model.DBQuery, ...interface{}) ([]map[string]interface{}, error) {
		return nil, errors.New("connection refused")
	}

	code, status := suite.get("/health/readiness")

	assert.Equal(suite.T(), http.StatusServiceUnavailable, code)
	assert.Equal(suite.T(), StatusDown, status.Status)
	assert.Equal(suite.T(), StatusUp, status.ServiceStatus[0].Status)
	assert.Equal(suite.T(), StatusDown, status.ServiceStatus[1].Status)
}

func (suite *HealthCheckTestSuite) TestReadinessDownWhenClientUnavailable() {
	suite.dbProvider.Err = errors.New("no such database")

	code, status := suite.get("/health/readiness")

	assert.Equal(suite.T(), http.StatusServiceUnavailable, code)
	assert.Equal(suite.T(), StatusDown, status.Status)
}
