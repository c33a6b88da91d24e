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

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/system/error/apierror"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

type sampleBody struct {
	Name string `json:"name"`
}

func (suite *UtilsTestSuite) TestDecodeJSONBody() {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alice"}`))

	body, err := DecodeJSONBody[sampleBody](req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", body.Name)
}

func (suite *UtilsTestSuite) TestDecodeJSONBodyInvalid() {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	body, err := DecodeJSONBody[sampleBody](req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), body)
}

func (suite *UtilsTestSuite) TestExtractBearerToken() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	token, err := ExtractBearerToken(req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "abc.def", token)

	req.Header.Set("Authorization", "Basic xyz")
	_, err = ExtractBearerToken(req)
	assert.Error(suite.T(), err)
}

func (suite *UtilsTestSuite) TestWriteServiceError() {
	cases := []struct {
		name   string
		err    serviceerror.ServiceError
		status int
	}{
		{"ClientError", serviceerror.ServiceError{Code: "C-1", Type: serviceerror.ClientErrorType}, http.StatusBadRequest},
		{"ServerError", serviceerror.InternalServerError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, &tc.err, http.StatusBadRequest)

			assert.Equal(suite.T(), tc.status, rec.Code)
			var resp apierror.ErrorResponse
			require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(suite.T(), tc.err.Code, resp.Code)
		})
	}
}

func (suite *UtilsTestSuite) TestSanitizeString() {
	assert.Equal(suite.T(), "alice", SanitizeString("  alice\n"))
	assert.Equal(suite.T(), "&lt;b&gt;", SanitizeString("<b>"))
	assert.Nil(suite.T(), SanitizeStringMap(nil))
	assert.Equal(suite.T(), map[string]string{"k": "v"}, SanitizeStringMap(map[string]string{" k": "v\t"}))
}

func (suite *UtilsTestSuite) TestMergeStringMaps() {
	merged := MergeStringMaps(nil, map[string]string{"a": "1"})
	merged = MergeStringMaps(merged, map[string]string{"a": "2", "b": "3"})

	assert.Equal(suite.T(), map[string]string{"a": "2", "b": "3"}, merged)
}

func (suite *UtilsTestSuite) TestGenerateUUID() {
	_, err := uuid.Parse(GenerateUUID())
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), GenerateUUID(), GenerateUUID())
}

func (suite *UtilsTestSuite) TestGetAllowedOrigin() {
	allowed := []string{"https://example.com/", "https://test.com"}

	assert.Equal(suite.T(), "https://example.com/", GetAllowedOrigin(allowed, "https://example.com"))
	assert.Equal(suite.T(), "https://test.com", GetAllowedOrigin(allowed, "https://TEST.com"))
	assert.Empty(suite.T(), GetAllowedOrigin(allowed, "https://test.com.attacker.io"))
	assert.Empty(suite.T(), GetAllowedOrigin(nil, "https://test.com"))
}
