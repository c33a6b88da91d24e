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

package log

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type AccessLogTestSuite struct {
	suite.Suite
}

func TestAccessLogSuite(t *testing.T) {
	suite.Run(t, new(AccessLogTestSuite))
}

func (suite *AccessLogTestSuite) TestAccessLogHandler() {
	core, logs := observer.New(zapcore.InfoLevel)
	testLogger := &Logger{internal: zap.New(core), level: zapcore.InfoLevel}

	handler := AccessLogHandler(testLogger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/flow/execute?code=secret", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(suite.T(), http.StatusCreated, rr.Code)
	require.Equal(suite.T(), 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(suite.T(), "192.168.1.1", fields["remoteAddr"])
	assert.Equal(suite.T(), "POST", fields["method"])
	assert.Equal(suite.T(), "/flow/execute", fields["path"])
	assert.Equal(suite.T(), int64(http.StatusCreated), fields["status"])
	assert.Equal(suite.T(), int64(7), fields["size"])
}

func (suite *AccessLogTestSuite) TestLoggingResponseWriter() {
	rec := httptest.NewRecorder()
	lrw := &loggingResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	n, err := lrw.Write([]byte("test content"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, n)
	// Headers are already sent, so a late status does not change what was recorded.
	lrw.WriteHeader(http.StatusNotFound)

	assert.Equal(suite.T(), http.StatusOK, lrw.statusCode)
	assert.Equal(suite.T(), 12, lrw.size)
	assert.Equal(suite.T(), "test content", rec.Body.String())
}
