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

package flowexec

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/error/apierror"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
)

type stubFlowExecService struct {
	received FlowRequest
	step     *FlowStep
	err      *serviceerror.ServiceError
}

func (s *stubFlowExecService) Execute(_ context.Context, req FlowRequest) (*FlowStep, *serviceerror.ServiceError) {
	s.received = req
	return s.step, s.err
}

func (s *stubFlowExecService) StartWithNotes(context.Context, string, string, map[string]string,
	map[string]string) (*FlowStep, *serviceerror.ServiceError) {
	return s.step, s.err
}

func serveFlowRequest(service FlowExecServiceInterface, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	registerRoutes(mux, newFlowExecutionHandler(service))
	req := httptest.NewRequest(http.MethodPost, "/flow/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleFlowExecutionRequest(t *testing.T) {
	service := &stubFlowExecService{step: &FlowStep{
		SessionID: "s1",
		Status:    FlowStatusIncomplete,
		Challenge: &model.Challenge{ExecutionID: "e1", AuthenticatorID: "auth-password-form"},
	}}

	rec := serveFlowRequest(service, `{"realm":"master","sessionId":"s1","executionId":"e1",
		"inputs":{"password":"<p&ss>"},"clientNotes":{"redirect_uri":"<x>"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "master", service.received.Realm)
	assert.Equal(t, "<p&ss>", service.received.Inputs["password"])
	assert.Equal(t, "&lt;x&gt;", service.received.ClientNotes["redirect_uri"])

	var step FlowStep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &step))
	assert.Equal(t, "s1", step.SessionID)
	assert.Equal(t, FlowStatusIncomplete, step.Status)
	assert.Equal(t, "e1", step.Challenge.ExecutionID)
}

func TestHandleFlowExecutionRequestErrors(t *testing.T) {
	rec := serveFlowRequest(&stubFlowExecService{}, `{"realm":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body apierror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, constants.ErrorInvalidRequestFormat.Code, body.Code)

	rec = serveFlowRequest(&stubFlowExecService{err: &constants.ErrorAuthenticationFailed}, `{"realm":"master"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, constants.ErrorAuthenticationFailed.Code, body.Code)

	rec = serveFlowRequest(&stubFlowExecService{err: &serviceerror.InternalServerError}, `{"realm":"master"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
