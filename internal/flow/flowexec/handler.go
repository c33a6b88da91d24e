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
	"net/http"

	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// flowExecutionHandler handles flow execution requests.
type flowExecutionHandler struct {
	flowExecService FlowExecServiceInterface
}

func newFlowExecutionHandler(flowExecService FlowExecServiceInterface) *flowExecutionHandler {
	return &flowExecutionHandler{
		flowExecService: flowExecService,
	}
}

// HandleFlowExecutionRequest handles the flow execution request.
func (h *flowExecutionHandler) HandleFlowExecutionRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecutionHandler"))

	flowR, err := sysutils.DecodeJSONBody[FlowRequest](r)
	if err != nil {
		sysutils.WriteServiceError(w, &constants.ErrorInvalidRequestFormat, http.StatusBadRequest)
		return
	}

	// Input values are passed unchanged; escaping would alter submitted secrets.
	req := FlowRequest{
		Realm:               sysutils.SanitizeString(flowR.Realm),
		FlowAlias:           sysutils.SanitizeString(flowR.FlowAlias),
		SessionID:           sysutils.SanitizeString(flowR.SessionID),
		Action:              sysutils.SanitizeString(flowR.Action),
		ExecutionID:         sysutils.SanitizeString(flowR.ExecutionID),
		SelectedExecutionID: sysutils.SanitizeString(flowR.SelectedExecutionID),
		Inputs:              flowR.Inputs,
		ClientNotes:         sysutils.SanitizeStringMap(flowR.ClientNotes),
	}

	flowStep, flowErr := h.flowExecService.Execute(r.Context(), req)
	if flowErr != nil {
		sysutils.WriteServiceError(w, flowErr, http.StatusBadRequest)
		return
	}

	sysutils.WriteJSON(w, http.StatusOK, flowStep)
	logger.Debug("Flow execution request handled successfully",
		log.String(log.LoggerKeySessionID, flowStep.SessionID), log.String("status", string(flowStep.Status)))
}
