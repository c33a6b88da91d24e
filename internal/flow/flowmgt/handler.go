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

package flowmgt

import (
	"net/http"
	"strconv"

	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// flowMgtHandler exposes the authoring operations over HTTP.
type flowMgtHandler struct {
	service FlowMgtServiceInterface
}

func newFlowMgtHandler(service FlowMgtServiceInterface) *flowMgtHandler {
	return &flowMgtHandler{service: service}
}

// HandleListFlows lists the top level flows of the realm.
func (h *flowMgtHandler) HandleListFlows(w http.ResponseWriter, r *http.Request) {
	realm := sysutils.SanitizeString(r.PathValue("realm"))
	flows, svcErr := h.service.ListFlows(r.Context(), realm)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, flows)
}

// HandleCreateFlow creates an empty flow.
func (h *flowMgtHandler) HandleCreateFlow(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[CreateFlowRequest](r)
	if err != nil {
		writeError(w, &constants.ErrorInvalidRequestFormat)
		return
	}
	req.Alias = sysutils.SanitizeString(req.Alias)
	req.Description = sysutils.SanitizeString(req.Description)
	req.ProviderID = sysutils.SanitizeString(req.ProviderID)

	flow, svcErr := h.service.CreateFlow(r.Context(), sysutils.SanitizeString(r.PathValue("realm")), *req)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusCreated, flow)
}

// HandleCopyFlow copies the flow named in the path under a new alias.
func (h *flowMgtHandler) HandleCopyFlow(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowMgtHandler"))

	req, err := sysutils.DecodeJSONBody[CopyFlowRequest](r)
	if err != nil {
		writeError(w, &constants.ErrorInvalidRequestFormat)
		return
	}
	realm := sysutils.SanitizeString(r.PathValue("realm"))
	alias := sysutils.SanitizeString(r.PathValue("alias"))

	flow, svcErr := h.service.CopyFlow(r.Context(), realm, alias, sysutils.SanitizeString(req.NewName))
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusCreated, flow)
	logger.Debug("Flow copy request handled", log.String(log.LoggerKeyRealm, realm),
		log.String(log.LoggerKeyFlowID, flow.ID))
}

// HandleDeleteFlow deletes the flow named in the path.
func (h *flowMgtHandler) HandleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	flow, svcErr := h.flow(r)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	if svcErr := h.service.DeleteFlow(r.Context(), flow.ID); svcErr != nil {
		writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListExecutions returns the flattened execution tree of the flow named in the path.
func (h *flowMgtHandler) HandleListExecutions(w http.ResponseWriter, r *http.Request) {
	flow, svcErr := h.flow(r)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	executions, svcErr := h.service.GetExecutions(r.Context(), flow.ID)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, executions)
}

// HandleAddExecution adds an authenticator execution, or a sub-flow when the request names an alias.
func (h *flowMgtHandler) HandleAddExecution(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[AddExecutionRequest](r)
	if err != nil {
		writeError(w, &constants.ErrorInvalidRequestFormat)
		return
	}
	flow, svcErr := h.flow(r)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}

	requirement := model.Requirement(sysutils.SanitizeString(string(req.Requirement)))
	var execution *model.ExecutionModel
	if req.Alias != "" {
		execution, svcErr = h.service.AddSubFlowExecution(r.Context(), flow.ID, sysutils.SanitizeString(req.Alias),
			sysutils.SanitizeString(req.Type), requirement, req.Priority)
	} else {
		execution, svcErr = h.service.AddAuthenticatorExecution(r.Context(), flow.ID,
			sysutils.SanitizeString(req.Provider), requirement, req.Priority)
	}
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusCreated, execution)
}

// HandleUpdateExecution updates the requirement, priority or configuration of an execution.
func (h *flowMgtHandler) HandleUpdateExecution(w http.ResponseWriter, r *http.Request) {
	req, err := sysutils.DecodeJSONBody[ExecutionUpdate](r)
	if err != nil {
		writeError(w, &constants.ErrorInvalidRequestFormat)
		return
	}
	update := ExecutionUpdate{
		Requirement: model.Requirement(sysutils.SanitizeString(string(req.Requirement))),
		Priority:    req.Priority,
		Config:      sysutils.SanitizeStringMap(req.Config),
	}
	execution, svcErr := h.service.UpdateExecution(r.Context(), sysutils.SanitizeString(r.PathValue("id")), update)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, execution)
}

// HandleDeleteExecution removes an execution and any sub-flow tree it references.
func (h *flowMgtHandler) HandleDeleteExecution(w http.ResponseWriter, r *http.Request) {
	if svcErr := h.service.RemoveExecution(r.Context(), sysutils.SanitizeString(r.PathValue("id"))); svcErr != nil {
		writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteExecutionAt removes the execution at the index given in the path.
func (h *flowMgtHandler) HandleDeleteExecutionAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, &constants.ErrorInvalidExecutionIndex)
		return
	}
	flow, svcErr := h.flow(r)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	if svcErr := h.service.RemoveExecutionAt(r.Context(), flow.ID, index); svcErr != nil {
		writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRaisePriority moves an execution one position up.
func (h *flowMgtHandler) HandleRaisePriority(w http.ResponseWriter, r *http.Request) {
	if svcErr := h.service.RaisePriority(r.Context(), sysutils.SanitizeString(r.PathValue("id"))); svcErr != nil {
		writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLowerPriority moves an execution one position down.
func (h *flowMgtHandler) HandleLowerPriority(w http.ResponseWriter, r *http.Request) {
	if svcErr := h.service.LowerPriority(r.Context(), sysutils.SanitizeString(r.PathValue("id"))); svcErr != nil {
		writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleValidateFlow reports the configuration problems of the flow named in the path.
func (h *flowMgtHandler) HandleValidateFlow(w http.ResponseWriter, r *http.Request) {
	flow, svcErr := h.flow(r)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	report, svcErr := h.service.ValidateFlow(r.Context(), flow.ID)
	if svcErr != nil {
		writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, report)
}

func (h *flowMgtHandler) flow(r *http.Request) (*model.FlowModel, *serviceerror.ServiceError) {
	return h.service.GetFlow(r.Context(), sysutils.SanitizeString(r.PathValue("realm")),
		sysutils.SanitizeString(r.PathValue("alias")))
}

// writeError maps not found errors to 404 and conflicts to 409; other client errors are 400.
func writeError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	status := http.StatusBadRequest
	switch svcErr.Code {
	case constants.ErrorManagedFlowNotFound.Code, constants.ErrorExecutionNotFound.Code:
		status = http.StatusNotFound
	case constants.ErrorFlowAliasConflict.Code:
		status = http.StatusConflict
	}
	sysutils.WriteServiceError(w, svcErr, status)
}
