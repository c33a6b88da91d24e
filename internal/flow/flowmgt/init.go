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

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/system/middleware"
)

const (
	flowsPath      = "/admin/realms/{realm}/authentication/flows"
	executionsPath = "/admin/realms/{realm}/authentication/executions"
)

// Initialize creates the authoring service and its validator and registers the admin routes.
func Initialize(mux *http.ServeMux, flowStore store.FlowStoreInterface, registry *authenticator.Registry,
	strictValidation bool) (FlowMgtServiceInterface, *FlowValidator) {
	validator := NewFlowValidator(flowStore, registry, strictValidation)
	service := NewFlowMgtService(flowStore, registry, validator)
	registerRoutes(mux, newFlowMgtHandler(service))
	return service, validator
}

func registerRoutes(mux *http.ServeMux, handler *flowMgtHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST, PUT, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET "+flowsPath, handler.HandleListFlows, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+flowsPath, handler.HandleCreateFlow, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE "+flowsPath+"/{alias}", handler.HandleDeleteFlow, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+flowsPath+"/{alias}/copy", handler.HandleCopyFlow, opts))
	mux.HandleFunc(middleware.WithCORS("GET "+flowsPath+"/{alias}/executions",
		handler.HandleListExecutions, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+flowsPath+"/{alias}/executions",
		handler.HandleAddExecution, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE "+flowsPath+"/{alias}/executions/{index}",
		handler.HandleDeleteExecutionAt, opts))
	mux.HandleFunc(middleware.WithCORS("GET "+flowsPath+"/{alias}/validation", handler.HandleValidateFlow, opts))

	mux.HandleFunc(middleware.WithCORS("PUT "+executionsPath+"/{id}", handler.HandleUpdateExecution, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE "+executionsPath+"/{id}", handler.HandleDeleteExecution, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+executionsPath+"/{id}/raise-priority",
		handler.HandleRaisePriority, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+executionsPath+"/{id}/lower-priority",
		handler.HandleLowerPriority, opts))
}
