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
	"net/http"

	"github.com/asgardeo/authflow/internal/system/database/provider"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// Initialize creates the health check service and registers the liveness and readiness routes.
func Initialize(mux *http.ServeMux, dbProvider provider.DBProviderInterface,
	databases []string) HealthCheckServiceInterface {
	service := NewHealthCheckService(dbProvider, databases)
	mux.HandleFunc("GET /health/liveness", handleLiveness)
	mux.HandleFunc("GET /health/readiness", func(w http.ResponseWriter, r *http.Request) {
		status := service.CheckReadiness(r.Context())
		if status.Status != StatusUp {
			sysutils.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		sysutils.WriteJSON(w, http.StatusOK, status)
	})
	return service
}

func handleLiveness(w http.ResponseWriter, _ *http.Request) {
	sysutils.WriteJSON(w, http.StatusOK, ServerStatus{Status: StatusUp})
}
