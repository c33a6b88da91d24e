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

// Package healthcheck reports the liveness and readiness of the server.
package healthcheck

import (
	"context"
	"time"

	"github.com/asgardeo/authflow/internal/system/database/model"
	"github.com/asgardeo/authflow/internal/system/database/provider"
	"github.com/asgardeo/authflow/internal/system/log"
)

// Status is the state of the server or one of its dependencies.
type Status string

const (
	// StatusUp means the component is available.
	StatusUp Status = "UP"
	// StatusDown means the component is unavailable.
	StatusDown Status = "DOWN"
)

// ServiceStatus is the state of one dependency.
type ServiceStatus struct {
	ServiceName string `json:"service_name"`
	Status      Status `json:"status"`
}

// ServerStatus is the aggregated readiness of the server.
type ServerStatus struct {
	Status        Status          `json:"status"`
	ServiceStatus []ServiceStatus `json:"service_status,omitempty"`
}

const pingTimeout = 2 * time.Second

var queryPing = model.DBQuery{
	ID:    "HLC-00001",
	Query: "SELECT 1",
}

// HealthCheckServiceInterface defines the readiness check.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) ServerStatus
}

type healthCheckService struct {
	dbProvider provider.DBProviderInterface
	databases  []string
	logger     *log.Logger
}

// NewHealthCheckService creates a service that checks the given databases.
func NewHealthCheckService(dbProvider provider.DBProviderInterface, databases []string) HealthCheckServiceInterface {
	return &healthCheckService{
		dbProvider: dbProvider,
		databases:  databases,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService")),
	}
}

// CheckReadiness reports the server as down when any of the databases cannot be queried.
func (s *healthCheckService) CheckReadiness(ctx context.Context) ServerStatus {
	status := ServerStatus{Status: StatusUp}
	for _, dbName := range s.databases {
		dbStatus := s.checkDatabase(ctx, dbName)
		if dbStatus == StatusDown {
			status.Status = StatusDown
		}
		status.ServiceStatus = append(status.ServiceStatus, ServiceStatus{ServiceName: dbName, Status: dbStatus})
	}
	return status
}

func (s *healthCheckService) checkDatabase(ctx context.Context, dbName string) Status {
	dbClient, err := s.dbProvider.GetDBClient(dbName)
	if err != nil {
		s.logger.Error("Failed to get database client", log.String("database", dbName), log.Error(err))
		return StatusDown
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if _, err := dbClient.Query(ctx, queryPing); err != nil {
		s.logger.Error("Failed to query database", log.String("database", dbName), log.Error(err))
		return StatusDown
	}
	return StatusUp
}
