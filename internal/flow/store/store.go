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

// Package store provides the persistence layer for authentication flows and their executions.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/database/provider"
)

const (
	// StoreTypeMemory keeps flows in process memory. Flows are re-seeded on every start.
	StoreTypeMemory = "memory"
	// StoreTypeDatabase keeps flows in the identity database.
	StoreTypeDatabase = "database"
)

var (
	// ErrFlowNotFound is returned when a flow does not exist.
	ErrFlowNotFound = errors.New("flow not found")
	// ErrExecutionNotFound is returned when an execution does not exist.
	ErrExecutionNotFound = errors.New("execution not found")
	// ErrDuplicateAlias is returned when a flow alias already exists in the realm.
	ErrDuplicateAlias = errors.New("flow alias already exists in the realm")
	// ErrDuplicatePriority is returned when two executions of a flow share a priority.
	ErrDuplicatePriority = errors.New("execution priority already used in the flow")
)

// FlowStoreInterface defines the operations for reading and writing flows and executions.
// Returned values are copies; mutating them does not change the store.
type FlowStoreInterface interface {
	GetFlow(ctx context.Context, realm, alias string) (*model.FlowModel, error)
	GetFlowByID(ctx context.Context, flowID string) (*model.FlowModel, error)
	GetAuthenticationFlows(ctx context.Context, realm string) ([]model.FlowModel, error)
	AddFlow(ctx context.Context, flow model.FlowModel) error
	UpdateFlow(ctx context.Context, flow model.FlowModel) error
	RemoveFlow(ctx context.Context, flowID string) error

	// GetExecutions returns the executions of a flow in ascending priority order.
	GetExecutions(ctx context.Context, flowID string) ([]model.ExecutionModel, error)
	GetExecution(ctx context.Context, executionID string) (*model.ExecutionModel, error)
	AddExecution(ctx context.Context, execution model.ExecutionModel) error
	UpdateExecution(ctx context.Context, execution model.ExecutionModel) error
	RemoveExecution(ctx context.Context, executionID string) error
	// ReplaceExecutions atomically replaces all executions of a flow.
	ReplaceExecutions(ctx context.Context, flowID string, executions []model.ExecutionModel) error
}

// NewFlowStore creates the flow store selected by the configuration.
func NewFlowStore(cfg config.FlowConfig, dbProvider provider.DBProviderInterface) (FlowStoreInterface, error) {
	switch cfg.Store {
	case "", StoreTypeMemory:
		return NewArenaStore(), nil
	case StoreTypeDatabase:
		return NewSQLStore(dbProvider), nil
	default:
		return nil, fmt.Errorf("unsupported flow store type: %s", cfg.Store)
	}
}

// checkUniquePriorities reports ErrDuplicatePriority when two executions share a priority.
func checkUniquePriorities(executions []model.ExecutionModel) error {
	seen := make(map[int]struct{}, len(executions))
	for _, e := range executions {
		if _, ok := seen[e.Priority]; ok {
			return ErrDuplicatePriority
		}
		seen[e.Priority] = struct{}{}
	}
	return nil
}
