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

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/client"
	dbmodel "github.com/asgardeo/authflow/internal/system/database/model"
	"github.com/asgardeo/authflow/internal/system/database/provider"
	"github.com/asgardeo/authflow/internal/system/log"
)

// sqlStore is the SQL implementation of FlowStoreInterface over the AUTH_FLOW and AUTH_EXECUTION tables.
type sqlStore struct {
	dbProvider provider.DBProviderInterface
}

// NewSQLStore creates a flow store backed by the identity database.
func NewSQLStore(dbProvider provider.DBProviderInterface) FlowStoreInterface {
	return &sqlStore{dbProvider: dbProvider}
}

func (s *sqlStore) GetFlow(ctx context.Context, realm, alias string) (*model.FlowModel, error) {
	return s.getFlow(ctx, QueryGetFlowByAlias, realm, alias)
}

func (s *sqlStore) GetFlowByID(ctx context.Context, flowID string) (*model.FlowModel, error) {
	return s.getFlow(ctx, QueryGetFlowByID, flowID)
}

func (s *sqlStore) GetAuthenticationFlows(ctx context.Context, realm string) ([]model.FlowModel, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(ctx, QueryGetFlowsByRealm, realm)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	flows := make([]model.FlowModel, 0, len(results))
	for _, row := range results {
		flows = append(flows, buildFlowFromResultRow(row))
	}
	return flows, nil
}

func (s *sqlStore) AddFlow(ctx context.Context, flow model.FlowModel) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	if err := s.checkAlias(ctx, dbClient, flow); err != nil {
		return err
	}
	_, err = dbClient.Execute(ctx, QueryCreateFlow, flow.ID, flow.Realm, flow.Alias, flow.ProviderID,
		flow.Description, flow.TopLevel, flow.BuiltIn)
	if err != nil {
		return fmt.Errorf("failed to create flow: %w", err)
	}
	return nil
}

func (s *sqlStore) UpdateFlow(ctx context.Context, flow model.FlowModel) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	if err := s.checkAlias(ctx, dbClient, flow); err != nil {
		return err
	}
	rows, err := dbClient.Execute(ctx, QueryUpdateFlow, flow.ID, flow.Alias, flow.ProviderID, flow.Description,
		flow.TopLevel, flow.BuiltIn)
	if err != nil {
		return fmt.Errorf("failed to update flow: %w", err)
	}
	if rows == 0 {
		return ErrFlowNotFound
	}
	return nil
}

func (s *sqlStore) RemoveFlow(ctx context.Context, flowID string) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec(QueryDeleteExecutionsByFlow, flowID); err != nil {
		return rollback(tx, fmt.Errorf("failed to delete flow executions: %w", err))
	}
	result, err := tx.Exec(QueryDeleteFlow, flowID)
	if err != nil {
		return rollback(tx, fmt.Errorf("failed to delete flow: %w", err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return rollback(tx, ErrFlowNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *sqlStore) GetExecutions(ctx context.Context, flowID string) ([]model.ExecutionModel, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(ctx, QueryGetExecutionsByFlow, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	executions := make([]model.ExecutionModel, 0, len(results))
	for _, row := range results {
		e, err := buildExecutionFromResultRow(row)
		if err != nil {
			return nil, err
		}
		executions = append(executions, *e)
	}
	return executions, nil
}

func (s *sqlStore) GetExecution(ctx context.Context, executionID string) (*model.ExecutionModel, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(ctx, QueryGetExecutionByID, executionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrExecutionNotFound
	}
	return buildExecutionFromResultRow(results[0])
}

func (s *sqlStore) AddExecution(ctx context.Context, execution model.ExecutionModel) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	if err := s.checkPriority(ctx, dbClient, execution); err != nil {
		return err
	}
	config, err := marshalConfig(execution.Config)
	if err != nil {
		return err
	}
	_, err = dbClient.Execute(ctx, QueryCreateExecution, execution.ID, execution.ParentFlowID,
		execution.AuthenticatorID, execution.FlowID, string(execution.Requirement), execution.Priority,
		execution.AuthenticatorFlow, config)
	if err != nil {
		return fmt.Errorf("failed to create execution: %w", err)
	}
	return nil
}

func (s *sqlStore) UpdateExecution(ctx context.Context, execution model.ExecutionModel) error {
	existing, err := s.GetExecution(ctx, execution.ID)
	if err != nil {
		return err
	}
	execution.ParentFlowID = existing.ParentFlowID

	dbClient, err := s.client()
	if err != nil {
		return err
	}
	if err := s.checkPriority(ctx, dbClient, execution); err != nil {
		return err
	}
	config, err := marshalConfig(execution.Config)
	if err != nil {
		return err
	}
	_, err = dbClient.Execute(ctx, QueryUpdateExecution, execution.ID, execution.AuthenticatorID, execution.FlowID,
		string(execution.Requirement), execution.Priority, execution.AuthenticatorFlow, config)
	if err != nil {
		return fmt.Errorf("failed to update execution: %w", err)
	}
	return nil
}

func (s *sqlStore) RemoveExecution(ctx context.Context, executionID string) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	rows, err := dbClient.Execute(ctx, QueryDeleteExecution, executionID)
	if err != nil {
		return fmt.Errorf("failed to delete execution: %w", err)
	}
	if rows == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

func (s *sqlStore) ReplaceExecutions(ctx context.Context, flowID string, executions []model.ExecutionModel) error {
	if err := checkUniquePriorities(executions); err != nil {
		return err
	}
	dbClient, err := s.client()
	if err != nil {
		return err
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec(QueryDeleteExecutionsByFlow, flowID); err != nil {
		return rollback(tx, fmt.Errorf("failed to delete flow executions: %w", err))
	}
	for _, e := range executions {
		config, err := marshalConfig(e.Config)
		if err != nil {
			return rollback(tx, err)
		}
		if _, err := tx.Exec(QueryCreateExecution, e.ID, flowID, e.AuthenticatorID, e.FlowID,
			string(e.Requirement), e.Priority, e.AuthenticatorFlow, config); err != nil {
			return rollback(tx, fmt.Errorf("failed to create execution: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *sqlStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

func (s *sqlStore) getFlow(ctx context.Context, query dbmodel.DBQuery, args ...interface{}) (*model.FlowModel, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrFlowNotFound
	}
	flow := buildFlowFromResultRow(results[0])
	return &flow, nil
}

func (s *sqlStore) checkAlias(ctx context.Context, dbClient client.DBClientInterface, flow model.FlowModel) error {
	results, err := dbClient.Query(ctx, QueryCountAliasInRealm, flow.Realm, flow.Alias, flow.ID)
	if err != nil {
		return fmt.Errorf("failed to check flow alias: %w", err)
	}
	if len(results) > 0 && asInt(results[0]["total"]) > 0 {
		return ErrDuplicateAlias
	}
	return nil
}

func (s *sqlStore) checkPriority(ctx context.Context, dbClient client.DBClientInterface,
	execution model.ExecutionModel) error {
	results, err := dbClient.Query(ctx, QueryCountPriorityInFlow, execution.ParentFlowID, execution.Priority,
		execution.ID)
	if err != nil {
		return fmt.Errorf("failed to check execution priority: %w", err)
	}
	if len(results) > 0 && asInt(results[0]["total"]) > 0 {
		return ErrDuplicatePriority
	}
	return nil
}

func rollback(tx dbmodel.TxInterface, cause error) error {
	if err := tx.Rollback(); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowStore")).
			Error("Failed to rollback transaction", log.Error(err))
	}
	return cause
}

func marshalConfig(config map[string]string) (string, error) {
	if len(config) == 0 {
		return "", nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal execution config: %w", err)
	}
	return string(data), nil
}

func buildFlowFromResultRow(row map[string]interface{}) model.FlowModel {
	return model.FlowModel{
		ID:          asString(row["flow_id"]),
		Realm:       asString(row["realm"]),
		Alias:       asString(row["alias"]),
		ProviderID:  asString(row["provider_id"]),
		Description: asString(row["description"]),
		TopLevel:    asBool(row["top_level"]),
		BuiltIn:     asBool(row["built_in"]),
	}
}

func buildExecutionFromResultRow(row map[string]interface{}) (*model.ExecutionModel, error) {
	e := &model.ExecutionModel{
		ID:                asString(row["execution_id"]),
		ParentFlowID:      asString(row["parent_flow_id"]),
		AuthenticatorID:   asString(row["authenticator"]),
		FlowID:            asString(row["flow_id"]),
		Requirement:       model.Requirement(asString(row["requirement"])),
		Priority:          asInt(row["priority"]),
		AuthenticatorFlow: asBool(row["authenticator_flow"]),
	}
	if e.ID == "" {
		return nil, fmt.Errorf("failed to parse execution_id from result row")
	}
	if config := asString(row["config"]); config != "" {
		if err := json.Unmarshal([]byte(config), &e.Config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution config: %w", err)
		}
	}
	return e, nil
}
