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

// Package flowmgt provides the authoring operations that create, copy, reorder and validate authentication
// flow trees.
package flowmgt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// priorityStep is the gap between the priorities of consecutive siblings after renumbering.
const priorityStep = 10

// FlowMgtServiceInterface defines the authoring operations on flow trees. Flows marked built-in cannot be
// edited; copy them first.
type FlowMgtServiceInterface interface {
	CreateFlow(ctx context.Context, realm string, req CreateFlowRequest) (*model.FlowModel,
		*serviceerror.ServiceError)
	CopyFlow(ctx context.Context, realm, sourceAlias, newAlias string) (*model.FlowModel,
		*serviceerror.ServiceError)
	GetFlow(ctx context.Context, realm, alias string) (*model.FlowModel, *serviceerror.ServiceError)
	GetFlowByID(ctx context.Context, flowID string) (*model.FlowModel, *serviceerror.ServiceError)
	ListFlows(ctx context.Context, realm string) ([]model.FlowModel, *serviceerror.ServiceError)
	GetExecutions(ctx context.Context, flowID string) ([]ExecutionInfo, *serviceerror.ServiceError)
	DeleteFlow(ctx context.Context, flowID string) *serviceerror.ServiceError

	AddAuthenticatorExecution(ctx context.Context, flowID, authenticatorID string, requirement model.Requirement,
		priority int) (*model.ExecutionModel, *serviceerror.ServiceError)
	AddSubFlowExecution(ctx context.Context, parentFlowID, alias, providerID string,
		requirement model.Requirement, priority int) (*model.ExecutionModel, *serviceerror.ServiceError)
	UpdateExecution(ctx context.Context, executionID string, update ExecutionUpdate) (*model.ExecutionModel,
		*serviceerror.ServiceError)
	RemoveExecution(ctx context.Context, executionID string) *serviceerror.ServiceError
	RemoveExecutionAt(ctx context.Context, flowID string, index int) *serviceerror.ServiceError
	RaisePriority(ctx context.Context, executionID string) *serviceerror.ServiceError
	LowerPriority(ctx context.Context, executionID string) *serviceerror.ServiceError
	ClearFlow(ctx context.Context, flowID string) *serviceerror.ServiceError

	ImportDefinition(ctx context.Context, realm string, def FlowDefinition, builtIn bool) (*model.FlowModel,
		*serviceerror.ServiceError)
	ValidateFlow(ctx context.Context, flowID string) (*ValidationReport, *serviceerror.ServiceError)
}

type flowMgtService struct {
	store     store.FlowStoreInterface
	registry  *authenticator.Registry
	validator *FlowValidator
	logger    *log.Logger
}

// NewFlowMgtService creates the authoring service. Every edit invalidates the validator cache.
func NewFlowMgtService(flowStore store.FlowStoreInterface, registry *authenticator.Registry,
	validator *FlowValidator) FlowMgtServiceInterface {
	return &flowMgtService{
		store:     flowStore,
		registry:  registry,
		validator: validator,
		logger:    log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowMgtService")),
	}
}

func (s *flowMgtService) CreateFlow(ctx context.Context, realm string, req CreateFlowRequest) (
	*model.FlowModel, *serviceerror.ServiceError) {
	alias := strings.TrimSpace(req.Alias)
	if realm == "" || alias == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidFlowRequest, "The flow alias is required")
	}
	flow := model.FlowModel{
		ID:          sysutils.GenerateUUID(),
		Realm:       realm,
		Alias:       alias,
		ProviderID:  providerOrDefault(req.ProviderID),
		Description: req.Description,
		TopLevel:    req.TopLevel,
	}
	if err := s.store.AddFlow(ctx, flow); err != nil {
		return nil, s.storeError(err, "create flow")
	}
	s.edited()
	s.logger.Debug("Flow created", log.String(log.LoggerKeyRealm, realm), log.String(log.LoggerKeyFlowID, flow.ID))
	return &flow, nil
}

func (s *flowMgtService) CopyFlow(ctx context.Context, realm, sourceAlias, newAlias string) (
	*model.FlowModel, *serviceerror.ServiceError) {
	newAlias = strings.TrimSpace(newAlias)
	if newAlias == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidFlowRequest,
			"The name of the new flow is required")
	}
	source, err := s.store.GetFlow(ctx, realm, sourceAlias)
	if err != nil {
		return nil, s.storeError(err, "get flow")
	}
	if _, err := s.store.GetFlow(ctx, realm, newAlias); err == nil {
		return nil, &constants.ErrorFlowAliasConflict
	} else if !errors.Is(err, store.ErrFlowNotFound) {
		return nil, s.storeError(err, "get flow")
	}

	copied, err := s.copyTree(ctx, *source, newAlias, source.TopLevel, newAlias, map[string]bool{})
	s.edited()
	if err != nil {
		return nil, s.storeError(err, "copy flow")
	}
	s.logger.Debug("Flow copied", log.String(log.LoggerKeyRealm, realm),
		log.String("source", source.ID), log.String(log.LoggerKeyFlowID, copied.ID))
	return copied, nil
}

// copyTree copies a flow and its sub-flows with new ids. Sub-flow aliases are prefixed with the alias of the
// new root flow.
func (s *flowMgtService) copyTree(ctx context.Context, source model.FlowModel, alias string, topLevel bool,
	prefix string, visiting map[string]bool) (*model.FlowModel, error) {
	if visiting[source.ID] {
		return nil, &model.ConfigurationError{FlowID: source.ID, Reason: "flow references itself"}
	}
	visiting[source.ID] = true
	defer delete(visiting, source.ID)

	flow := model.FlowModel{
		ID:          sysutils.GenerateUUID(),
		Realm:       source.Realm,
		Alias:       alias,
		ProviderID:  source.ProviderID,
		Description: source.Description,
		TopLevel:    topLevel,
	}
	if err := s.store.AddFlow(ctx, flow); err != nil {
		return nil, err
	}

	executions, err := s.store.GetExecutions(ctx, source.ID)
	if err != nil {
		return nil, err
	}
	copies := make([]model.ExecutionModel, 0, len(executions))
	for _, e := range executions {
		c := e.Clone()
		c.ID = sysutils.GenerateUUID()
		c.ParentFlowID = flow.ID
		if e.IsSubFlow() {
			child, err := s.store.GetFlowByID(ctx, e.FlowID)
			if err != nil {
				return nil, err
			}
			childCopy, err := s.copyTree(ctx, *child, prefix+" "+child.Alias, false, prefix, visiting)
			if err != nil {
				return nil, err
			}
			c.FlowID = childCopy.ID
		}
		copies = append(copies, c)
	}
	if err := s.store.ReplaceExecutions(ctx, flow.ID, copies); err != nil {
		return nil, err
	}
	return &flow, nil
}

func (s *flowMgtService) GetFlow(ctx context.Context, realm, alias string) (*model.FlowModel,
	*serviceerror.ServiceError) {
	flow, err := s.store.GetFlow(ctx, realm, alias)
	if err != nil {
		return nil, s.storeError(err, "get flow")
	}
	return flow, nil
}

func (s *flowMgtService) GetFlowByID(ctx context.Context, flowID string) (*model.FlowModel,
	*serviceerror.ServiceError) {
	flow, err := s.store.GetFlowByID(ctx, flowID)
	if err != nil {
		return nil, s.storeError(err, "get flow")
	}
	return flow, nil
}

// ListFlows returns the top level flows of the realm.
func (s *flowMgtService) ListFlows(ctx context.Context, realm string) ([]model.FlowModel,
	*serviceerror.ServiceError) {
	flows, err := s.store.GetAuthenticationFlows(ctx, realm)
	if err != nil {
		return nil, s.storeError(err, "list flows")
	}
	topLevel := make([]model.FlowModel, 0, len(flows))
	for _, f := range flows {
		if f.TopLevel {
			topLevel = append(topLevel, f)
		}
	}
	return topLevel, nil
}

// GetExecutions returns the execution tree of the flow flattened depth first.
func (s *flowMgtService) GetExecutions(ctx context.Context, flowID string) ([]ExecutionInfo,
	*serviceerror.ServiceError) {
	if _, err := s.store.GetFlowByID(ctx, flowID); err != nil {
		return nil, s.storeError(err, "get flow")
	}
	infos := []ExecutionInfo{}
	if err := s.flatten(ctx, flowID, 0, map[string]bool{}, &infos); err != nil {
		return nil, s.storeError(err, "list executions")
	}
	return infos, nil
}

func (s *flowMgtService) flatten(ctx context.Context, flowID string, level int, visiting map[string]bool,
	infos *[]ExecutionInfo) error {
	if visiting[flowID] {
		return nil
	}
	visiting[flowID] = true
	defer delete(visiting, flowID)

	executions, err := s.store.GetExecutions(ctx, flowID)
	if err != nil {
		return err
	}
	for i, e := range executions {
		info := ExecutionInfo{
			ID:                e.ID,
			ParentFlowID:      e.ParentFlowID,
			AuthenticatorID:   e.AuthenticatorID,
			DisplayName:       e.AuthenticatorID,
			Requirement:       e.Requirement,
			Priority:          e.Priority,
			Level:             level,
			Index:             i,
			AuthenticatorFlow: e.IsSubFlow(),
			FlowID:            e.FlowID,
			Config:            e.Config,
		}
		if e.IsSubFlow() {
			child, err := s.store.GetFlowByID(ctx, e.FlowID)
			if err != nil && !errors.Is(err, store.ErrFlowNotFound) {
				return err
			}
			if child != nil {
				info.DisplayName = child.Alias
			}
			*infos = append(*infos, info)
			if child != nil {
				if err := s.flatten(ctx, child.ID, level+1, visiting, infos); err != nil {
					return err
				}
			}
			continue
		}
		if a, err := s.registry.Get(e.AuthenticatorID); err == nil {
			info.DisplayName = a.GetDisplayName()
		}
		*infos = append(*infos, info)
	}
	return nil
}

// DeleteFlow removes a top level flow together with its sub-flows.
func (s *flowMgtService) DeleteFlow(ctx context.Context, flowID string) *serviceerror.ServiceError {
	flow, svcErr := s.mutableFlow(ctx, flowID)
	if svcErr != nil {
		return svcErr
	}
	if !flow.TopLevel {
		return serviceerror.CustomServiceError(constants.ErrorInvalidFlowRequest,
			"A sub-flow is removed through the execution that references it")
	}
	err := s.removeTree(ctx, flowID, map[string]bool{})
	s.edited()
	if err != nil {
		return s.storeError(err, "delete flow")
	}
	s.logger.Debug("Flow deleted", log.String(log.LoggerKeyFlowID, flowID))
	return nil
}

func (s *flowMgtService) removeTree(ctx context.Context, flowID string, visited map[string]bool) error {
	if visited[flowID] {
		return nil
	}
	visited[flowID] = true
	if err := s.removeSubFlows(ctx, flowID, visited); err != nil {
		return err
	}
	return s.store.RemoveFlow(ctx, flowID)
}

func (s *flowMgtService) removeSubFlows(ctx context.Context, flowID string, visited map[string]bool) error {
	executions, err := s.store.GetExecutions(ctx, flowID)
	if err != nil {
		return err
	}
	for _, e := range executions {
		if !e.IsSubFlow() {
			continue
		}
		if err := s.removeTree(ctx, e.FlowID, visited); err != nil && !errors.Is(err, store.ErrFlowNotFound) {
			return err
		}
	}
	return nil
}

func (s *flowMgtService) AddAuthenticatorExecution(ctx context.Context, flowID, authenticatorID string,
	requirement model.Requirement, priority int) (*model.ExecutionModel, *serviceerror.ServiceError) {
	if _, svcErr := s.mutableFlow(ctx, flowID); svcErr != nil {
		return nil, svcErr
	}
	if !s.registry.IsRegistered(authenticatorID) {
		return nil, &constants.ErrorUnknownAuthenticator
	}
	requirement, svcErr := requirementOrDefault(requirement)
	if svcErr != nil {
		return nil, svcErr
	}

	execution := model.ExecutionModel{
		ID:              sysutils.GenerateUUID(),
		ParentFlowID:    flowID,
		AuthenticatorID: authenticatorID,
		Requirement:     requirement,
	}
	return s.insertExecution(ctx, execution, priority)
}

func (s *flowMgtService) AddSubFlowExecution(ctx context.Context, parentFlowID, alias, providerID string,
	requirement model.Requirement, priority int) (*model.ExecutionModel, *serviceerror.ServiceError) {
	parent, svcErr := s.mutableFlow(ctx, parentFlowID)
	if svcErr != nil {
		return nil, svcErr
	}
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidFlowRequest,
			"The sub-flow alias is required")
	}
	requirement, svcErr = requirementOrDefault(requirement)
	if svcErr != nil {
		return nil, svcErr
	}

	child := model.FlowModel{
		ID:         sysutils.GenerateUUID(),
		Realm:      parent.Realm,
		Alias:      alias,
		ProviderID: providerOrDefault(providerID),
	}
	if err := s.store.AddFlow(ctx, child); err != nil {
		return nil, s.storeError(err, "create sub-flow")
	}
	execution := model.ExecutionModel{
		ID:                sysutils.GenerateUUID(),
		ParentFlowID:      parentFlowID,
		FlowID:            child.ID,
		Requirement:       requirement,
		AuthenticatorFlow: true,
	}
	created, svcErr := s.insertExecution(ctx, execution, priority)
	if svcErr != nil {
		if err := s.store.RemoveFlow(ctx, child.ID); err != nil {
			s.logger.Error("Failed to remove orphaned sub-flow", log.String(log.LoggerKeyFlowID, child.ID),
				log.Error(err))
		}
		return nil, svcErr
	}
	return created, nil
}

// insertExecution places the execution before the first sibling with an equal or higher priority, or last
// when the priority is zero, and renumbers the siblings.
func (s *flowMgtService) insertExecution(ctx context.Context, execution model.ExecutionModel, priority int) (
	*model.ExecutionModel, *serviceerror.ServiceError) {
	siblings, err := s.store.GetExecutions(ctx, execution.ParentFlowID)
	if err != nil {
		return nil, s.storeError(err, "list executions")
	}
	ordered := insertAt(siblings, execution, priority)
	if err := s.replace(ctx, execution.ParentFlowID, ordered); err != nil {
		return nil, s.storeError(err, "add execution")
	}
	created, err := s.store.GetExecution(ctx, execution.ID)
	if err != nil {
		return nil, s.storeError(err, "get execution")
	}
	s.logger.Debug("Execution added", log.String(log.LoggerKeyFlowID, execution.ParentFlowID),
		log.String(log.LoggerKeyExecutionID, execution.ID))
	return created, nil
}

func (s *flowMgtService) UpdateExecution(ctx context.Context, executionID string, update ExecutionUpdate) (
	*model.ExecutionModel, *serviceerror.ServiceError) {
	execution, svcErr := s.mutableExecution(ctx, executionID)
	if svcErr != nil {
		return nil, svcErr
	}
	if update.Requirement != "" {
		if !update.Requirement.IsValid() {
			return nil, &constants.ErrorInvalidRequirement
		}
		execution.Requirement = update.Requirement
	}
	if update.Config != nil {
		execution.Config = sysutils.DeepCopyMapOfStrings(update.Config)
	}

	if update.Priority == 0 || update.Priority == execution.Priority {
		if err := s.store.UpdateExecution(ctx, *execution); err != nil {
			return nil, s.storeError(err, "update execution")
		}
		s.edited()
		return execution, nil
	}

	siblings, err := s.store.GetExecutions(ctx, execution.ParentFlowID)
	if err != nil {
		return nil, s.storeError(err, "list executions")
	}
	others := make([]model.ExecutionModel, 0, len(siblings))
	for _, e := range siblings {
		if e.ID != execution.ID {
			others = append(others, e)
		}
	}
	if err := s.replace(ctx, execution.ParentFlowID, insertAt(others, *execution, update.Priority)); err != nil {
		return nil, s.storeError(err, "update execution")
	}
	updated, err := s.store.GetExecution(ctx, executionID)
	if err != nil {
		return nil, s.storeError(err, "get execution")
	}
	return updated, nil
}

// RemoveExecution removes the execution and, for a sub-flow, the whole sub-flow tree.
func (s *flowMgtService) RemoveExecution(ctx context.Context, executionID string) *serviceerror.ServiceError {
	execution, svcErr := s.mutableExecution(ctx, executionID)
	if svcErr != nil {
		return svcErr
	}
	return s.removeExecution(ctx, *execution)
}

func (s *flowMgtService) RemoveExecutionAt(ctx context.Context, flowID string,
	index int) *serviceerror.ServiceError {
	if _, svcErr := s.mutableFlow(ctx, flowID); svcErr != nil {
		return svcErr
	}
	siblings, err := s.store.GetExecutions(ctx, flowID)
	if err != nil {
		return s.storeError(err, "list executions")
	}
	if index < 0 || index >= len(siblings) {
		return &constants.ErrorInvalidExecutionIndex
	}
	return s.removeExecution(ctx, siblings[index])
}

func (s *flowMgtService) removeExecution(ctx context.Context, execution model.ExecutionModel) *serviceerror.ServiceError {
	defer s.edited()
	if execution.IsSubFlow() {
		if err := s.removeTree(ctx, execution.FlowID, map[string]bool{}); err != nil &&
			!errors.Is(err, store.ErrFlowNotFound) {
			return s.storeError(err, "remove sub-flow")
		}
	}
	siblings, err := s.store.GetExecutions(ctx, execution.ParentFlowID)
	if err != nil {
		return s.storeError(err, "list executions")
	}
	remaining := make([]model.ExecutionModel, 0, len(siblings))
	for _, e := range siblings {
		if e.ID != execution.ID {
			remaining = append(remaining, e)
		}
	}
	if err := s.replace(ctx, execution.ParentFlowID, remaining); err != nil {
		return s.storeError(err, "remove execution")
	}
	s.logger.Debug("Execution removed", log.String(log.LoggerKeyExecutionID, execution.ID))
	return nil
}

func (s *flowMgtService) RaisePriority(ctx context.Context, executionID string) *serviceerror.ServiceError {
	return s.move(ctx, executionID, -1)
}

func (s *flowMgtService) LowerPriority(ctx context.Context, executionID string) *serviceerror.ServiceError {
	return s.move(ctx, executionID, 1)
}

// move swaps the execution with its neighbour in the given direction. Moving past either end is a no-op.
func (s *flowMgtService) move(ctx context.Context, executionID string, direction int) *serviceerror.ServiceError {
	execution, svcErr := s.mutableExecution(ctx, executionID)
	if svcErr != nil {
		return svcErr
	}
	siblings, err := s.store.GetExecutions(ctx, execution.ParentFlowID)
	if err != nil {
		return s.storeError(err, "list executions")
	}
	idx := -1
	for i, e := range siblings {
		if e.ID == executionID {
			idx = i
			break
		}
	}
	target := idx + direction
	if idx < 0 || target < 0 || target >= len(siblings) {
		return nil
	}
	siblings[idx], siblings[target] = siblings[target], siblings[idx]
	if err := s.replace(ctx, execution.ParentFlowID, siblings); err != nil {
		return s.storeError(err, "reorder executions")
	}
	return nil
}

// ClearFlow removes every execution of the flow.
func (s *flowMgtService) ClearFlow(ctx context.Context, flowID string) *serviceerror.ServiceError {
	if _, svcErr := s.mutableFlow(ctx, flowID); svcErr != nil {
		return svcErr
	}
	defer s.edited()
	if err := s.removeSubFlows(ctx, flowID, map[string]bool{flowID: true}); err != nil {
		return s.storeError(err, "remove sub-flows")
	}
	if err := s.store.ReplaceExecutions(ctx, flowID, nil); err != nil {
		return s.storeError(err, "clear flow")
	}
	return nil
}

func (s *flowMgtService) ValidateFlow(ctx context.Context, flowID string) (*ValidationReport,
	*serviceerror.ServiceError) {
	if _, err := s.store.GetFlowByID(ctx, flowID); err != nil {
		return nil, s.storeError(err, "get flow")
	}
	problems, err := s.validator.Problems(ctx, flowID)
	if err != nil {
		return nil, s.storeError(err, "validate flow")
	}
	return &ValidationReport{FlowID: flowID, Valid: len(problems) == 0, Problems: problems}, nil
}

// replace renumbers the executions in their current order and stores them as the children of the flow.
func (s *flowMgtService) replace(ctx context.Context, flowID string, ordered []model.ExecutionModel) error {
	for i := range ordered {
		ordered[i].Priority = (i + 1) * priorityStep
	}
	s.edited()
	return s.store.ReplaceExecutions(ctx, flowID, ordered)
}

func (s *flowMgtService) mutableFlow(ctx context.Context, flowID string) (*model.FlowModel,
	*serviceerror.ServiceError) {
	flow, err := s.store.GetFlowByID(ctx, flowID)
	if err != nil {
		return nil, s.storeError(err, "get flow")
	}
	if flow.BuiltIn {
		return nil, &constants.ErrorBuiltInFlowImmutable
	}
	return flow, nil
}

func (s *flowMgtService) mutableExecution(ctx context.Context, executionID string) (*model.ExecutionModel,
	*serviceerror.ServiceError) {
	execution, err := s.store.GetExecution(ctx, executionID)
	if err != nil {
		return nil, s.storeError(err, "get execution")
	}
	if _, svcErr := s.mutableFlow(ctx, execution.ParentFlowID); svcErr != nil {
		return nil, svcErr
	}
	return execution, nil
}

func (s *flowMgtService) edited() {
	if s.validator != nil {
		s.validator.Invalidate()
	}
}

func (s *flowMgtService) storeError(err error, operation string) *serviceerror.ServiceError {
	switch {
	case errors.Is(err, store.ErrFlowNotFound):
		return &constants.ErrorManagedFlowNotFound
	case errors.Is(err, store.ErrExecutionNotFound):
		return &constants.ErrorExecutionNotFound
	case errors.Is(err, store.ErrDuplicateAlias):
		return &constants.ErrorFlowAliasConflict
	}
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return serviceerror.CustomServiceError(constants.ErrorInvalidFlowDefinition, cfgErr.Error())
	}
	s.logger.Error("Flow store operation failed", log.String("operation", operation), log.Error(err))
	return &serviceerror.InternalServerError
}

// insertAt returns the siblings with the execution placed before the first sibling whose priority is equal
// or higher. A non-positive priority appends.
func insertAt(siblings []model.ExecutionModel, execution model.ExecutionModel,
	priority int) []model.ExecutionModel {
	ordered := make([]model.ExecutionModel, 0, len(siblings)+1)
	placed := false
	for _, e := range siblings {
		if !placed && priority > 0 && e.Priority >= priority {
			ordered = append(ordered, execution)
			placed = true
		}
		ordered = append(ordered, e)
	}
	if !placed {
		ordered = append(ordered, execution)
	}
	return ordered
}

func requirementOrDefault(requirement model.Requirement) (model.Requirement, *serviceerror.ServiceError) {
	if requirement == "" {
		return model.RequirementDisabled, nil
	}
	if !requirement.IsValid() {
		return "", &constants.ErrorInvalidRequirement
	}
	return requirement, nil
}

func providerOrDefault(providerID string) string {
	if providerID == "" {
		return constants.ProviderBasicFlow
	}
	return providerID
}

func describe(format string, args ...interface{}) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(constants.ErrorInvalidFlowDefinition, fmt.Sprintf(format, args...))
}
