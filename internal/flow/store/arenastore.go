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
	"sort"
	"sync"

	"github.com/asgardeo/authflow/internal/flow/model"
)

// arenaStore keeps flows and executions in flat maps keyed by id, with an index of the children of each
// flow. Values are copied in and out.
type arenaStore struct {
	mu         sync.RWMutex
	flows      map[string]model.FlowModel
	executions map[string]model.ExecutionModel
	children   map[string][]string
}

// NewArenaStore creates an empty in-memory flow store.
func NewArenaStore() FlowStoreInterface {
	return &arenaStore{
		flows:      make(map[string]model.FlowModel),
		executions: make(map[string]model.ExecutionModel),
		children:   make(map[string][]string),
	}
}

func (s *arenaStore) GetFlow(_ context.Context, realm, alias string) (*model.FlowModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.flows {
		if f.Realm == realm && f.Alias == alias {
			found := f
			return &found, nil
		}
	}
	return nil, ErrFlowNotFound
}

func (s *arenaStore) GetFlowByID(_ context.Context, flowID string) (*model.FlowModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flows[flowID]
	if !ok {
		return nil, ErrFlowNotFound
	}
	return &f, nil
}

func (s *arenaStore) GetAuthenticationFlows(_ context.Context, realm string) ([]model.FlowModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flows := []model.FlowModel{}
	for _, f := range s.flows {
		if f.Realm == realm {
			flows = append(flows, f)
		}
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Alias < flows[j].Alias })
	return flows, nil
}

func (s *arenaStore) AddFlow(_ context.Context, flow model.FlowModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aliasTaken(flow) {
		return ErrDuplicateAlias
	}
	s.flows[flow.ID] = flow
	return nil
}

func (s *arenaStore) UpdateFlow(_ context.Context, flow model.FlowModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flows[flow.ID]; !ok {
		return ErrFlowNotFound
	}
	if s.aliasTaken(flow) {
		return ErrDuplicateAlias
	}
	s.flows[flow.ID] = flow
	return nil
}

func (s *arenaStore) RemoveFlow(_ context.Context, flowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flows[flowID]; !ok {
		return ErrFlowNotFound
	}
	for _, id := range s.children[flowID] {
		delete(s.executions, id)
	}
	delete(s.children, flowID)
	delete(s.flows, flowID)
	return nil
}

func (s *arenaStore) GetExecutions(_ context.Context, flowID string) ([]model.ExecutionModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	executions := make([]model.ExecutionModel, 0, len(s.children[flowID]))
	for _, id := range s.children[flowID] {
		executions = append(executions, s.executions[id].Clone())
	}
	sort.SliceStable(executions, func(i, j int) bool { return executions[i].Priority < executions[j].Priority })
	return executions, nil
}

func (s *arenaStore) GetExecution(_ context.Context, executionID string) (*model.ExecutionModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.executions[executionID]
	if !ok {
		return nil, ErrExecutionNotFound
	}
	c := e.Clone()
	return &c, nil
}

func (s *arenaStore) AddExecution(_ context.Context, execution model.ExecutionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flows[execution.ParentFlowID]; !ok {
		return ErrFlowNotFound
	}
	if s.priorityTaken(execution) {
		return ErrDuplicatePriority
	}
	s.executions[execution.ID] = execution.Clone()
	s.children[execution.ParentFlowID] = append(s.children[execution.ParentFlowID], execution.ID)
	return nil
}

func (s *arenaStore) UpdateExecution(_ context.Context, execution model.ExecutionModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.executions[execution.ID]
	if !ok {
		return ErrExecutionNotFound
	}
	// The parent of an execution never changes.
	execution.ParentFlowID = existing.ParentFlowID
	if s.priorityTaken(execution) {
		return ErrDuplicatePriority
	}
	s.executions[execution.ID] = execution.Clone()
	return nil
}

func (s *arenaStore) RemoveExecution(_ context.Context, executionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.executions[executionID]
	if !ok {
		return ErrExecutionNotFound
	}
	delete(s.executions, executionID)
	ids := s.children[e.ParentFlowID]
	for i, id := range ids {
		if id == executionID {
			s.children[e.ParentFlowID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *arenaStore) ReplaceExecutions(_ context.Context, flowID string, executions []model.ExecutionModel) error {
	if err := checkUniquePriorities(executions); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flows[flowID]; !ok {
		return ErrFlowNotFound
	}
	for _, id := range s.children[flowID] {
		delete(s.executions, id)
	}
	ids := make([]string, 0, len(executions))
	for _, e := range executions {
		e.ParentFlowID = flowID
		s.executions[e.ID] = e.Clone()
		ids = append(ids, e.ID)
	}
	s.children[flowID] = ids
	return nil
}

func (s *arenaStore) aliasTaken(flow model.FlowModel) bool {
	for _, f := range s.flows {
		if f.ID != flow.ID && f.Realm == flow.Realm && f.Alias == flow.Alias {
			return true
		}
	}
	return false
}

func (s *arenaStore) priorityTaken(execution model.ExecutionModel) bool {
	for _, id := range s.children[execution.ParentFlowID] {
		if id != execution.ID && s.executions[id].Priority == execution.Priority {
			return true
		}
	}
	return false
}
