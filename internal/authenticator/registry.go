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

package authenticator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/log"
)

// Registry resolves authenticator ids to implementations. It is safe for concurrent use.
type Registry struct {
	mu             sync.RWMutex
	authenticators map[string]AuthenticatorInterface
	logger         *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		authenticators: make(map[string]AuthenticatorInterface),
		logger:         log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthenticatorRegistry")),
	}
}

// Register adds an authenticator. Registering an id twice is an error.
func (r *Registry) Register(a AuthenticatorInterface) error {
	if a == nil || a.GetID() == "" {
		return fmt.Errorf("authenticator must have a non empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.authenticators[a.GetID()]; exists {
		return fmt.Errorf("authenticator %s is already registered", a.GetID())
	}
	r.authenticators[a.GetID()] = a
	r.logger.Debug("Registered authenticator", log.String(log.LoggerKeyAuthenticatorID, a.GetID()))
	return nil
}

// MustRegister registers the authenticators and panics on error.
func (r *Registry) MustRegister(authenticators ...AuthenticatorInterface) {
	for _, a := range authenticators {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
}

// Get resolves an authenticator id. An unknown id is a ConfigurationError.
func (r *Registry) Get(id string) (AuthenticatorInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.authenticators[id]
	if !ok {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("unknown authenticator %q", id)}
	}
	return a, nil
}

// IsRegistered reports whether the id is registered.
func (r *Registry) IsRegistered(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.authenticators[id]
	return ok
}

// GetIDs returns the registered ids in lexical order.
func (r *Registry) GetIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.authenticators))
	for id := range r.authenticators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
