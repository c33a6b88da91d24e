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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/authflow/internal/authenticator/conditional"
	"github.com/asgardeo/authflow/internal/authenticator/confirmlink"
	"github.com/asgardeo/authflow/internal/authenticator/otpform"
	"github.com/asgardeo/authflow/internal/authenticator/usernamepassword"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// Aliases of the built-in flows seeded into every realm.
const (
	BrowserFlowAlias          = "browser"
	FirstBrokerLoginFlowAlias = "first broker login"
)

// BuiltInDefinitions returns the definitions of the flows seeded into every realm.
func BuiltInDefinitions() []FlowDefinition {
	return []FlowDefinition{
		{
			Alias:       BrowserFlowAlias,
			Description: "Browser based authentication",
			TopLevel:    true,
			Executions: []ExecutionDefinition{
				{
					Requirement: model.RequirementRequired,
					Flow: &FlowDefinition{
						Alias:       "forms",
						Description: "Username, password, otp and other auth forms.",
						Executions: []ExecutionDefinition{
							{Authenticator: usernamepassword.ID, Requirement: model.RequirementRequired},
							conditionalOTP("browser - conditional otp"),
						},
					},
				},
			},
		},
		{
			Alias: FirstBrokerLoginFlowAlias,
			Description: "Actions taken after first broker login with identity provider account, which is not yet " +
				"linked to any account",
			TopLevel: true,
			Executions: []ExecutionDefinition{
				{Authenticator: confirmlink.ID, Requirement: model.RequirementRequired},
				{
					Requirement: model.RequirementRequired,
					Flow: &FlowDefinition{
						Alias:       "first broker login - verify existing account",
						Description: "Re-authenticate the existing account before it is linked.",
						Executions: []ExecutionDefinition{
							{Authenticator: usernamepassword.ID, Requirement: model.RequirementRequired},
							conditionalOTP("first broker login - conditional otp"),
						},
					},
				},
			},
		},
	}
}

func conditionalOTP(alias string) ExecutionDefinition {
	return ExecutionDefinition{
		Requirement: model.RequirementConditional,
		Flow: &FlowDefinition{
			Alias:       alias,
			Description: "Flow to determine if the OTP is required for the authentication",
			Executions: []ExecutionDefinition{
				{Authenticator: conditional.UserConfiguredID, Requirement: model.RequirementRequired},
				{Authenticator: otpform.ID, Requirement: model.RequirementRequired},
			},
		},
	}
}

// ParseDefinition decodes a flow definition. JSON documents are accepted as YAML.
func ParseDefinition(r io.Reader) (*FlowDefinition, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var def FlowDefinition
	if err := decoder.Decode(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitionFiles parses every .json, .yaml and .yml file of the directory in name order. A missing
// directory yields no definitions.
func LoadDefinitionFiles(dir string) ([]FlowDefinition, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	definitions := make([]FlowDefinition, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, name)))
		if err != nil {
			return nil, err
		}
		def, err := ParseDefinition(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse flow definition %s: %w", name, err)
		}
		definitions = append(definitions, *def)
	}
	return definitions, nil
}

// SeedFlows imports the built-in definitions and the definitions found in the directory into each realm.
// Flows whose alias already exists in a realm are left untouched.
func SeedFlows(ctx context.Context, service FlowMgtServiceInterface, realms []string,
	definitionsDir string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowSeeder"))
	definitions, err := LoadDefinitionFiles(definitionsDir)
	if err != nil {
		return err
	}

	for _, realm := range realms {
		for _, def := range BuiltInDefinitions() {
			if err := seed(ctx, service, realm, def, true, logger); err != nil {
				return err
			}
		}
		for _, def := range definitions {
			if def.Realm != "" && def.Realm != realm {
				continue
			}
			if err := seed(ctx, service, realm, def, false, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func seed(ctx context.Context, service FlowMgtServiceInterface, realm string, def FlowDefinition, builtIn bool,
	logger *log.Logger) error {
	_, svcErr := service.GetFlow(ctx, realm, def.Alias)
	if svcErr == nil {
		logger.Debug("Flow already exists, skipping", log.String(log.LoggerKeyRealm, realm),
			log.String("alias", def.Alias))
		return nil
	}
	if svcErr.Code != constants.ErrorManagedFlowNotFound.Code {
		return fmt.Errorf("failed to look up flow %q in realm %s: %s", def.Alias, realm, svcErr.ErrorDescription)
	}
	flow, svcErr := service.ImportDefinition(ctx, realm, def, builtIn)
	if svcErr != nil {
		return fmt.Errorf("failed to import flow %q into realm %s: %s", def.Alias, realm, svcErr.ErrorDescription)
	}
	logger.Info("Flow imported", log.String(log.LoggerKeyRealm, realm), log.String("alias", def.Alias),
		log.String(log.LoggerKeyFlowID, flow.ID), log.Bool("builtIn", builtIn))
	return nil
}

// ImportDefinition materialises the definition tree in the realm. Siblings receive priorities 10, 20, 30
// in definition order.
func (s *flowMgtService) ImportDefinition(ctx context.Context, realm string, def FlowDefinition,
	builtIn bool) (*model.FlowModel, *serviceerror.ServiceError) {
	if realm == "" {
		return nil, describe("a realm is required")
	}
	aliases := map[string]bool{}
	if svcErr := s.checkDefinition(def, aliases); svcErr != nil {
		return nil, svcErr
	}
	for alias := range aliases {
		_, err := s.store.GetFlow(ctx, realm, alias)
		if err == nil {
			return nil, serviceerror.CustomServiceError(constants.ErrorFlowAliasConflict,
				fmt.Sprintf("A flow with alias %q already exists", alias))
		}
		if !errors.Is(err, store.ErrFlowNotFound) {
			return nil, s.storeError(err, "get flow")
		}
	}

	root, err := s.importFlow(ctx, realm, def, true, builtIn)
	s.edited()
	if err != nil {
		return nil, s.storeError(err, "import flow")
	}
	return root, nil
}

func (s *flowMgtService) checkDefinition(def FlowDefinition, aliases map[string]bool) *serviceerror.ServiceError {
	alias := strings.TrimSpace(def.Alias)
	if alias == "" {
		return describe("every flow needs an alias")
	}
	if aliases[alias] {
		return describe("alias %q is used more than once", alias)
	}
	aliases[alias] = true

	for i, e := range def.Executions {
		hasAuthenticator := e.Authenticator != ""
		if hasAuthenticator == (e.Flow != nil) {
			return describe("execution %d of %q must name exactly one of authenticator and flow", i, alias)
		}
		if !e.Requirement.IsValid() {
			return describe("execution %d of %q has an invalid requirement %q", i, alias, e.Requirement)
		}
		if hasAuthenticator {
			if !s.registry.IsRegistered(e.Authenticator) {
				return describe("execution %d of %q references unknown authenticator %q", i, alias, e.Authenticator)
			}
			continue
		}
		if svcErr := s.checkDefinition(*e.Flow, aliases); svcErr != nil {
			return svcErr
		}
	}
	return nil
}

func (s *flowMgtService) importFlow(ctx context.Context, realm string, def FlowDefinition, topLevel,
	builtIn bool) (*model.FlowModel, error) {
	flow := model.FlowModel{
		ID:          sysutils.GenerateUUID(),
		Realm:       realm,
		Alias:       strings.TrimSpace(def.Alias),
		ProviderID:  providerOrDefault(def.ProviderID),
		Description: def.Description,
		TopLevel:    topLevel,
		BuiltIn:     builtIn,
	}
	if err := s.store.AddFlow(ctx, flow); err != nil {
		return nil, err
	}

	executions := make([]model.ExecutionModel, 0, len(def.Executions))
	for i, ed := range def.Executions {
		execution := model.ExecutionModel{
			ID:           sysutils.GenerateUUID(),
			ParentFlowID: flow.ID,
			Requirement:  ed.Requirement,
			Priority:     (i + 1) * priorityStep,
			Config:       sysutils.DeepCopyMapOfStrings(ed.Config),
		}
		if ed.Flow != nil {
			child, err := s.importFlow(ctx, realm, *ed.Flow, false, builtIn)
			if err != nil {
				return nil, err
			}
			execution.FlowID = child.ID
			execution.AuthenticatorFlow = true
		} else {
			execution.AuthenticatorID = ed.Authenticator
		}
		executions = append(executions, execution)
	}
	if err := s.store.ReplaceExecutions(ctx, flow.ID, executions); err != nil {
		return nil, err
	}
	return &flow, nil
}
