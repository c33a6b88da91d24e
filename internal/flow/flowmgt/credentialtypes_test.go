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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/authflow/internal/authenticator/otpform"
	"github.com/asgardeo/authflow/internal/authenticator/passwordform"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
)

func TestEnabledCredentialTypes(t *testing.T) {
	ctx := context.Background()
	flowStore := store.NewArenaStore()
	registry := newTestRegistry()
	service := NewFlowMgtService(flowStore, registry, nil)
	usage := NewCredentialTypeUsage(flowStore, registry)

	flow, svcErr := service.CreateFlow(ctx, testRealm, CreateFlowRequest{Alias: "custom", TopLevel: true})
	require.Nil(t, svcErr)
	_, svcErr = service.AddAuthenticatorExecution(ctx, flow.ID, passwordform.ID, model.RequirementRequired, 0)
	require.Nil(t, svcErr)
	otp, svcErr := service.AddAuthenticatorExecution(ctx, flow.ID, otpform.ID, model.RequirementDisabled, 0)
	require.Nil(t, svcErr)

	enabled, err := usage.EnabledCredentialTypes(ctx, testRealm)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{credential.TypePassword: true}, enabled)

	_, svcErr = service.UpdateExecution(ctx, otp.ID, ExecutionUpdate{Requirement: model.RequirementAlternative})
	require.Nil(t, svcErr)
	enabled, err = usage.EnabledCredentialTypes(ctx, testRealm)
	require.NoError(t, err)
	assert.True(t, enabled[credential.TypeOTP])

	enabled, err = usage.EnabledCredentialTypes(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, enabled)
}
