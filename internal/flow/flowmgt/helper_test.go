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
	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/authenticator/autolink"
	"github.com/asgardeo/authflow/internal/authenticator/conditional"
	"github.com/asgardeo/authflow/internal/authenticator/confirmlink"
	"github.com/asgardeo/authflow/internal/authenticator/otpform"
	"github.com/asgardeo/authflow/internal/authenticator/passwordform"
	"github.com/asgardeo/authflow/internal/authenticator/usernamepassword"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/user"
	"github.com/asgardeo/authflow/tests/mocks/credentialmock"
	"github.com/asgardeo/authflow/tests/mocks/usermock"
)

const testRealm = "master"

func newTestRegistry() *authenticator.Registry {
	users := user.NewUserService(usermock.NewInMemoryUserStore())
	credentials := credential.NewCredentialService(credentialmock.NewInMemoryCredentialStore())

	registry := authenticator.NewRegistry()
	registry.MustRegister(
		usernamepassword.New(users, credentials, nil),
		passwordform.New(credentials, nil),
		otpform.New(credentials, nil),
		autolink.New(users),
		confirmlink.New(users),
		conditional.NewUserConfiguredCondition(),
		conditional.NewCredentialTypeCondition(credentials),
	)
	return registry
}
