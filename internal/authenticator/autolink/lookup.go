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

package autolink

import (
	"context"
	"fmt"

	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/user"
)

type lookupFunc func(ctx context.Context, realm, value string) (*user.User, *serviceerror.ServiceError)

// wrap converts a user service lookup into one that treats a missing user as no match.
func wrap(f lookupFunc) func(ctx context.Context, realm, value string) (*user.User, error) {
	return func(ctx context.Context, realm, value string) (*user.User, error) {
		u, svcErr := f(ctx, realm, value)
		if svcErr == nil {
			return u, nil
		}
		if svcErr.Code == user.ErrorUserNotFound.Code {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %s", svcErr.Code)
	}
}
