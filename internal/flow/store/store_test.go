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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/tests/mocks/databasemock"
)

func TestNewFlowStore(t *testing.T) {
	dbProvider := &databasemock.MockDBProvider{}

	for _, storeType := range []string{"", StoreTypeMemory} {
		flowStore, err := NewFlowStore(config.FlowConfig{Store: storeType}, dbProvider)
		require.NoError(t, err)
		assert.IsType(t, &arenaStore{}, flowStore)
	}

	flowStore, err := NewFlowStore(config.FlowConfig{Store: StoreTypeDatabase}, dbProvider)
	require.NoError(t, err)
	assert.IsType(t, &sqlStore{}, flowStore)
	assert.Empty(t, dbProvider.GetDBClientCalls)

	flowStore, err = NewFlowStore(config.FlowConfig{Store: "etcd"}, dbProvider)
	assert.Error(t, err)
	assert.Nil(t, flowStore)
}
