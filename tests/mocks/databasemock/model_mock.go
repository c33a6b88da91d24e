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

package databasemock

import (
	"database/sql"

	"github.com/asgardeo/authflow/internal/system/database/model"
)

// MockTx is a mock implementation of the TxInterface.
type MockTx struct {
	// MockExec defines the behavior for the Exec method.
	MockExec func(query model.DBQuery, args ...any) (sql.Result, error)
	// MockCommit defines the behavior for the Commit method.
	MockCommit func() error

	// ExecCalls tracks the queries passed to Exec.
	ExecCalls []model.DBQuery
	// CommitCalls tracks the calls to Commit.
	CommitCalls int
	// RollbackCalls tracks the calls to Rollback.
	RollbackCalls int
}

// Commit mocks the Commit method of the TxInterface.
func (m *MockTx) Commit() error {
	m.CommitCalls++
	if m.MockCommit != nil {
		return m.MockCommit()
	}
	return nil
}

// Rollback mocks the Rollback method of the TxInterface.
func (m *MockTx) Rollback() error {
	m.RollbackCalls++
	return nil
}

// Exec mocks the Exec method of the TxInterface.
func (m *MockTx) Exec(query model.DBQuery, args ...any) (sql.Result, error) {
	m.ExecCalls = append(m.ExecCalls, query)
	if m.MockExec != nil {
		return m.MockExec(query, args...)
	}
	return &MockSQLResult{RowsAffectedValue: 1}, nil
}

// MockSQLResult is a mock implementation of sql.Result.
type MockSQLResult struct {
	RowsAffectedValue int64
}

// LastInsertId mocks the LastInsertId method of sql.Result.
func (m *MockSQLResult) LastInsertId() (int64, error) {
	return 0, nil
}

// RowsAffected mocks the RowsAffected method of sql.Result.
func (m *MockSQLResult) RowsAffected() (int64, error) {
	return m.RowsAffectedValue, nil
}
