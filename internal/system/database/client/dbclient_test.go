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

package client

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/system/database/model"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.dbClient = NewDBClient(suite.mockDB, "postgres")
}

func (suite *DBClientTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryNormalizesColumnNames() {
	query := model.DBQuery{
		ID:    "ASQ-TEST-01",
		Query: "SELECT FLOW_ID, ALIAS FROM AUTH_FLOW WHERE REALM = ?",
	}
	suite.mock.ExpectQuery(query.Query).
		WithArgs("master").
		WillReturnRows(sqlmock.NewRows([]string{"FLOW_ID", "ALIAS"}).
			AddRow("f1", "browser").
			AddRow("f2", "first broker login"))

	results, err := suite.dbClient.Query(context.Background(), query, "master")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	assert.Equal(suite.T(), "f1", results[0]["flow_id"])
	assert.Equal(suite.T(), "first broker login", results[1]["alias"])
}

func (suite *DBClientTestSuite) TestQueryUsesDatabaseSpecificVariant() {
	query := model.DBQuery{
		ID:            "ASQ-TEST-02",
		Query:         "SELECT 1 AS N",
		PostgresQuery: "SELECT 1 AS N FROM pg_catalog.pg_class LIMIT 1",
	}
	suite.mock.ExpectQuery(query.PostgresQuery).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(1)))

	results, err := suite.dbClient.Query(context.Background(), query)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), results[0]["n"])
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	query := model.DBQuery{ID: "ASQ-TEST-03", Query: "SELECT ID FROM USERS WHERE ID = ?"}
	suite.mock.ExpectQuery(query.Query).WithArgs("missing").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	results, err := suite.dbClient.Query(context.Background(), query, "missing")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryError() {
	query := model.DBQuery{ID: "ASQ-TEST-04", Query: "SELECT ID FROM MISSING_TABLE"}
	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery(query.Query).WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(context.Background(), query)

	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestExecute() {
	query := model.DBQuery{ID: "ASQ-TEST-05", Query: "DELETE FROM AUTH_SESSION WHERE EXPIRY_TIME < ?"}
	suite.mock.ExpectExec(query.Query).WithArgs(int64(100)).WillReturnResult(sqlmock.NewResult(0, 3))

	rows, err := suite.dbClient.Execute(context.Background(), query, int64(100))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), rows)
}

func (suite *DBClientTestSuite) TestExecuteError() {
	query := model.DBQuery{ID: "ASQ-TEST-06", Query: "UPDATE AUTH_FLOW SET ALIAS = ?"}
	suite.mock.ExpectExec(query.Query).WithArgs("x").WillReturnError(errors.New("locked"))

	rows, err := suite.dbClient.Execute(context.Background(), query, "x")

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rows)
}

func (suite *DBClientTestSuite) TestTransaction() {
	query := model.DBQuery{
		ID:          "ASQ-TEST-07",
		Query:       "INSERT INTO AUTH_FLOW (FLOW_ID) VALUES ($1)",
		SQLiteQuery: "INSERT INTO AUTH_FLOW (FLOW_ID) VALUES (?)",
	}
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(query.Query).WithArgs("f1").WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx(context.Background())
	assert.NoError(suite.T(), err)
	_, err = tx.Exec(query, "f1")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Commit())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	tx, err := suite.dbClient.BeginTx(context.Background())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), tx)
}

func (suite *DBClientTestSuite) TestQueryHonoursCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := suite.dbClient.Query(ctx, model.DBQuery{ID: "ASQ-TEST-08", Query: "SELECT 1"})

	assert.ErrorIs(suite.T(), err, context.Canceled)
	assert.Nil(suite.T(), results)
}
