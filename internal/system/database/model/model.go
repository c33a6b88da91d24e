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

// Package model defines the data structures and interfaces for database operations.
package model

import (
	"context"
	"database/sql"
)

// DBInterface is the subset of *sql.DB the database client depends on.
type DBInterface interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	Close() error
}

var _ DBInterface = (*sql.DB)(nil)

// TxInterface is a transaction that resolves queries for the database type it was opened on.
type TxInterface interface {
	Commit() error
	Rollback() error
	Exec(query DBQuery, args ...any) (sql.Result, error)
}

type tx struct {
	internal *sql.Tx
	dbType   string
}

// NewTx wraps a transaction opened on a database of the given type.
func NewTx(sqlTx *sql.Tx, dbType string) TxInterface {
	return &tx{internal: sqlTx, dbType: dbType}
}

func (t *tx) Commit() error {
	return t.internal.Commit()
}

func (t *tx) Rollback() error {
	return t.internal.Rollback()
}

// Exec runs the statement variant of the query that matches the database type.
func (t *tx) Exec(query DBQuery, args ...any) (sql.Result, error) {
	return t.internal.Exec(query.GetQuery(t.dbType), args...)
}
