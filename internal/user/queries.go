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

package user

import "github.com/asgardeo/authflow/internal/system/database/model"

const userColumns = "USER_ID, REALM, USERNAME, EMAIL, FIRST_NAME, LAST_NAME, ENABLED, ATTRIBUTES, CREATED_AT"

var (
	// QueryCreateUser is the query to create a new user.
	QueryCreateUser = model.DBQuery{
		ID: "ASQ-USER-01",
		Query: "INSERT INTO \"USER\" (" + userColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	}
	// QueryGetUserByID is the query to get a user by user ID.
	QueryGetUserByID = model.DBQuery{
		ID:    "ASQ-USER-02",
		Query: "SELECT " + userColumns + " FROM \"USER\" WHERE REALM = $1 AND USER_ID = $2",
	}
	// QueryGetUserByUsername is the query to get a user by username.
	QueryGetUserByUsername = model.DBQuery{
		ID:    "ASQ-USER-03",
		Query: "SELECT " + userColumns + " FROM \"USER\" WHERE REALM = $1 AND LOWER(USERNAME) = LOWER($2)",
	}
	// QueryGetUserByEmail is the query to get a user by e-mail address.
	QueryGetUserByEmail = model.DBQuery{
		ID:    "ASQ-USER-04",
		Query: "SELECT " + userColumns + " FROM \"USER\" WHERE REALM = $1 AND LOWER(EMAIL) = LOWER($2)",
	}
	// QueryDeleteUser is the query to delete a user by user ID.
	QueryDeleteUser = model.DBQuery{
		ID:    "ASQ-USER-05",
		Query: "DELETE FROM \"USER\" WHERE REALM = $1 AND USER_ID = $2",
	}
)
