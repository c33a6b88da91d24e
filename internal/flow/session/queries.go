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

package session

import dbmodel "github.com/asgardeo/authflow/internal/system/database/model"

var (
	// QueryCreateSession inserts a session.
	QueryCreateSession = dbmodel.DBQuery{
		ID: "ASQ-SESSION-01",
		Query: "INSERT INTO AUTH_SESSION (SESSION_ID, REALM, SESSION_DATA, EXPIRY_TIME) " +
			"VALUES ($1, $2, $3, $4)",
	}
	// QueryGetSession reads a session that has not expired.
	QueryGetSession = dbmodel.DBQuery{
		ID:    "ASQ-SESSION-02",
		Query: "SELECT SESSION_DATA FROM AUTH_SESSION WHERE SESSION_ID = $1 AND EXPIRY_TIME > $2",
	}
	// QueryUpdateSession replaces the data and expiry of a session.
	QueryUpdateSession = dbmodel.DBQuery{
		ID:    "ASQ-SESSION-03",
		Query: "UPDATE AUTH_SESSION SET SESSION_DATA = $2, EXPIRY_TIME = $3 WHERE SESSION_ID = $1",
	}
	// QueryDeleteSession deletes a session.
	QueryDeleteSession = dbmodel.DBQuery{
		ID:    "ASQ-SESSION-04",
		Query: "DELETE FROM AUTH_SESSION WHERE SESSION_ID = $1",
	}
	// QueryCountSession counts the stored rows of a session id, expired or not.
	QueryCountSession = dbmodel.DBQuery{
		ID:    "ASQ-SESSION-05",
		Query: "SELECT COUNT(*) AS TOTAL FROM AUTH_SESSION WHERE SESSION_ID = $1",
	}
	// QueryDeleteExpiredSessions removes every session that expired before the given time.
	QueryDeleteExpiredSessions = dbmodel.DBQuery{
		ID:    "ASQ-SESSION-06",
		Query: "DELETE FROM AUTH_SESSION WHERE EXPIRY_TIME <= $1",
	}
)
