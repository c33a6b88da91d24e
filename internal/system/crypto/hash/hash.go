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

// Package hash provides hashing utilities for sensitive data and stored passwords.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns a SHA-256 hash of the input byte array.
func Hash(input []byte) string {
	h := sha256.Sum256(input)
	return hex.EncodeToString(h[:])
}

// HashString returns a SHA-256 hash of the input string.
func HashString(input string) string {
	return Hash([]byte(input))
}
