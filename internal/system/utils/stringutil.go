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

package utils

import (
	"html"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID generates a new random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// SanitizeString trims the input, strips control characters and escapes HTML sensitive characters.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, trimmed)
	return html.EscapeString(cleaned)
}

// SanitizeStringMap sanitizes every key and value of the given map.
func SanitizeStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[SanitizeString(k)] = SanitizeString(v)
	}
	return out
}

// MergeStringMaps copies all entries of src into dst, creating dst if needed, and returns it.
func MergeStringMaps(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// DeepCopyMapOfStrings creates a copy of a map with strings.
func DeepCopyMapOfStrings(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
