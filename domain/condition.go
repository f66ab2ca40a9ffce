/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package domain

// MemberSearchCondition holds the optional member filters. A blank string
// or a nil bound means the criterion is not applied.
type MemberSearchCondition struct {
	Username string `form:"username" json:"username"`
	TeamName string `form:"teamName" json:"teamName"`
	AgeGoe   *int   `form:"ageGoe" json:"ageGoe" binding:"omitempty,min=0"`
	AgeLoe   *int   `form:"ageLoe" json:"ageLoe" binding:"omitempty,min=0"`
}

func NewMemberSearchCondition(username, teamName string, ageGoe, ageLoe *int) *MemberSearchCondition {
	return &MemberSearchCondition{
		Username: username,
		TeamName: teamName,
		AgeGoe:   ageGoe,
		AgeLoe:   ageLoe,
	}
}

// IntPtr is a helper for building conditions inline.
func IntPtr(v int) *int { return &v }
