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

package repository

import (
	"strings"

	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
)

// Each builder yields nil when its criterion is absent so the caller can
// fold whatever remains with types.And.

func usernameEq(username string) *types.QueryFilter {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	return types.NewQueryFilter("m.username = ?", username)
}

func teamNameEq(teamName string) *types.QueryFilter {
	if strings.TrimSpace(teamName) == "" {
		return nil
	}
	return types.NewQueryFilter("t.name = ?", teamName)
}

func ageGoe(age *int) *types.QueryFilter {
	if age == nil {
		return nil
	}
	return types.NewQueryFilter("m.age >= ?", *age)
}

func ageLoe(age *int) *types.QueryFilter {
	if age == nil {
		return nil
	}
	return types.NewQueryFilter("m.age <= ?", *age)
}

func memberIDLt(lastID *int64) *types.QueryFilter {
	if lastID == nil {
		return nil
	}
	return types.NewQueryFilter("m.member_id < ?", *lastID)
}

// MemberConditionFilter folds the present criteria of cond into one
// conjunction; nil means no restriction.
func MemberConditionFilter(cond *domain.MemberSearchCondition) *types.QueryFilter {
	if cond == nil {
		return nil
	}
	return types.And(
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageGoe(cond.AgeGoe),
		ageLoe(cond.AgeLoe),
	)
}
