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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/domain"
)

func TestMemberConditionFilter(t *testing.T) {
	assert.Nil(t, MemberConditionFilter(nil))
	assert.Nil(t, MemberConditionFilter(&domain.MemberSearchCondition{Username: " "}))

	f := MemberConditionFilter(domain.NewMemberSearchCondition("", "teamB", domain.IntPtr(35), domain.IntPtr(40)))
	require.NotNil(t, f)
	assert.Equal(t, "(t.name = ?) AND (m.age >= ?) AND (m.age <= ?)", f.Schema)
	assert.Equal(t, []interface{}{"teamB", 35, 40}, f.Args)

	f = MemberConditionFilter(&domain.MemberSearchCondition{Username: "member1"})
	require.NotNil(t, f)
	assert.Equal(t, "m.username = ?", f.Schema)
}

func TestMemberIDLt(t *testing.T) {
	assert.Nil(t, memberIDLt(nil))
	id := int64(3)
	f := memberIDLt(&id)
	require.NotNil(t, f)
	assert.Equal(t, "m.member_id < ?", f.Schema)
	assert.Equal(t, []interface{}{int64(3)}, f.Args)
}
