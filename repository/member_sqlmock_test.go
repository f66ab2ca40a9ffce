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
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

var dtoColumns = []string{"member_id", "username", "age", "team_id", "team_name"}

func newMockMemberRepository(t *testing.T) (MemberRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewMemberRepository(db), mock
}

func TestSearchSQLShape(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`SELECT m\.member_id, m\.username, m\.age, t\.team_id, t\.name AS team_name FROM "members" AS "m" LEFT JOIN teams AS t ON t\.team_id = m\.team_id WHERE .*t\.name = 'teamB'.*m\.age >= 35.*m\.age <= 40.* ORDER BY m\.member_id ASC`).
		WillReturnRows(sqlmock.NewRows(dtoColumns).AddRow(int64(4), "member4", int64(40), int64(2), "teamB"))

	rows, err := repo.Search(context.Background(), domain.NewMemberSearchCondition("", "teamB", domain.IntPtr(35), domain.IntPtr(40)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "member4", rows[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutCriteriaHasNoWhere(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`LEFT JOIN teams AS t ON t\.team_id = m\.team_id ORDER BY m\.member_id ASC$`).
		WillReturnRows(sqlmock.NewRows(dtoColumns))

	rows, err := repo.Search(context.Background(), &domain.MemberSearchCondition{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPageSkipsCountOnShortFirstPage(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`FROM "members" AS "m" LEFT JOIN teams AS t .* ORDER BY m\.member_id ASC LIMIT 3$`).
		WillReturnRows(sqlmock.NewRows(dtoColumns).
			AddRow(int64(1), "member1", int64(10), int64(1), "teamA").
			AddRow(int64(2), "member2", int64(20), int64(1), "teamA"))

	p, err := repo.SearchPage(context.Background(), nil, types.NewDefaultPageRequest(0, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.TotalElements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPageSkipsCountOnShortLastPage(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`ORDER BY m\.member_id ASC LIMIT 3 OFFSET 3$`).
		WillReturnRows(sqlmock.NewRows(dtoColumns).AddRow(int64(4), "member4", int64(40), int64(2), "teamB"))

	p, err := repo.SearchPage(context.Background(), nil, types.NewDefaultPageRequest(1, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.TotalElements)
	assert.True(t, p.Last)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPageRunsCountOnFullPage(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`WHERE .*m\.age >= 10.* LIMIT 2$`).
		WillReturnRows(sqlmock.NewRows(dtoColumns).
			AddRow(int64(1), "member1", int64(10), int64(1), "teamA").
			AddRow(int64(2), "member2", int64(20), int64(1), "teamA"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "members" AS "m" LEFT JOIN teams AS t ON t\.team_id = m\.team_id WHERE .*m\.age >= 10`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	p, err := repo.SearchPage(context.Background(), &domain.MemberSearchCondition{AgeGoe: domain.IntPtr(10)}, types.NewDefaultPageRequest(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.TotalElements)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPagePropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")

	t.Run("content query", func(t *testing.T) {
		repo, mock := newMockMemberRepository(t)
		mock.ExpectQuery(`SELECT`).WillReturnError(boom)

		_, err := repo.SearchPage(context.Background(), nil, types.NewDefaultPageRequest(0, 2))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("count query", func(t *testing.T) {
		repo, mock := newMockMemberRepository(t)
		mock.ExpectQuery(`LIMIT 1$`).
			WillReturnRows(sqlmock.NewRows(dtoColumns).AddRow(int64(1), "member1", int64(10), nil, nil))
		mock.ExpectQuery(`SELECT count`).WillReturnError(boom)

		_, err := repo.SearchPage(context.Background(), nil, types.NewDefaultPageRequest(0, 1))
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchSliceSQLShape(t *testing.T) {
	repo, mock := newMockMemberRepository(t)

	mock.ExpectQuery(`WHERE .*m\.member_id < 3.* ORDER BY m\.updated_at DESC, m\.member_id DESC LIMIT 3$`).
		WillReturnRows(sqlmock.NewRows(dtoColumns).
			AddRow(int64(2), "member2", int64(20), int64(1), "teamA").
			AddRow(int64(1), "member1", int64(10), int64(1), "teamA"))

	last := int64(3)
	s, err := repo.SearchSlice(context.Background(), nil, types.NewCursorRequest(&last, 2))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, memberIDs(s.Content))
	assert.False(t, s.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}
