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
	"fmt"
	"strings"

	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun"
)

const (
	teamJoin      = "LEFT JOIN teams AS t ON t.team_id = m.team_id"
	memberTeamCol = "m.member_id, m.username, m.age, t.team_id, t.name AS team_name"
)

// sortable maps API sort fields to the column expressions they order by.
var sortable = map[string]string{
	"memberId": "m.member_id",
	"username": "m.username",
	"age":      "m.age",
	"teamName": "t.name",
}

var defaultSearchOrder = []types.Sort{types.By("m.member_id")}

// SortColumn resolves an API sort field to its column expression.
func SortColumn(field string) (string, bool) {
	col, ok := sortable[field]
	return col, ok
}

type memberRepository struct {
	Repository[domain.Member]
	db *bun.DB
}

func NewMemberRepository(db *bun.DB) MemberRepository {
	return &memberRepository{Repository: NewRepository[domain.Member](db), db: db}
}

func (r *memberRepository) FindByUsername(ctx context.Context, username string) ([]*domain.Member, error) {
	return r.List(ctx, types.NewQueryFilter("m.username = ?", username))
}

// joined starts a fresh member/team query restricted by filter. A new
// builder per call keeps concurrent searches independent.
func (r *memberRepository) joined(filter *types.QueryFilter) *bun.SelectQuery {
	return applyFilter(r.db.NewSelect().Model((*domain.Member)(nil)).Join(teamJoin), filter)
}

func (r *memberRepository) projection(filter *types.QueryFilter) *bun.SelectQuery {
	return r.joined(filter).ColumnExpr(memberTeamCol)
}

func (r *memberRepository) Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error) {
	rows := make([]*domain.MemberTeamDto, 0)
	err := r.projection(MemberConditionFilter(cond)).
		OrderExpr(orderExpr(defaultSearchOrder)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return rows, nil
}

func (r *memberRepository) SearchPage(ctx context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sorts, err := resolveSorts(req.GetSorts())
	if err != nil {
		return nil, err
	}

	filter := MemberConditionFilter(cond)
	rows := make([]*domain.MemberTeamDto, 0, req.GetPageSize())
	err = r.projection(filter).
		OrderExpr(orderExpr(sorts)).
		Offset(req.GetOffset()).
		Limit(req.GetPageSize()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("search member page: %w", err)
	}

	return types.PageOf(rows, req, func() (int64, error) {
		n, err := r.joined(filter).Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("count members: %w", err)
		}
		return int64(n), nil
	})
}

// SearchSlice orders by updated_at with member_id as tiebreaker while the
// cursor is the member id, so it assumes ids grow with updated_at.
func (r *memberRepository) SearchSlice(ctx context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := types.And(MemberConditionFilter(cond), memberIDLt(req.LastID))
	rows := make([]*domain.MemberTeamDto, 0, req.FetchSize())
	err := r.projection(filter).
		OrderExpr("m.updated_at DESC, m.member_id DESC").
		Limit(req.FetchSize()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("search member slice: %w", err)
	}
	return types.SliceOf(rows, req.PageSize), nil
}

// resolveSorts accepts column expressions from the sortable set only and
// falls back to member id order.
func resolveSorts(sorts []types.Sort) ([]types.Sort, error) {
	if len(sorts) == 0 {
		return defaultSearchOrder, nil
	}
	allowed := make(map[string]bool, len(sortable))
	for _, col := range sortable {
		allowed[col] = true
	}
	for _, s := range sorts {
		if !allowed[s.Column] || !s.Direction.IsValid() {
			return nil, fmt.Errorf("%w: cannot sort by %q", types.ErrInvalidPageRequest, s.Column)
		}
	}
	return sorts, nil
}

func orderExpr(sorts []types.Sort) string {
	return strings.Join(types.Orders(sorts...), ", ")
}
