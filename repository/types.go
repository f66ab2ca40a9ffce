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

	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	// GetOne returns database.ErrNotFound (wrapped) when no row matches.
	GetOne(ctx context.Context, id any) (*T, error)

	GetAll(ctx context.Context) ([]*T, error)

	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	Count(ctx context.Context, filter *types.QueryFilter) (int64, error)

	Create(ctx context.Context, entity ...*T) error

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}

// TransactionRepository defines CRUD operations executed within a transaction.
type TransactionRepository[T any] interface {
	CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error
	UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error
	DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error
}

// PageQueryRepository defines offset pagination for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Page[*T], error)
}

// Repository combines CRUD, pagination, and transactional operations and
// exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	TransactionRepository[T]
	DB() *bun.DB
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}

// MemberRepository adds the member searches to the generic operations.
// Every search returns an empty result rather than an error when nothing
// matches.
type MemberRepository interface {
	Repository[domain.Member]

	FindByUsername(ctx context.Context, username string) ([]*domain.Member, error)

	// Search returns every matching row ordered by member id.
	Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error)

	// SearchPage returns one offset page plus the total match count.
	SearchPage(ctx context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error)

	// SearchSlice returns the batch after req.LastID, newest first.
	SearchSlice(ctx context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error)
}

// TeamRepository adds name lookup and the member list of a team.
type TeamRepository interface {
	Repository[domain.Team]

	FindByName(ctx context.Context, name string) (*domain.Team, error)

	Members(ctx context.Context, teamID int64) ([]*domain.Member, error)
}
