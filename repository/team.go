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
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/uptrace/bun"
)

type teamRepository struct {
	Repository[domain.Team]
	db *bun.DB
}

func NewTeamRepository(db *bun.DB) TeamRepository {
	return &teamRepository{Repository: NewRepository[domain.Team](db), db: db}
}

// FindByName returns the team with the lowest id among those named name.
func (r *teamRepository) FindByName(ctx context.Context, name string) (*domain.Team, error) {
	team := new(domain.Team)
	err := r.db.NewSelect().Model(team).
		Where("t.name = ?", name).
		OrderExpr("t.team_id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %q: %w", name, database.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Members lists the team's members by id.
func (r *teamRepository) Members(ctx context.Context, teamID int64) ([]*domain.Member, error) {
	members := make([]*domain.Member, 0)
	err := r.db.NewSelect().Model(&members).
		Where("m.team_id = ?", teamID).
		OrderExpr("m.member_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("members of team %d: %w", teamID, err)
	}
	return members, nil
}
