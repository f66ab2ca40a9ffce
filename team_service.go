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

package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/repository"
)

type TeamService interface {
	Service[domain.Team]

	Create(ctx context.Context, name string) (*domain.Team, error)

	// Members returns ErrTeamNotFound for an unknown team and an empty list
	// for a team without members.
	Members(ctx context.Context, teamID int64) ([]*domain.Member, error)
}

type teamService struct {
	Service[domain.Team]
	teams repository.TeamRepository
}

func NewTeamService(teams repository.TeamRepository) TeamService {
	return &teamService{Service: NewService[domain.Team](teams), teams: teams}
}

func (s *teamService) Create(ctx context.Context, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidArgument)
	}
	team := domain.NewTeam(name)
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	log.WithField("team_id", team.ID).Info("team created")
	return team, nil
}

func (s *teamService) Members(ctx context.Context, teamID int64) ([]*domain.Member, error) {
	if _, err := s.teams.GetOne(ctx, teamID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("team %d: %w", teamID, ErrTeamNotFound)
		}
		return nil, err
	}
	return s.teams.Members(ctx, teamID)
}
