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

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/types"
)

var validate = validator.New()

// JoinRequest carries a new member's attributes.
type JoinRequest struct {
	Username string `validate:"required,max=64"`
	Age      int    `validate:"gte=0,lte=200"`
	TeamID   *int64 `validate:"omitempty,gt=0"`
}

type MemberService interface {
	Service[domain.Member]

	// Join registers a member, optionally in an existing team.
	Join(ctx context.Context, req JoinRequest) (*domain.Member, error)

	FindByUsername(ctx context.Context, username string) ([]*domain.Member, error)

	Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error)

	SearchPage(ctx context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error)

	SearchSlice(ctx context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error)
}

type memberService struct {
	Service[domain.Member]
	members repository.MemberRepository
	teams   repository.TeamRepository
}

func NewMemberService(members repository.MemberRepository, teams repository.TeamRepository) MemberService {
	return &memberService{
		Service: NewService[domain.Member](members),
		members: members,
		teams:   teams,
	}
}

func (s *memberService) Join(ctx context.Context, req JoinRequest) (*domain.Member, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var team *domain.Team
	if req.TeamID != nil {
		t, err := s.teams.GetOne(ctx, *req.TeamID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("team %d: %w", *req.TeamID, ErrTeamNotFound)
		}
		if err != nil {
			return nil, err
		}
		team = t
	}

	m := domain.NewMember(req.Username, req.Age, team)
	if err := s.members.Create(ctx, m); err != nil {
		log.WithError(err).WithField("username", req.Username).Error("join member failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{"member_id": m.ID, "username": m.Username}).Info("member joined")
	return m, nil
}

func (s *memberService) FindByUsername(ctx context.Context, username string) ([]*domain.Member, error) {
	return s.members.FindByUsername(ctx, username)
}

func (s *memberService) Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error) {
	rows, err := s.members.Search(ctx, cond)
	if err != nil {
		log.WithError(err).Error("member search failed")
		return nil, err
	}
	return rows, nil
}

func (s *memberService) SearchPage(ctx context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	page, err := s.members.SearchPage(ctx, cond, req)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"page": req.GetPage(), "size": req.GetPageSize()}).Error("member page search failed")
		return nil, err
	}
	return page, nil
}

func (s *memberService) SearchSlice(ctx context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slice, err := s.members.SearchSlice(ctx, cond, req)
	if err != nil {
		log.WithError(err).WithField("size", req.PageSize).Error("member slice search failed")
		return nil, err
	}
	return slice, nil
}
