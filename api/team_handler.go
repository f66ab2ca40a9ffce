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

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/roster/domain"
)

// TeamReader is what the team endpoints need from the service layer.
type TeamReader interface {
	Get(ctx context.Context, id any) (*domain.Team, error)
	Members(ctx context.Context, teamID int64) ([]*domain.Member, error)
}

type TeamHandler struct {
	svc TeamReader
}

func NewTeamHandler(svc TeamReader) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r gin.IRouter) {
	g := r.Group("/teams")
	{
		g.GET("/:id", h.get)
		g.GET("/:id/members", h.members)
	}
}

func teamID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: team id must be a positive integer", errBadRequest)
	}
	return id, nil
}

func (h *TeamHandler) get(c *gin.Context) {
	id, err := teamID(c)
	if err != nil {
		WriteError(c, err)
		return
	}
	team, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) members(c *gin.Context) {
	id, err := teamID(c)
	if err != nil {
		WriteError(c, err)
		return
	}
	members, err := h.svc.Members(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
