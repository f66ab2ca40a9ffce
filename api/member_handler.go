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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
)

// MemberSearcher is what the member endpoints need from the service layer.
type MemberSearcher interface {
	Search(ctx context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error)
	SearchPage(ctx context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error)
	SearchSlice(ctx context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error)
}

type MemberHandler struct {
	svc MemberSearcher
}

func NewMemberHandler(svc MemberSearcher) *MemberHandler { return &MemberHandler{svc: svc} }

// Register mounts the member search endpoints. v1 and v2 both return the
// full list.
func (h *MemberHandler) Register(r gin.IRouter) {
	r.GET("/v1/members", h.list)
	r.GET("/v2/members", h.list)
	r.GET("/v3/members", h.page)
	r.GET("/v4/members", h.slice)
}

func (h *MemberHandler) list(c *gin.Context) {
	var cond domain.MemberSearchCondition
	if err := bindQuery(c, &cond); err != nil {
		WriteError(c, err)
		return
	}
	members, err := h.svc.Search(c.Request.Context(), &cond)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) page(c *gin.Context) {
	var cond domain.MemberSearchCondition
	if err := bindQuery(c, &cond); err != nil {
		WriteError(c, err)
		return
	}
	var q pageQuery
	if err := bindQuery(c, &q); err != nil {
		WriteError(c, err)
		return
	}
	sorts, err := parseSorts(q.Sort)
	if err != nil {
		WriteError(c, err)
		return
	}
	page, err := h.svc.SearchPage(c.Request.Context(), &cond, types.NewPageRequestWithSort(q.Page, q.Size, sorts...))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MemberHandler) slice(c *gin.Context) {
	var cond domain.MemberSearchCondition
	if err := bindQuery(c, &cond); err != nil {
		WriteError(c, err)
		return
	}
	var q cursorQuery
	if err := bindQuery(c, &q); err != nil {
		WriteError(c, err)
		return
	}
	slice, err := h.svc.SearchSlice(c.Request.Context(), &cond, types.NewCursorRequest(q.LastMemberID, q.Size))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, slice)
}
