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

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster"
	"github.com/tomoncle/roster/api"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/types"
)

type stubMembers struct {
	cond   *domain.MemberSearchCondition
	page   *types.PageRequest
	cursor *types.CursorRequest
	calls  int
	rows   []*domain.MemberTeamDto
	err    error
}

func (s *stubMembers) Search(_ context.Context, cond *domain.MemberSearchCondition) ([]*domain.MemberTeamDto, error) {
	s.calls++
	s.cond = cond
	return s.rows, s.err
}

func (s *stubMembers) SearchPage(_ context.Context, cond *domain.MemberSearchCondition, req *types.PageRequest) (*types.Page[*domain.MemberTeamDto], error) {
	s.calls++
	s.cond, s.page = cond, req
	if s.err != nil {
		return nil, s.err
	}
	return types.NewPage(s.rows, req, 100), nil
}

func (s *stubMembers) SearchSlice(_ context.Context, cond *domain.MemberSearchCondition, req *types.CursorRequest) (*types.Slice[*domain.MemberTeamDto], error) {
	s.calls++
	s.cond, s.cursor = cond, req
	if s.err != nil {
		return nil, s.err
	}
	return types.SliceOf(s.rows, req.PageSize), nil
}

type stubTeams struct {
	team    *domain.Team
	members []*domain.Member
	err     error
}

func (s *stubTeams) Get(_ context.Context, _ any) (*domain.Team, error) { return s.team, s.err }

func (s *stubTeams) Members(_ context.Context, _ int64) ([]*domain.Member, error) {
	return s.members, s.err
}

func newRouter(members api.MemberSearcher, teams api.TeamReader, health api.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if health == nil {
		health = func(context.Context) *database.HealthStatus {
			return &database.HealthStatus{Healthy: true, Connected: true}
		}
	}
	return api.NewRouter(api.Options{Members: members, Teams: teams, Health: health})
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorPayload {
	t.Helper()
	var payload api.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func sampleRows() []*domain.MemberTeamDto {
	teamID, teamName := int64(2), "teamB"
	return []*domain.MemberTeamDto{
		{MemberID: 4, Username: "member4", Age: 40, TeamID: &teamID, TeamName: &teamName},
	}
}

func TestMemberList_BindsCondition(t *testing.T) {
	for _, version := range []string{"v1", "v2"} {
		t.Run(version, func(t *testing.T) {
			svc := &stubMembers{rows: sampleRows()}
			w := get(t, newRouter(svc, nil, nil), fmt.Sprintf("/%s/members?teamName=teamB&ageGoe=35&ageLoe=40", version))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "teamB", svc.cond.TeamName)
			assert.Empty(t, svc.cond.Username)
			require.NotNil(t, svc.cond.AgeGoe)
			require.NotNil(t, svc.cond.AgeLoe)
			assert.Equal(t, 35, *svc.cond.AgeGoe)
			assert.Equal(t, 40, *svc.cond.AgeLoe)

			var got []domain.MemberTeamDto
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, "member4", got[0].Username)
		})
	}
}

func TestMemberList_NoCondition(t *testing.T) {
	svc := &stubMembers{}
	w := get(t, newRouter(svc, nil, nil), "/v1/members")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.cond.AgeGoe)
	assert.Nil(t, svc.cond.AgeLoe)
}

func TestMemberList_BlankParamsAreAbsent(t *testing.T) {
	svc := &stubMembers{}
	r := newRouter(svc, nil, nil)

	w := get(t, r, "/v2/members?ageLoe=&ageGoe=&username=&teamName=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.cond.AgeGoe)
	assert.Nil(t, svc.cond.AgeLoe)
	assert.Empty(t, svc.cond.Username)
	assert.Empty(t, svc.cond.TeamName)

	w = get(t, r, "/v4/members?lastMemberId=&size=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.cursor.LastID)
	assert.Equal(t, types.DefaultPageSize, svc.cursor.PageSize)

	w = get(t, r, "/v3/members?page=&size=&sort=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.page.GetPage())
	assert.Equal(t, types.DefaultPageSize, svc.page.GetPageSize())
	assert.Empty(t, svc.page.GetSorts())
}

func TestMemberList_InvalidCondition(t *testing.T) {
	svc := &stubMembers{}
	r := newRouter(svc, nil, nil)

	w := get(t, r, "/v1/members?ageGoe=-1")
	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeError(t, w)
	assert.Equal(t, "invalid_input", payload.Error)
	require.Len(t, payload.FieldErrors, 1)
	assert.Equal(t, "AgeGoe", payload.FieldErrors[0].Field)
	assert.Equal(t, "min", payload.FieldErrors[0].Rule)

	w = get(t, r, "/v1/members?ageLoe=abc")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decodeError(t, w).Error)
	assert.Zero(t, svc.calls)
}

func TestMemberPage(t *testing.T) {
	svc := &stubMembers{rows: sampleRows()}
	w := get(t, newRouter(svc, nil, nil), "/v3/members?username=member4&page=1&size=5&sort=age,desc&sort=memberId")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "member4", svc.cond.Username)
	assert.Equal(t, 1, svc.page.GetPage())
	assert.Equal(t, 5, svc.page.GetPageSize())
	assert.Equal(t, []string{"m.age DESC", "m.member_id ASC"}, svc.page.GetOrders())

	var page types.Page[*domain.MemberTeamDto]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(100), page.TotalElements)
	assert.Equal(t, 20, page.TotalPages)
	assert.Equal(t, 1, page.Number)
}

func TestMemberPage_Defaults(t *testing.T) {
	svc := &stubMembers{}
	w := get(t, newRouter(svc, nil, nil), "/v3/members")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.page.GetPage())
	assert.Equal(t, types.DefaultPageSize, svc.page.GetPageSize())
	assert.Empty(t, svc.page.GetSorts())
}

func TestMemberPage_Rejected(t *testing.T) {
	cases := map[string]string{
		"unknown sort field": "/v3/members?sort=password",
		"bad direction":      "/v3/members?sort=age,sideways",
		"injection":          "/v3/members?sort=age%3Bdrop%20table%20members",
		"zero size":          "/v3/members?size=0",
		"size too large":     "/v3/members?size=2001",
		"negative page":      "/v3/members?page=-1",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubMembers{}
			w := get(t, newRouter(svc, nil, nil), target)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid_input", decodeError(t, w).Error)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestMemberSlice(t *testing.T) {
	svc := &stubMembers{rows: sampleRows()}
	w := get(t, newRouter(svc, nil, nil), "/v4/members?lastMemberId=10&size=3&teamName=teamB")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.cursor.LastID)
	assert.Equal(t, int64(10), *svc.cursor.LastID)
	assert.Equal(t, 3, svc.cursor.PageSize)
	assert.Equal(t, "teamB", svc.cond.TeamName)

	var slice types.Slice[*domain.MemberTeamDto]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slice))
	assert.False(t, slice.HasNext)
	assert.Len(t, slice.Content, 1)
}

func TestMemberSlice_FirstBatchAndInvalidCursor(t *testing.T) {
	svc := &stubMembers{}
	r := newRouter(svc, nil, nil)

	w := get(t, r, "/v4/members")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.cursor.LastID)
	assert.Equal(t, types.DefaultPageSize, svc.cursor.PageSize)

	w = get(t, r, "/v4/members?lastMemberId=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid page", fmt.Errorf("%w: bad", types.ErrInvalidPageRequest), http.StatusBadRequest, "invalid_input"},
		{"invalid argument", roster.ErrInvalidArgument, http.StatusBadRequest, "invalid_input"},
		{"not found", database.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(t, newRouter(&stubMembers{err: tc.err}, nil, nil), "/v1/members")
			require.Equal(t, tc.status, w.Code)
			payload := decodeError(t, w)
			assert.Equal(t, tc.code, payload.Error)
			if tc.status == http.StatusInternalServerError {
				assert.Empty(t, payload.Message)
			}
		})
	}
}

func TestTeamEndpoints(t *testing.T) {
	teamID := int64(1)
	teams := &stubTeams{
		team:    &domain.Team{ID: 1, Name: "teamA"},
		members: []*domain.Member{{ID: 1, Username: "member1", Age: 10, TeamID: &teamID}},
	}
	r := newRouter(nil, teams, nil)

	w := get(t, r, "/teams/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "teamA")

	w = get(t, r, "/teams/1/members")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "member1")

	w = get(t, r, "/teams/abc/members")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	teams.err = fmt.Errorf("team 9: %w", roster.ErrTeamNotFound)
	w = get(t, r, "/teams/9/members")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Error)
}

func TestHealth(t *testing.T) {
	healthy := true
	check := func(context.Context) *database.HealthStatus {
		return &database.HealthStatus{Healthy: healthy, Connected: healthy}
	}
	r := newRouter(nil, nil, check)

	assert.Equal(t, http.StatusOK, get(t, r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(t, r, "/health/live").Code)

	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, get(t, r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(t, r, "/health/live").Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(&stubMembers{}, nil, nil)

	w := get(t, r, "/v1/members")
	_, err := uuid.Parse(w.Header().Get(api.HeaderRequestID))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set(api.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(api.HeaderRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "roster_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	gin.SetMode(gin.TestMode)
	r := api.NewRouter(api.Options{Gatherer: reg})
	w := get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "roster_test_total 1")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := api.NewRouter(api.Options{Members: &stubMembers{}, CORSOrigins: []string{"http://allowed.test"}})

	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Origin", "http://allowed.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://allowed.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Origin", "http://other.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
