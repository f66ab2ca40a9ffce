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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bundebug"
)

type fixture struct {
	db      *bun.DB
	members MemberRepository
	teams   TeamRepository
	teamA   *domain.Team
	teamB   *domain.Team
}

// newSQLiteDB opens a private in-memory database with the tables created.
func newSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = ":memory:"
	cfg.HealthCheckInterval = 0

	m := database.NewDatabaseManager(cfg)
	require.NoError(t, m.Connect(ctx))
	t.Cleanup(func() { _ = m.Disconnect() })
	require.NoError(t, m.Bootstrap(ctx, database.BootstrapConfig{CreateTablesOnStartup: true}))

	db := m.GetDB()
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithEnabled(false), bundebug.FromEnv("BUNDEBUG")))
	return db
}

// newFixture seeds teamA{member1:10, member2:20} and teamB{member3:30, member4:40}.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return seedFixture(t, newSQLiteDB(t))
}

func seedFixture(t *testing.T, db *bun.DB) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		db:      db,
		members: NewMemberRepository(db),
		teams:   NewTeamRepository(db),
		teamA:   domain.NewTeam("teamA"),
		teamB:   domain.NewTeam("teamB"),
	}
	require.NoError(t, f.teams.Create(ctx, f.teamA, f.teamB))
	require.NotZero(t, f.teamA.ID)
	require.NotZero(t, f.teamB.ID)

	require.NoError(t, f.members.Create(ctx,
		domain.NewMember("member1", 10, f.teamA),
		domain.NewMember("member2", 20, f.teamA),
		domain.NewMember("member3", 30, f.teamB),
		domain.NewMember("member4", 40, f.teamB),
	))
	return f
}

func memberIDs(rows []*domain.MemberTeamDto) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.MemberID)
	}
	return ids
}
