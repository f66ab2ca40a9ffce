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
	"database/sql"
	"fmt"

	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/domain"
	"github.com/tomoncle/roster/repository"
	"github.com/uptrace/bun"
)

const demoMemberCount = 100

// InitDemoData seeds teamA and teamB with member0..member99 (age i; even i
// in teamA, odd i in teamB). It does nothing when any team already exists.
func InitDemoData(ctx context.Context, db *bun.DB) error {
	teams := repository.NewTeamRepository(db)
	members := repository.NewMemberRepository(db)

	n, err := teams.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if n > 0 {
		log.WithField("teams", n).Info("demo data already present, skipping")
		return nil
	}

	database.EnableBunSqlSilent(true)
	defer database.EnableBunSqlSilent(false)

	err = db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		teamA, teamB := domain.NewTeam("teamA"), domain.NewTeam("teamB")
		if err := teams.CreateWithTx(ctx, &tx, teamA, teamB); err != nil {
			return err
		}
		seed := make([]*domain.Member, 0, demoMemberCount)
		for i := 0; i < demoMemberCount; i++ {
			team := teamA
			if i%2 != 0 {
				team = teamB
			}
			seed = append(seed, domain.NewMember(fmt.Sprintf("member%d", i), i, team))
		}
		return members.CreateWithTx(ctx, &tx, seed...)
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	log.WithField("members", demoMemberCount).Info("demo data initialized")
	return nil
}
