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

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/roster"
	"github.com/tomoncle/roster/api"
	"github.com/tomoncle/roster/config"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/utils"
)

var log = utils.NewLogger("MAIN")

func main() {
	configPath := flag.String("config", utils.EnvDefaultString("APP_CONFIG", "configs/config.yaml"), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}
	utils.ConfigureLogLevel(cfg.Log.Level)
	utils.ConfigureConsoleLogFormat(cfg.Log.Format)
	if cfg.Profile != config.ProfileLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	db, err := database.InitDB(ctx, cfg.ConfigLoader())
	if err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			log.WithError(err).Error("closing database")
		}
	}()

	if cfg.SeedDemoData() {
		if err := roster.InitDemoData(ctx, db); err != nil {
			log.Fatalf("demo data initialization failed: %v", err)
		}
	}

	teams := repository.NewTeamRepository(db)
	members := repository.NewMemberRepository(db)

	router := api.NewRouter(api.Options{
		Members:     roster.NewMemberService(members, teams),
		Teams:       roster.NewTeamService(teams),
		Health:      database.GetHealthStatus,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		return
	}
	log.Info("server stopped")
}
