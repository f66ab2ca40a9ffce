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
	"github.com/tomoncle/roster/database"
)

// HealthChecker reports the database health.
type HealthChecker func(ctx context.Context) *database.HealthStatus

type HealthHandler struct {
	check HealthChecker
}

func NewHealthHandler(check HealthChecker) *HealthHandler {
	if check == nil {
		check = database.GetHealthStatus
	}
	return &HealthHandler{check: check}
}

// Liveness responds OK while the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness answers 503 unless the database ping succeeds.
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := h.check(c.Request.Context())
	if status == nil || !status.Healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "database": status})
}
