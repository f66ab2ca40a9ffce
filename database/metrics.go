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

package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/uptrace/bun"
)

// MetricsHook records query counts and latencies per operation.
type MetricsHook struct {
	Queries  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var _ bun.QueryHook = (*MetricsHook)(nil)

var (
	defaultMetricsHook     *MetricsHook
	defaultMetricsHookOnce sync.Once
)

// NewMetricsHook registers the query collectors on reg.
func NewMetricsHook(reg prometheus.Registerer) *MetricsHook {
	factory := promauto.With(reg)
	return &MetricsHook{
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_db_queries_total",
			Help: "Total number of executed SQL statements",
		}, []string{"operation", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_db_query_duration_seconds",
			Help:    "Duration of SQL statements",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// DefaultMetricsHook returns the hook registered on the default registry.
func DefaultMetricsHook() *MetricsHook {
	defaultMetricsHookOnce.Do(func() {
		defaultMetricsHook = NewMetricsHook(prometheus.DefaultRegisterer)
	})
	return defaultMetricsHook
}

func (h *MetricsHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *MetricsHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	op := event.Operation()
	status := "ok"
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		status = "error"
	}
	h.Queries.WithLabelValues(op, status).Inc()
	h.Duration.WithLabelValues(op).Observe(time.Since(event.StartTime).Seconds())
}
