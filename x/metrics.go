/*
 * Copyright 2026 The gqlview Authors
 *
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

package x

import (
	"context"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// Cumulative metrics.
	NumQueries = stats.Int64("num_queries_total",
		"Total number of GraphQL queries sent upstream", stats.UnitDimensionless)
	NumRenders = stats.Int64("num_renders_total",
		"Total number of frames mounted on a host", stats.UnitDimensionless)
	LatencyMs = stats.Float64("latency",
		"Latency of the various methods", stats.UnitMilliseconds)

	// Point-in-time metrics.
	PendingQueries = stats.Int64("pending_queries_total",
		"Number of queries that have not settled", stats.UnitDimensionless)

	// Tag keys here
	KeyStatus, _ = tag.NewKey("status")
	KeyMethod, _ = tag.NewKey("method")

	// Tag values here
	TagValueStatusOK    = "ok"
	TagValueStatusError = "error"

	defaultLatencyMsDistribution = view.Distribution(
		0, 0.01, 0.05, 0.1, 0.3, 0.6, 0.8, 1, 2, 3, 4, 5, 6, 8, 10, 13, 16,
		20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500,
		650, 800, 1000, 2000, 5000, 10000, 20000, 50000, 100000)

	allTagKeys = []tag.Key{
		KeyStatus, KeyMethod,
	}

	allViews = []*view.View{
		{
			Name:        LatencyMs.Name(),
			Measure:     LatencyMs,
			Description: LatencyMs.Description(),
			Aggregation: defaultLatencyMsDistribution,
			TagKeys:     allTagKeys,
		},
		{
			Name:        NumQueries.Name(),
			Measure:     NumQueries,
			Description: NumQueries.Description(),
			Aggregation: view.Count(),
			TagKeys:     allTagKeys,
		},
		{
			Name:        NumRenders.Name(),
			Measure:     NumRenders,
			Description: NumRenders.Description(),
			Aggregation: view.Count(),
			TagKeys:     allTagKeys,
		},

		// Running totals
		{
			Name:        PendingQueries.Name(),
			Measure:     PendingQueries,
			Description: PendingQueries.Description(),
			Aggregation: view.Sum(),
			TagKeys:     allTagKeys,
		},
	}
)

// RegisterMetrics registers the OpenCensus views and exposes them in the
// Prometheus text format on mux at /debug/prometheus_metrics.
func RegisterMetrics(mux *http.ServeMux, namespace string) error {
	if err := view.Register(allViews...); err != nil {
		return errors.Wrap(err, "registering OpenCensus views")
	}

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: namespace,
		OnError:   func(err error) { glog.Errorf("%v", err) },
	})
	if err != nil {
		return errors.Wrap(err, "failed to create OpenCensus Prometheus exporter")
	}
	view.RegisterExporter(pe)

	mux.Handle("/debug/prometheus_metrics", pe)
	return nil
}

// WithMethod returns a new updated context with the tag KeyMethod set to the given value.
func WithMethod(parent context.Context, method string) context.Context {
	ctx, err := tag.New(parent, tag.Upsert(KeyMethod, method))
	Check(err)
	return ctx
}

// WithStatus tags ctx with KeyStatus, ok when err is nil and error otherwise.
func WithStatus(parent context.Context, err error) context.Context {
	v := TagValueStatusOK
	if err != nil {
		v = TagValueStatusError
	}
	ctx, tagErr := tag.New(parent, tag.Upsert(KeyStatus, v))
	Check(tagErr)
	return ctx
}

// SinceMs returns the time since startTime in milliseconds (as a float).
func SinceMs(startTime time.Time) float64 {
	return float64(time.Since(startTime)) / 1e6
}
