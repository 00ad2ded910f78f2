package monitoring

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestSummary = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "http_requests",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
)

func HandlerMetrics(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// This is so that PUT /api/v1/faculty/publications/42 is formatted as PUT /api/v1/faculty/publications/{publication_id}
		rctx := chi.RouteContext(r.Context())
		routePattern := strings.Replace(strings.Join(rctx.RoutePatterns, ""), "/*/", "/", -1)

		requestSummary.WithLabelValues(r.Method, routePattern, strconv.Itoa(ww.Status())).Observe(float64(time.Since(start).Milliseconds()))
	}
	return http.HandlerFunc(fn)
}

var (
	ReportsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated",
		Help: "Total number of reports generated",
	}, []string{"report_type", "format"})

	ReportsServedFromArchive = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_served_from_archive",
		Help: "Total number of archived reports re-served by id",
	}, []string{"report_type"})

	PublicationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "publications_created",
		Help: "Total number of publications created",
	}, []string{"publication_type"})

	ReportSourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_source_failures",
		Help: "Total number of report data sources that failed during aggregation",
	}, []string{"source"})
)

func ExposeBackendMetrics(port int) {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestSummary,
		ReportsGenerated,
		ReportsServedFromArchive,
		PublicationsCreated,
		ReportSourceFailures,
	)

	slog.Info("exposing backend metrics", "port", port)

	go func() {
		handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), handler); err != nil {
			log.Fatalf("error starting metrics server: %v", err)
		}
	}()
}
