package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_cache_lookups_total",
			Help: "Restaurant cache lookups by key kind and result",
		},
		[]string{"kind", "result"},
	)
	filterDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "restaurant_filter_duration_seconds",
			Help:    "Time spent applying name and opening-hours filters",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)
	unparseableHours = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "restaurant_unparseable_hours",
			Help: "Restaurants whose opening hours yield no schedule entry",
		},
	)
	tasksProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_tasks_total",
			Help: "Background tasks by type and status",
		},
		[]string{"type", "status"},
	)

	registerOnce sync.Once
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, cacheLookups, filterDuration, unparseableHours, tasksProcessed)
	})
}

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// Middleware labels requests with the route pattern, not the raw path.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func CacheHit(kind string)  { cacheLookups.WithLabelValues(kind, "hit").Inc() }
func CacheMiss(kind string) { cacheLookups.WithLabelValues(kind, "miss").Inc() }

func CacheError(kind string) { cacheLookups.WithLabelValues(kind, "error").Inc() }

func ObserveFilter(d time.Duration) {
	filterDuration.Observe(d.Seconds())
}

func SetUnparseable(n int) {
	unparseableHours.Set(float64(n))
}

func TaskProcessed(taskType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	tasksProcessed.WithLabelValues(taskType, status).Inc()
}
