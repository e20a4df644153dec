// Package metrics prometheus 指标
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propman_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "propman_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leaseConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propman_lease_conflicts_total",
		Help: "Lease writes refused because the property already has an active lease",
	}, []string{"operation"})

	deletionRefusals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propman_deletion_refusals_total",
		Help: "Deletions refused because dependent leases exist",
	}, []string{"entity"})

	leasesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propman_leases_expired_total",
		Help: "Leases moved to ENDED by the expiry sweep",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLeaseConflict operation 为 create 或 update
func ObserveLeaseConflict(operation string) {
	leaseConflicts.WithLabelValues(operation).Inc()
}

// ObserveDeletionRefused entity 为 property 或 tenant
func ObserveDeletionRefused(entity string) {
	deletionRefusals.WithLabelValues(entity).Inc()
}

func ObserveLeasesExpired(count int64) {
	if count > 0 {
		leasesExpired.Add(float64(count))
	}
}

// Middleware 记录请求数与耗时，path 使用路由模板避免高基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Handler /metrics 端点
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
