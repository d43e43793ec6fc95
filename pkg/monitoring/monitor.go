package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// RecommendationCounter 按模式统计的推荐生成次数
	RecommendationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Total number of recommendation generations by mode",
		},
		[]string{"mode"},
	)

	// AdaptationCounter 已提交的画像调整次数
	AdaptationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_adaptations_total",
			Help: "Total number of committed learner profile adaptations",
		},
	)

	// CatalogErrorCounter 内容目录调用失败次数。
	// 目录错误和"无匹配内容"对调用方都表现为空列表，靠这里区分。
	CatalogErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_errors_total",
			Help: "Total number of failed content catalog calls",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RecommendationCounter)
	prometheus.MustRegister(AdaptationCounter)
	prometheus.MustRegister(CatalogErrorCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
