package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 应用自定义 Prometheus 指标
// 使用独立的 Registry，便于测试中重复创建
type Metrics struct {
	registry *prometheus.Registry

	SummariesIngested prometheus.Counter
	InsightsIngested  prometheus.Counter
	IngestBatches     *prometheus.CounterVec
	SummariesDeleted  *prometheus.CounterVec
	LoginAttempts     *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// NewMetrics 创建并注册指标
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		SummariesIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "summarydesk_summaries_ingested_total",
			Help: "Total number of summary records persisted by ingestion",
		}),
		InsightsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "summarydesk_insights_ingested_total",
			Help: "Total number of insight records persisted by ingestion",
		}),
		// result: accepted / rejected / failed
		IngestBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "summarydesk_ingest_batches_total",
			Help: "Ingestion batches by outcome",
		}, []string{"result"}),
		// kind: parent / child / single
		SummariesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "summarydesk_summaries_deleted_total",
			Help: "Deleted summary records by structural role",
		}, []string{"kind"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "summarydesk_login_attempts_total",
			Help: "Dashboard login attempts by result",
		}, []string{"result"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "summarydesk_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

// Registry 返回指标注册表
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IngestAccepted 记录一次成功写入的批次
func (m *Metrics) IngestAccepted(summaries, insights int) {
	m.IngestBatches.WithLabelValues("accepted").Inc()
	m.SummariesIngested.Add(float64(summaries))
	m.InsightsIngested.Add(float64(insights))
}

// IngestRejected 记录一次校验失败的批次
func (m *Metrics) IngestRejected() {
	m.IngestBatches.WithLabelValues("rejected").Inc()
}

// IngestFailed 记录一次存储失败的批次
func (m *Metrics) IngestFailed() {
	m.IngestBatches.WithLabelValues("failed").Inc()
}

// Deleted 记录删除的记录数
func (m *Metrics) Deleted(kind string, n int64) {
	if n <= 0 {
		return
	}
	m.SummariesDeleted.WithLabelValues(kind).Add(float64(n))
}

// LoginAttempt 记录登录尝试
func (m *Metrics) LoginAttempt(result string) {
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveHTTP 记录 HTTP 请求耗时
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.HTTPDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
