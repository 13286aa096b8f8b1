// Package metrics 单次提取运行的 prometheus 指标，可写出为 node_exporter textfile
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mirak"

// 身份源尝试结果
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics 提取流程指标
type Metrics struct {
	registry *prometheus.Registry

	identityAttempts *prometheus.CounterVec
	discovered       prometheus.Counter
	rejected         prometheus.Counter
	admitted         prometheus.Counter
	listeningPorts   prometheus.Gauge
	duration         prometheus.Gauge
	lastRun          prometheus.Gauge
}

// New 创建并注册全部指标，使用独立的 registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		identityAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_source_attempts_total",
			Help:      "Identity source parse attempts by source and result.",
		}, []string{"source", "result"}),
		discovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_discovered_total",
			Help:      "Raw package records returned by the package manager.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_rejected_total",
			Help:      "Package records rejected by the software catalog.",
		}),
		admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_admitted_total",
			Help:      "Package records admitted to the report.",
		}),
		listeningPorts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "listening_ports",
			Help:      "Listening sockets found on the host.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of the last extraction.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last extraction finished.",
		}),
	}

	m.registry.MustRegister(
		m.identityAttempts,
		m.discovered,
		m.rejected,
		m.admitted,
		m.listeningPorts,
		m.duration,
		m.lastRun,
	)
	return m
}

// Registry 底层 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveIdentity 记录一次身份源尝试
func (m *Metrics) ObserveIdentity(source string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.identityAttempts.WithLabelValues(source, result).Inc()
}

// AddDiscovered 记录包管理器返回的记录数
func (m *Metrics) AddDiscovered(n int) {
	m.discovered.Add(float64(n))
}

// IncRejected 记录一条被拒绝的记录
func (m *Metrics) IncRejected() {
	m.rejected.Inc()
}

// IncAdmitted 记录一条被接收的记录
func (m *Metrics) IncAdmitted() {
	m.admitted.Inc()
}

// SetListeningPorts 记录监听端口数
func (m *Metrics) SetListeningPorts(n int) {
	m.listeningPorts.Set(float64(n))
}

// ObserveRun 记录运行耗时与结束时间
func (m *Metrics) ObserveRun(start, end time.Time) {
	m.duration.Set(end.Sub(start).Seconds())
	m.lastRun.Set(float64(end.Unix()))
}

// WriteToTextfile 以 textfile collector 格式原子写出
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
