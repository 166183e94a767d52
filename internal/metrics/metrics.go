package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks back-office operations. Each instance owns its registry so
// several can coexist (tests, multiple servers in one process).
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry           *prometheus.Registry
	Operacoes          *prometheus.CounterVec
	DuracaoOperacao    *prometheus.HistogramVec
	ExportacoesGeradas *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Operacoes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seguradora_operacoes_total",
			Help: "Total number of audited back-office operations by outcome",
		}, []string{"operacao", "sucesso"}),
		DuracaoOperacao: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seguradora_operacao_duracao_seconds",
			Help:    "Duration of audited back-office operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operacao"}),
		ExportacoesGeradas: f.NewCounterVec(prometheus.CounterOpts{
			Name: "seguradora_exportacoes_total",
			Help: "Total number of report exports by format",
		}, []string{"formato"}),
	}
}

// ObserveOperacao records one operation attempt.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveOperacao(operacao string, sucesso bool, start time.Time) {
	if m == nil {
		return
	}
	m.Operacoes.WithLabelValues(operacao, strconv.FormatBool(sucesso)).Inc()
	m.DuracaoOperacao.WithLabelValues(operacao).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementExportacao(formato string) {
	if m == nil {
		return
	}
	m.ExportacoesGeradas.WithLabelValues(formato).Inc()
}

// Handler serves this instance's registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
