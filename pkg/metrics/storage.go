package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorageMetrics counts persistence adapter failures.
type StorageMetrics struct {
	errors *prometheus.CounterVec
}

func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_errors_total",
		Help: "Persistence adapter errors, by backend and operation.",
	}, []string{"backend", "op"})
	reg.MustRegister(errs)
	return &StorageMetrics{errors: errs}
}

// IncError records a failed adapter call.
func (s *StorageMetrics) IncError(backend, op string) {
	if s == nil || s.errors == nil {
		return
	}
	s.errors.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Inc()
}
