package mediafile

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts transfers by source and outcome.
type Metrics struct {
	transfers *prometheus.CounterVec
	bytes     *prometheus.CounterVec
}

// NewMetrics registers the transfer collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "media_transfers_total",
				Help: "Total number of media transfers by source and result.",
			},
			[]string{"source", "result"},
		),
		bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "media_transfer_bytes_total",
				Help: "Bytes written to storage by successful media transfers.",
			},
			[]string{"source"},
		),
	}
	if err := reg.Register(m.transfers); err != nil {
		return nil, err
	}
	if err := reg.Register(m.bytes); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(source string, written int64, err error) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(source, Kind(err)).Inc()
	if err == nil {
		m.bytes.WithLabelValues(source).Add(float64(written))
	}
}
