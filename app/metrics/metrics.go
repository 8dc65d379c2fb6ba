package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	signatureTests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqcprov",
			Subsystem: "harness",
			Name:      "signature_tests_total",
			Help:      "Count of signature round-trip tests classified by result",
		},
		[]string{"result"},
	)

	kemTests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqcprov",
			Subsystem: "harness",
			Name:      "kem_tests_total",
			Help:      "Count of group KEM round-trip tests classified by result",
		},
		[]string{"result"},
	)

	enumerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pqcprov",
			Subsystem: "capabilities",
			Name:      "enumerations_total",
			Help:      "Count of capability enumerations by capability kind",
		},
		[]string{"kind"},
	)

	signSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pqcprov",
			Subsystem: "harness",
			Name:      "sign_seconds",
			Help:      "Time spent producing signatures during round-trip tests",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1},
		},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		prometheus.MustRegister(signatureTests, kemTests, enumerations, signSeconds)
	})
}

func SignatureTestsCounter() *prometheus.CounterVec {
	ensureRegistered()
	return signatureTests
}

func KEMTestsCounter() *prometheus.CounterVec {
	ensureRegistered()
	return kemTests
}

func EnumerationsCounter() *prometheus.CounterVec {
	ensureRegistered()
	return enumerations
}

func SignObserver() prometheus.Observer {
	ensureRegistered()
	return signSeconds
}
