package rerun

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	compiled  prometheus.Counter
	cacheHits prometheus.Counter
	runs      prometheus.Counter
	runErrors prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		compiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rerun",
			Name:      "programs_compiled_total",
			Help:      "Number of rerun programs compiled to native code.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rerun",
			Name:      "compile_cache_hits_total",
			Help:      "Number of compilations served from the module cache.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rerun",
			Name:      "runs_total",
			Help:      "Number of calls to compute.",
		}),
		runErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rerun",
			Name:      "run_errors_total",
			Help:      "Number of calls to compute that trapped or failed to instantiate.",
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.compiled, m.cacheHits, m.runs, m.runErrors} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
