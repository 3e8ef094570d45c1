package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the solves counter.
const (
	OutcomeHit        = "hit"
	OutcomeOutOfRange = "out_of_range"
	OutcomeRejected   = "rejected"
)

// Recorder holds the solver collectors. A nil *Recorder records nothing.
type Recorder struct {
	solves       *prometheus.CounterVec
	flightTime   *prometheus.HistogramVec
	apexHeight   *prometheus.HistogramVec
	samplePoints prometheus.Counter
	reachTrials  prometheus.Counter
	reloads      prometheus.Counter
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ballistics_solves_total",
				Help: "Solve requests by mode, branch and outcome",
			},
			[]string{"mode", "branch", "outcome"},
		),
		flightTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ballistics_flight_time_seconds",
				Help:    "Flight time of successful solutions",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"mode"},
		),
		apexHeight: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ballistics_apex_height_meters",
				Help:    "Apex above the launch point of successful solutions",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"mode"},
		),
		samplePoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ballistics_sample_points_total",
			Help: "Trajectory points produced by the predictor",
		}),
		reachTrials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ballistics_reach_trials_total",
			Help: "Random targets fired at by reachability sweeps",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ballistics_config_reloads_total",
			Help: "Weapon record changes picked up by the watcher",
		}),
	}
	reg.MustRegister(r.solves, r.flightTime, r.apexHeight, r.samplePoints, r.reachTrials, r.reloads)
	return r
}

// Solve records one solve attempt. flight and apex are only observed on hits.
func (r *Recorder) Solve(mode, branch, outcome string, flight, apex float64) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(mode, branch, outcome).Inc()
	if outcome == OutcomeHit {
		r.flightTime.WithLabelValues(mode).Observe(flight)
		r.apexHeight.WithLabelValues(mode).Observe(apex)
	}
}

func (r *Recorder) SamplePoints(n int) {
	if r == nil {
		return
	}
	r.samplePoints.Add(float64(n))
}

func (r *Recorder) ReachTrials(n int) {
	if r == nil {
		return
	}
	r.reachTrials.Add(float64(n))
}

func (r *Recorder) Reload() {
	if r == nil {
		return
	}
	r.reloads.Inc()
}
