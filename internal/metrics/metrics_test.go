package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.Solve("fixed_speed", "level", OutcomeHit, 1.2, 3)
	r.Solve("fixed_speed", "level", OutcomeHit, 0.8, 1)
	r.Solve("fixed_speed", "", OutcomeOutOfRange, 0, 0)
	r.SamplePoints(31)
	r.SamplePoints(11)
	r.ReachTrials(500)
	r.Reload()

	if got := testutil.ToFloat64(r.solves.WithLabelValues("fixed_speed", "level", OutcomeHit)); got != 2 {
		t.Fatalf("hits = %v", got)
	}
	if got := testutil.ToFloat64(r.solves.WithLabelValues("fixed_speed", "", OutcomeOutOfRange)); got != 1 {
		t.Fatalf("misses = %v", got)
	}
	if got := testutil.ToFloat64(r.samplePoints); got != 42 {
		t.Fatalf("sample points = %v", got)
	}
	if got := testutil.ToFloat64(r.reachTrials); got != 500 {
		t.Fatalf("reach trials = %v", got)
	}
	if got := testutil.ToFloat64(r.reloads); got != 1 {
		t.Fatalf("reloads = %v", got)
	}
	// only hits feed the histograms
	if n := testutil.CollectAndCount(r.flightTime); n != 1 {
		t.Fatalf("flight-time series = %d", n)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Solve("arc_height", "arc", OutcomeHit, 1, 1)
	r.SamplePoints(3)
	r.ReachTrials(3)
	r.Reload()
}

func TestDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	New(reg)
}
