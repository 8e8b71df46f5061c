package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	items := testutil.ToFloat64(ItemsCountTotal)
	ok := testutil.ToFloat64(QuotesTotal.WithLabelValues("ok"))

	var r Recorder
	r.RecordItems(3)
	r.RecordItems(0)
	r.RecordQuote("ok")

	if got := testutil.ToFloat64(ItemsCountTotal) - items; got != 3 {
		t.Errorf("expected items counter +3, got +%v", got)
	}
	if got := testutil.ToFloat64(QuotesTotal.WithLabelValues("ok")) - ok; got != 1 {
		t.Errorf("expected ok quotes +1, got +%v", got)
	}
}

func TestRecorder_ObserveOracleCall(t *testing.T) {
	before := testutil.CollectAndCount(OracleRequestDuration)

	var r Recorder
	r.ObserveOracleCall("transport", 20*time.Millisecond)

	if got := testutil.CollectAndCount(OracleRequestDuration); got < before || got == 0 {
		t.Errorf("expected an oracle duration series, got %d", got)
	}
}
