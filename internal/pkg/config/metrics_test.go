package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var testMetrics = NewConfigMetrics("configtest")

func TestConfigMetrics(t *testing.T) {
	m := testMetrics

	before := testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone"))
	m.RecordFallback("timezone")
	if got := testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")); got != before+1 {
		t.Errorf("fallbacks = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("timezone")); got < 1 {
		t.Errorf("validation errors = %v, want >= 1", got)
	}

	m.SetFallbackActive(true)
	if got := testutil.ToFloat64(m.FallbackActive); got != 1 {
		t.Errorf("fallback active = %v, want 1", got)
	}
	m.SetFallbackActive(false)
	if got := testutil.ToFloat64(m.FallbackActive); got != 0 {
		t.Errorf("fallback active = %v, want 0", got)
	}

	m.RecordLoadTimestamp()
	if got := testutil.ToFloat64(m.LoadTimestamp); got <= 0 {
		t.Errorf("load timestamp = %v, want > 0", got)
	}
}
