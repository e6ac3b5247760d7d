package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRedirect(t *testing.T) {
	before := testutil.ToFloat64(RedirectsTotal.WithLabelValues(OutcomeExpired))

	RecordRedirect(OutcomeExpired)
	RecordRedirect(OutcomeExpired)

	assert.Equal(t, before+2, testutil.ToFloat64(RedirectsTotal.WithLabelValues(OutcomeExpired)))
}

func TestRecordGeoLookup(t *testing.T) {
	before := testutil.ToFloat64(GeoLookupsTotal.WithLabelValues(GeoResultSkipped))

	RecordGeoLookup(GeoResultSkipped)

	assert.Equal(t, before+1, testutil.ToFloat64(GeoLookupsTotal.WithLabelValues(GeoResultSkipped)))
}

func TestObserveClickPersist_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(ClickPersistErrors)

	ObserveClickPersist(time.Now(), nil)
	assert.Equal(t, before, testutil.ToFloat64(ClickPersistErrors))

	ObserveClickPersist(time.Now(), errors.New("insert failed"))
	assert.Equal(t, before+1, testutil.ToFloat64(ClickPersistErrors))
}
