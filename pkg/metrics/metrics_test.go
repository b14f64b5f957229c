package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOrderCreated(t *testing.T) {
	before := testutil.ToFloat64(ordersCreated.WithLabelValues("cart"))
	salesBefore := testutil.ToFloat64(orderSales)

	RecordOrderCreated("cart", 79500)

	assert.Equal(t, before+1, testutil.ToFloat64(ordersCreated.WithLabelValues("cart")))
	assert.Equal(t, salesBefore+79500, testutil.ToFloat64(orderSales))
}

func TestRecordOrderCreatedIgnoresNonPositiveTotal(t *testing.T) {
	salesBefore := testutil.ToFloat64(orderSales)

	assert.NotPanics(t, func() { RecordOrderCreated("menu", -5) })

	assert.Equal(t, salesBefore, testutil.ToFloat64(orderSales))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/main/ranking", "200"))
	RecordHTTPRequest("GET", "/main/ranking", "200", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/main/ranking", "200")))
}
