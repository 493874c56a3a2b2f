package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	model "gallery-auctions/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAuctionCreated()
	m.ObserveBid(model.BidAccepted)
	m.ObserveBid(model.BidAccepted)
	m.ObserveBid(model.BidExpired)
	m.ObserveSettlement()
	m.ObserveRequest(http.MethodPost, "/auctions/:auction_id/bids", http.StatusCreated, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(m.AuctionsCreated))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Bids.WithLabelValues("accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues("expired")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Settlements))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("POST", "/auctions/:auction_id/bids", "201")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveAuctionCreated()
		m.ObserveBid(model.BidTooLow)
		m.ObserveSettlement()
		m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveBid(model.BidTooLow)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), `gallery_bids_total{result="too_low"} 1`))
}
