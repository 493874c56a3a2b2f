package metrics

import (
	"net/http"
	"strconv"
	"time"

	model "gallery-auctions/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported by the auction service
type Metrics struct {
	AuctionsCreated prometheus.Counter
	Bids            *prometheus.CounterVec
	Settlements     prometheus.Counter
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuctionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gallery_auctions_created_total",
			Help: "Total number of auctions created",
		}),
		Bids: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_bids_total",
			Help: "Total number of bid attempts by outcome",
		}, []string{"result"}),
		Settlements: factory.NewCounter(prometheus.CounterOpts{
			Name: "gallery_auctions_settled_total",
			Help: "Total number of auctions settled",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}
}

// ObserveBid counts one bid attempt. Safe on a nil receiver.
func (m *Metrics) ObserveBid(result model.BidResult) {
	if m == nil {
		return
	}
	m.Bids.WithLabelValues(result.String()).Inc()
}

// ObserveAuctionCreated counts one created auction. Safe on a nil receiver.
func (m *Metrics) ObserveAuctionCreated() {
	if m == nil {
		return
	}
	m.AuctionsCreated.Inc()
}

// ObserveSettlement counts one settled auction. Safe on a nil receiver.
func (m *Metrics) ObserveSettlement() {
	if m == nil {
		return
	}
	m.Settlements.Inc()
}

// ObserveRequest records one served HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
