package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	DealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descrow_deals_created_total",
		Help: "Number of deals successfully created.",
	})
	DealsFunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descrow_deals_funded_total",
		Help: "Number of deals successfully funded.",
	})
	DealsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descrow_deals_released_total",
		Help: "Number of deals released to the seller.",
	})
	DealsRefunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descrow_deals_refunded_total",
		Help: "Number of deals refunded to the buyer.",
	})
)
