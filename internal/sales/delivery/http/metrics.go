package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	salesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "Total number of committed sales",
		},
		[]string{"payment_method"},
	)

	saleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sale_failures_total",
			Help: "Total number of rejected or failed sale attempts",
		},
		[]string{"kind"},
	)

	saleAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sale_amount_total",
			Help: "Cumulative total amount of committed sales",
		},
	)
)
