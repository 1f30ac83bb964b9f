package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tripsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driverpay_trips_created_total",
		Help: "Total number of trips logged",
	})

	settlementsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverpay_settlements_created_total",
			Help: "Total number of pending settlements created",
		},
		[]string{"type"},
	)

	settlementsPaidTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverpay_settlements_paid_total",
			Help: "Total number of settlements moved to PAID",
		},
		[]string{"type"},
	)

	settlementAmountPaidTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driverpay_settlement_amount_paid_total",
			Help: "Sum of settled amounts",
		},
		[]string{"type"},
	)
)
