package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// limitbook_orderbook_usecase_level_filled_total
	//
	// counter that measures the number of levels fully executed by the
	// crossing loop
	LevelFilledMetricName = "limitbook_orderbook_usecase_level_filled_total"

	// limitbook_orderbook_usecase_fill_iteration_bound_reached_total
	//
	// counter that measures the number of price updates whose fill cascade
	// hit the configured iteration bound before the book was exhausted
	FillIterationBoundReachedMetricName = "limitbook_orderbook_usecase_fill_iteration_bound_reached_total"

	// limitbook_orderbook_usecase_collaborator_failure_total
	//
	// counter that measures the number of operations aborted by an AMM,
	// custody or claim ledger collaborator failure
	CollaboratorFailureMetricName = "limitbook_orderbook_usecase_collaborator_failure_total"

	// limitbook_orderbook_usecase_price_update_error_total
	//
	// counter that measures the number of errors that occur during
	// processing a price update
	PriceUpdateErrorMetricName = "limitbook_orderbook_usecase_price_update_error_total"

	LevelFilledCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: LevelFilledMetricName,
			Help: "counter that measures the number of levels fully executed by the crossing loop",
		},
	)

	FillIterationBoundReachedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: FillIterationBoundReachedMetricName,
			Help: "counter that measures the number of price updates whose fill cascade hit the configured iteration bound",
		},
	)

	CollaboratorFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: CollaboratorFailureMetricName,
			Help: "counter that measures the number of operations aborted by a collaborator failure",
		},
	)

	PriceUpdateErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: PriceUpdateErrorMetricName,
			Help: "counter that measures the number of errors that occur during processing a price update",
		},
	)
)

func init() {
	prometheus.MustRegister(LevelFilledCounter)
	prometheus.MustRegister(FillIterationBoundReachedCounter)
	prometheus.MustRegister(CollaboratorFailureCounter)
	prometheus.MustRegister(PriceUpdateErrorCounter)
}
