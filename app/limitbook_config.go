package main

import (
	"github.com/osmosis-labs/limitbook/domain"
)

// DefaultConfig defines the default config for the limit order engine server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "limitbook.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Server-Time",
		AllowedMethods: "HEAD, GET, POST, DELETE, OPTIONS, PATCH, PUT",
		AllowedOrigin:  "*",
	},

	Orderbook: &domain.OrderbookConfig{
		MaxFillIterations:         domain.DefaultMaxFillIterations,
		PriceUpdatePollIntervalMs: 200,
		Markets: []domain.MarketConfig{
			{
				ID:          1,
				BaseDenom:   "base",
				QuoteDenom:  "quote",
				TickSpacing: 100,
			},
		},
	},
}
