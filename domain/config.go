package domain

// Config defines the config for the limit order engine server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// CORS encapsulates the CORS configuration.
	CORS *CORSConfig `mapstructure:"cors"`

	// OTEL encapsulates the OpenTelemetry configuration.
	OTEL *OTELConfig `mapstructure:"otel"`

	// Orderbook encapsulates the limit order engine config.
	Orderbook *OrderbookConfig `mapstructure:"orderbook"`
}

// CORSConfig defines the CORS headers served by the middleware.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig defines the tracing and error reporting configuration.
type OTELConfig struct {
	DSN         string  `mapstructure:"dsn"`
	SampleRate  float64 `mapstructure:"sample-rate"`
	Environment string  `mapstructure:"environment"`
}

// OrderbookConfig defines the limit order engine configuration.
type OrderbookConfig struct {
	// MaxFillIterations bounds the number of levels a single price update
	// may execute. Protects against adversarially tightly-packed resting
	// orders turning one trade into an unbounded fill cascade.
	MaxFillIterations int `mapstructure:"max-fill-iterations"`

	// PriceUpdatePollIntervalMs is the poll interval of the price listener.
	PriceUpdatePollIntervalMs int `mapstructure:"price-update-poll-interval-ms"`

	// Markets are the markets registered at startup.
	Markets []MarketConfig `mapstructure:"markets"`
}

// MarketConfig defines a single market (one trading pair, one tick spacing)
// served by the engine.
type MarketConfig struct {
	ID          uint64 `mapstructure:"id"`
	BaseDenom   string `mapstructure:"base-denom"`
	QuoteDenom  string `mapstructure:"quote-denom"`
	TickSpacing uint64 `mapstructure:"tick-spacing"`
}

// DefaultMaxFillIterations bounds the fill cascade when unset in config.
const DefaultMaxFillIterations = 256
