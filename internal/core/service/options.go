package service

import (
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
)

// gatewayOptions are shared by AuthGateway and UserGateway.
type gatewayOptions struct {
	outcomes OutcomeSource
	sleep    Sleeper
	log      logger.Logger
}

// GatewayOption configures a gateway.
type GatewayOption func(*gatewayOptions)

// WithOutcomes sets the outcome source. The default draws random outcomes.
func WithOutcomes(src OutcomeSource) GatewayOption {
	return func(o *gatewayOptions) {
		if src != nil {
			o.outcomes = src
		}
	}
}

// WithSleeper sets how the gateway waits out its latency.
func WithSleeper(s Sleeper) GatewayOption {
	return func(o *gatewayOptions) {
		if s != nil {
			o.sleep = s
		}
	}
}

// WithGatewayLogger sets the gateway logger.
func WithGatewayLogger(l logger.Logger) GatewayOption {
	return func(o *gatewayOptions) {
		if l != nil {
			o.log = l
		}
	}
}

func buildGatewayOptions(opts []GatewayOption) gatewayOptions {
	o := gatewayOptions{
		sleep: Sleep,
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.outcomes == nil {
		o.outcomes = NewRandomOutcomes(0)
	}
	return o
}
