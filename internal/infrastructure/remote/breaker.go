package remote

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

const (
	breakerMaxRequests      = 3
	breakerInterval         = time.Minute
	breakerOpenTimeout      = 30 * time.Second
	breakerFailureThreshold = 5
	breakerMinRequests      = 10
	breakerFailureRatio     = 0.6
)

// upstreamError falla de transporte o 5xx; solo estas cuentan para abrir el circuito.
// Los errores de negocio (404, 409, 400...) son respuestas válidas del backend.
type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string { return e.err.Error() }
func (e *upstreamError) Unwrap() error { return e.err }

func newBreaker(name string, log *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= breakerFailureThreshold {
				return true
			}
			if counts.Requests >= breakerMinRequests {
				return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerFailureRatio
			}
			return false
		},
		IsSuccessful: func(err error) bool {
			var up *upstreamError
			return !errors.As(err, &up)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cambio de estado del circuit breaker")
		},
	})
}
