package geo

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/metrics"
)

// BreakerProvider оборачивает провайдер в circuit breaker:
// при серии ошибок запросы к нему сразу отклоняются с gobreaker.ErrOpenState
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*Location]
}

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

func NewBreakerProvider(next Provider, cfg BreakerConfig) *BreakerProvider {
	name := next.Name()
	metrics.GeoBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Location](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		// локальный лимит ip-api не говорит о сбое провайдера
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRateLimited)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("provider", name).Str("from", from.String()).Str("to", to.String()).Msg("geo circuit breaker state changed")
			metrics.GeoBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &BreakerProvider{next: next, cb: cb}
}

func (p *BreakerProvider) Name() string {
	return p.next.Name()
}

func (p *BreakerProvider) Lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	return p.cb.Execute(func() (*Location, error) {
		return p.next.Lookup(ctx, addr)
	})
}

func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
