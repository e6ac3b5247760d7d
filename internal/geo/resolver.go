// Package geo определяет страну и город клиента по IP.
package geo

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"time"

	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/metrics"
)

// Location - результат поиска, Country в формате ISO 3166-1 alpha-2
type Location struct {
	Country string
	City    string
}

// Provider - источник соответствия IP -> география.
// Неизвестный адрес возвращается как (nil, nil).
type Provider interface {
	Lookup(ctx context.Context, addr netip.Addr) (*Location, error)
	Name() string
}

// Override - явные страна и город для тестовых окружений
type Override struct {
	Country string
	City    string
}

type Config struct {
	TestOverrideEnabled bool
	FallbackCountry     string
	FallbackCity        string
	PrivateRanges       []netip.Prefix
	Timeout             time.Duration
}

// ErrLookupTimeout - провайдер не уложился в отведенное время
var ErrLookupTimeout = errors.New("geo lookup timed out")

const defaultTimeout = 300 * time.Millisecond

type Resolver struct {
	cfg      Config
	provider Provider
}

// NewResolver создает резолвер, provider может быть nil - тогда поиск не выполняется
func NewResolver(cfg Config, provider Provider) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Resolver{cfg: cfg, provider: provider}
}

// Resolve возвращает страну и город для IP клиента. Никогда не возвращает ошибку:
// все сбои превращаются в (nil, nil).
//
// Порядок: тестовый override, затем пропуск непубличных адресов
// (с подстановкой fallback из конфигурации), затем поиск у провайдера.
func (r *Resolver) Resolve(ctx context.Context, ip string, override *Override) (country, city *string) {
	if r.cfg.TestOverrideEnabled && override != nil && override.Country != "" {
		if code, ok := overrideCountry(override.Country); ok {
			metrics.RecordGeoLookup(metrics.GeoResultOverride)
			return &code, optional(override.City)
		}
		logging.Ctx(ctx).Debug().Int("length", len(override.Country)).Msg("malformed test country override ignored")
	}

	ip = strings.TrimSpace(ip)
	if ip == "" {
		return r.fallback()
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		logging.Ctx(ctx).Debug().Str("ip", ip).Msg("unparseable client ip, skipping geo lookup")
		metrics.RecordGeoLookup(metrics.GeoResultSkipped)
		return nil, nil
	}

	if r.IsPrivate(addr) {
		return r.fallback()
	}

	if r.provider == nil {
		metrics.RecordGeoLookup(metrics.GeoResultSkipped)
		return nil, nil
	}

	loc, err := r.lookup(ctx, addr)
	switch {
	case errors.Is(err, ErrLookupTimeout):
		metrics.RecordGeoLookup(metrics.GeoResultTimeout)
		logging.Ctx(ctx).Warn().Str("provider", r.provider.Name()).Dur("timeout", r.cfg.Timeout).Msg("geo lookup timed out")
		return nil, nil
	case err != nil:
		metrics.RecordGeoLookup(metrics.GeoResultError)
		logging.Ctx(ctx).Warn().Err(err).Str("provider", r.provider.Name()).Msg("geo lookup failed")
		return nil, nil
	case loc == nil || loc.Country == "":
		metrics.RecordGeoLookup(metrics.GeoResultMiss)
		return nil, nil
	}

	metrics.RecordGeoLookup(metrics.GeoResultHit)
	return optional(loc.Country), optional(loc.City)
}

// lookup ждет провайдера не дольше cfg.Timeout, даже если тот игнорирует отмену контекста
func (r *Resolver) lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	type result struct {
		loc *Location
		err error
	}

	done := make(chan result, 1)
	start := time.Now()

	go func() {
		loc, err := r.provider.Lookup(ctx, addr)
		done <- result{loc: loc, err: err}
	}()

	select {
	case res := <-done:
		metrics.ObserveGeoLookup(r.provider.Name(), start)
		if errors.Is(res.err, context.DeadlineExceeded) {
			return nil, ErrLookupTimeout
		}
		return res.loc, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrLookupTimeout
		}
		return nil, ctx.Err()
	}
}

// IsPrivate - адрес loopback, unspecified или попадает в непубличные диапазоны
func (r *Resolver) IsPrivate(addr netip.Addr) bool {
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsUnspecified() {
		return true
	}
	for _, p := range r.cfg.PrivateRanges {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func (r *Resolver) fallback() (*string, *string) {
	if r.cfg.FallbackCountry == "" {
		metrics.RecordGeoLookup(metrics.GeoResultSkipped)
		return nil, nil
	}
	metrics.RecordGeoLookup(metrics.GeoResultFallback)
	return optional(r.cfg.FallbackCountry), optional(r.cfg.FallbackCity)
}

// overrideCountry принимает только код из 2-3 латинских букв и приводит его к верхнему регистру
func overrideCountry(value string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if len(code) < 2 || len(code) > 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return code, true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
