package geo

import (
	"fmt"

	"github.com/Kosench/linkpulse/internal/config"
)

// NewProvider собирает провайдер по конфигурации. Удаленные сервисы
// оборачиваются в BreakerProvider. Для provider=none возвращается nil.
func NewProvider(cfg config.GeoConfig) (Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider {
	case config.GeoProviderNone, "":
		return nil, noop, nil
	case config.GeoProviderMMDB:
		p, err := NewMMDBProvider(cfg.MMDBPath)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	case config.GeoProviderIPAPI:
		return NewBreakerProvider(NewIPAPIProvider(cfg.IPAPIRatePerMinute), DefaultBreakerConfig()), noop, nil
	case config.GeoProviderMaxMind:
		p := NewMaxMindProvider(cfg.MaxMindAccountID, cfg.MaxMindLicenseKey)
		return NewBreakerProvider(p, DefaultBreakerConfig()), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown geo provider %q", cfg.Provider)
	}
}

// ResolverConfig переводит секцию geo в конфигурацию резолвера
func ResolverConfig(cfg config.GeoConfig) (Config, error) {
	prefixes, err := cfg.Prefixes()
	if err != nil {
		return Config{}, err
	}

	return Config{
		TestOverrideEnabled: cfg.TestOverrideEnabled,
		FallbackCountry:     cfg.FallbackCountry,
		FallbackCity:        cfg.FallbackCity,
		PrivateRanges:       prefixes,
		Timeout:             cfg.LookupTimeout,
	}, nil
}
