package geo

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kosench/linkpulse/internal/config"
)

type fakeProvider struct {
	calls atomic.Int32
	loc   *Location
	err   error
	delay time.Duration
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		// намеренно не слушает ctx
		time.Sleep(f.delay)
	}
	return f.loc, f.err
}

func defaultPrefixes(t *testing.T) []netip.Prefix {
	t.Helper()
	cfg := config.GeoConfig{PrivateRanges: config.DefaultPrivateRanges}
	prefixes, err := cfg.Prefixes()
	require.NoError(t, err)
	return prefixes
}

func newTestResolver(t *testing.T, cfg Config, p Provider) *Resolver {
	t.Helper()
	if cfg.PrivateRanges == nil {
		cfg.PrivateRanges = defaultPrefixes(t)
	}
	return NewResolver(cfg, p)
}

func TestResolver_SkipsNonPublicAddresses(t *testing.T) {
	tests := []string{
		"127.0.0.1",
		"192.168.1.5",
		"10.1.2.3",
		"172.16.0.1",
		"172.31.255.255",
		"::1",
		"::ffff:192.168.1.5",
		"0.0.0.0",
	}

	for _, ip := range tests {
		t.Run(ip, func(t *testing.T) {
			p := &fakeProvider{loc: &Location{Country: "US"}}
			r := newTestResolver(t, Config{}, p)

			country, city := r.Resolve(context.Background(), ip, nil)

			assert.Nil(t, country)
			assert.Nil(t, city)
			assert.Zero(t, p.calls.Load(), "no lookup expected for %s", ip)
		})
	}
}

func TestResolver_172OutsidePrivateBlockIsLookedUp(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "US"}}
	r := newTestResolver(t, Config{}, p)

	country, _ := r.Resolve(context.Background(), "172.32.0.1", nil)

	require.NotNil(t, country)
	assert.Equal(t, "US", *country)
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestResolver_PublicLookup(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "US", City: "Mountain View"}}
	r := newTestResolver(t, Config{}, p)

	country, city := r.Resolve(context.Background(), "8.8.8.8", nil)

	require.NotNil(t, country)
	require.NotNil(t, city)
	assert.Equal(t, "US", *country)
	assert.Equal(t, "Mountain View", *city)
}

func TestResolver_LookupWithoutCity(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "BR"}}
	r := newTestResolver(t, Config{}, p)

	country, city := r.Resolve(context.Background(), "200.160.2.3", nil)

	require.NotNil(t, country)
	assert.Equal(t, "BR", *country)
	assert.Nil(t, city)
}

func TestResolver_FailuresDegradeToNull(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{name: "provider error", provider: &fakeProvider{err: errors.New("service unavailable")}},
		{name: "unknown address", provider: &fakeProvider{}},
		{name: "empty country", provider: &fakeProvider{loc: &Location{City: "Nowhere"}}},
		{name: "slow provider", provider: &fakeProvider{loc: &Location{Country: "US"}, delay: 200 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, Config{
				Timeout:         20 * time.Millisecond,
				FallbackCountry: "DE",
			}, tt.provider)

			start := time.Now()
			country, city := r.Resolve(context.Background(), "8.8.8.8", nil)

			assert.Nil(t, country, "lookup failure must not use fallback")
			assert.Nil(t, city)
			assert.Less(t, time.Since(start), 150*time.Millisecond)
		})
	}
}

func TestResolver_Override(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "US"}}
	override := &Override{Country: "FR", City: "Paris"}

	t.Run("enabled", func(t *testing.T) {
		r := newTestResolver(t, Config{TestOverrideEnabled: true}, p)

		country, city := r.Resolve(context.Background(), "8.8.8.8", override)

		require.NotNil(t, country)
		require.NotNil(t, city)
		assert.Equal(t, "FR", *country)
		assert.Equal(t, "Paris", *city)
		assert.Zero(t, p.calls.Load())
	})

	t.Run("enabled for private address", func(t *testing.T) {
		r := newTestResolver(t, Config{TestOverrideEnabled: true}, p)

		country, _ := r.Resolve(context.Background(), "127.0.0.1", override)

		require.NotNil(t, country)
		assert.Equal(t, "FR", *country)
	})

	t.Run("lowercase code is normalized", func(t *testing.T) {
		r := newTestResolver(t, Config{TestOverrideEnabled: true}, p)

		country, _ := r.Resolve(context.Background(), "8.8.8.8", &Override{Country: " fr "})

		require.NotNil(t, country)
		assert.Equal(t, "FR", *country)
	})

	t.Run("disabled", func(t *testing.T) {
		r := newTestResolver(t, Config{TestOverrideEnabled: false}, p)

		country, _ := r.Resolve(context.Background(), "8.8.8.8", override)

		require.NotNil(t, country)
		assert.Equal(t, "US", *country)
	})
}

func TestResolver_MalformedOverrideIgnored(t *testing.T) {
	tests := []struct {
		name    string
		country string
	}{
		{name: "too long", country: strings.Repeat("X", 100)},
		{name: "single letter", country: "F"},
		{name: "digits", country: "F1"},
		{name: "non latin", country: "РФ"},
		{name: "sql", country: "'; --"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{loc: &Location{Country: "US", City: "Mountain View"}}
			r := newTestResolver(t, Config{TestOverrideEnabled: true}, p)

			country, city := r.Resolve(context.Background(), "8.8.8.8", &Override{Country: tt.country, City: "Paris"})

			require.NotNil(t, country)
			assert.Equal(t, "US", *country)
			require.NotNil(t, city)
			assert.Equal(t, "Mountain View", *city)
			assert.EqualValues(t, 1, p.calls.Load())
		})
	}
}

func TestResolver_Fallback(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "US"}}
	r := newTestResolver(t, Config{FallbackCountry: "RU", FallbackCity: "Moscow"}, p)

	for _, ip := range []string{"", "127.0.0.1", "192.168.0.10"} {
		country, city := r.Resolve(context.Background(), ip, nil)

		require.NotNil(t, country, "ip %q", ip)
		require.NotNil(t, city)
		assert.Equal(t, "RU", *country)
		assert.Equal(t, "Moscow", *city)
	}
	assert.Zero(t, p.calls.Load())

	country, _ := r.Resolve(context.Background(), "8.8.8.8", nil)
	require.NotNil(t, country)
	assert.Equal(t, "US", *country)
}

func TestResolver_InvalidIP(t *testing.T) {
	p := &fakeProvider{loc: &Location{Country: "US"}}
	r := newTestResolver(t, Config{FallbackCountry: "RU"}, p)

	country, city := r.Resolve(context.Background(), "not-an-ip", nil)

	assert.Nil(t, country)
	assert.Nil(t, city)
	assert.Zero(t, p.calls.Load())
}

func TestResolver_NilProvider(t *testing.T) {
	r := newTestResolver(t, Config{}, nil)

	country, city := r.Resolve(context.Background(), "8.8.8.8", nil)

	assert.Nil(t, country)
	assert.Nil(t, city)
}

func TestResolverConfig(t *testing.T) {
	cfg, err := ResolverConfig(config.GeoConfig{
		TestOverrideEnabled: true,
		FallbackCountry:     "US",
		PrivateRanges:       []string{"10.0.0.0/8"},
		LookupTimeout:       time.Second,
	})
	require.NoError(t, err)

	assert.True(t, cfg.TestOverrideEnabled)
	assert.Equal(t, "US", cfg.FallbackCountry)
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, cfg.PrivateRanges)
	assert.Equal(t, time.Second, cfg.Timeout)

	_, err = ResolverConfig(config.GeoConfig{PrivateRanges: []string{"bogus"}})
	assert.Error(t, err)
}

func TestNewProvider_None(t *testing.T) {
	p, closeFn, err := NewProvider(config.GeoConfig{Provider: config.GeoProviderNone})
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, closeFn())
}

func TestNewProvider_RemoteIsWrapped(t *testing.T) {
	p, _, err := NewProvider(config.GeoConfig{Provider: config.GeoProviderIPAPI, IPAPIRatePerMinute: 10})
	require.NoError(t, err)

	_, ok := p.(*BreakerProvider)
	assert.True(t, ok)
	assert.Equal(t, "ip-api.com", p.Name())
}

func TestNewProvider_MissingMMDB(t *testing.T) {
	_, _, err := NewProvider(config.GeoConfig{Provider: config.GeoProviderMMDB, MMDBPath: "/nonexistent/GeoLite2-City.mmdb"})
	assert.Error(t, err)
}
