// Package tracking выводит атрибуты клика из HTTP-запроса.
package tracking

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/Kosench/linkpulse/internal/geo"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/model"
	"github.com/Kosench/linkpulse/internal/utils"
)

const (
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
	HeaderTestCountry  = "X-Test-Country"
	HeaderTestCity     = "X-Test-City"
)

// GeoResolver - то, что экстрактору нужно от geo.Resolver
type GeoResolver interface {
	Resolve(ctx context.Context, ip string, override *geo.Override) (country, city *string)
}

type Extractor struct {
	geo GeoResolver
}

func NewExtractor(resolver GeoResolver) *Extractor {
	return &Extractor{geo: resolver}
}

// Extract собирает AttributionRecord. Сбой при выводе одного поля
// оставляет его Unknown/nil и не мешает остальным.
func (e *Extractor) Extract(ctx context.Context, r *http.Request) (rec model.AttributionRecord) {
	rec = model.AttributionRecord{
		Device:  model.DeviceDesktop,
		Browser: model.Unknown,
		OS:      model.Unknown,
	}

	defer func() {
		if p := recover(); p != nil {
			logging.Ctx(ctx).Error().Interface("panic", p).Msg("tracking extraction panicked")
		}
	}()

	ua := utils.SanitizeInput(r.UserAgent())
	rec.UserAgent = ua
	rec.Referrer = Referrer(r)
	rec.Device = ClassifyDevice(ua)
	rec.Browser = ClassifyBrowser(ua)
	rec.OS = ClassifyOS(ua)

	ip := ClientIP(r)
	if ip != "" {
		rec.IP = &ip
	}

	if e.geo != nil {
		rec.Country, rec.City = e.geo.Resolve(ctx, ip, testOverride(r))
	}

	return rec
}

// Referrer - первый непустой из Referer и Referrer
func Referrer(r *http.Request) *string {
	for _, h := range []string{"Referer", "Referrer"} {
		if v := utils.SanitizeInput(r.Header.Get(h)); v != "" {
			return &v
		}
	}
	return nil
}

// ClientIP - первый адрес X-Forwarded-For, затем X-Real-IP, затем адрес соединения.
// Более поздние записи X-Forwarded-For могли добавить промежуточные прокси.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get(HeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := utils.SanitizeInput(first); ip != "" {
			return ip
		}
	}

	if ip := utils.SanitizeInput(r.Header.Get(HeaderRealIP)); ip != "" {
		return ip
	}

	return remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// testOverride читает тестовые заголовки, применять их или нет решает резолвер
func testOverride(r *http.Request) *geo.Override {
	country := utils.SanitizeInput(r.Header.Get(HeaderTestCountry))
	if country == "" {
		return nil
	}
	return &geo.Override{
		Country: country,
		City:    utils.SanitizeInput(r.Header.Get(HeaderTestCity)),
	}
}
