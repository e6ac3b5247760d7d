package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// ErrRateLimited - локальный лимит запросов к провайдеру исчерпан
var ErrRateLimited = errors.New("geo provider rate limit exceeded")

// IPAPIProvider - бесплатный ip-api.com, без ключа, 45 запросов в минуту
type IPAPIProvider struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

type ipAPIResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

func NewIPAPIProvider(perMinute int) *IPAPIProvider {
	if perMinute <= 0 {
		perMinute = 45
	}
	return &IPAPIProvider{
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		baseURL: "http://ip-api.com/json",
	}
}

func (p *IPAPIProvider) Name() string {
	return "ip-api.com"
}

func (p *IPAPIProvider) Lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	if !p.limiter.Allow() {
		return nil, ErrRateLimited
	}

	url := fmt.Sprintf("%s/%s?fields=status,message,countryCode,city", p.baseURL, addr.Unmap())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query ip-api.com: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ip-api.com returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode ip-api.com response: %w", err)
	}

	if result.Status != "success" {
		// reserved range, private range, invalid query
		return nil, nil
	}

	return &Location{Country: result.CountryCode, City: result.City}, nil
}
