package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"github.com/goccy/go-json"
)

// MaxMindProvider - веб-сервис GeoLite2, basic auth по account id и license key
type MaxMindProvider struct {
	client     *http.Client
	accountID  string
	licenseKey string
	baseURL    string
}

type maxMindResponse struct {
	City struct {
		Names map[string]string `json:"names"`
	} `json:"city"`
	Country struct {
		ISOCode string `json:"iso_code"`
	} `json:"country"`
}

type maxMindErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func NewMaxMindProvider(accountID, licenseKey string) *MaxMindProvider {
	return &MaxMindProvider{
		client:     &http.Client{Timeout: 5 * time.Second},
		accountID:  accountID,
		licenseKey: licenseKey,
		baseURL:    "https://geolite.info/geoip/v2.1/city",
	}
}

func (p *MaxMindProvider) Name() string {
	return "maxmind-geolite2"
}

func (p *MaxMindProvider) Lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, addr.Unmap())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(p.accountID, p.licenseKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query MaxMind: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp maxMindErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Code != "" {
			// адрес не найден в базе - не ошибка
			if errResp.Code == "IP_ADDRESS_NOT_FOUND" || errResp.Code == "IP_ADDRESS_RESERVED" {
				return nil, nil
			}
			return nil, fmt.Errorf("MaxMind error (%s): %s", errResp.Code, errResp.Error)
		}
		return nil, fmt.Errorf("MaxMind returned status %d", resp.StatusCode)
	}

	var result maxMindResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode MaxMind response: %w", err)
	}

	if result.Country.ISOCode == "" {
		return nil, nil
	}

	return &Location{Country: result.Country.ISOCode, City: result.City.Names["en"]}, nil
}
