package geo

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/oschwald/geoip2-golang"
)

// MMDBProvider ищет по локальной базе MaxMind (GeoLite2-City)
type MMDBProvider struct {
	reader *geoip2.Reader
}

func NewMMDBProvider(path string) (*MMDBProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mmdb %s: %w", path, err)
	}
	return &MMDBProvider{reader: reader}, nil
}

func (p *MMDBProvider) Name() string {
	return "mmdb"
}

func (p *MMDBProvider) Lookup(ctx context.Context, addr netip.Addr) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := p.reader.City(net.IP(addr.Unmap().AsSlice()))
	if err != nil {
		return nil, fmt.Errorf("mmdb lookup %s: %w", addr, err)
	}

	if record.Country.IsoCode == "" {
		return nil, nil
	}

	return &Location{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}, nil
}

func (p *MMDBProvider) Close() error {
	return p.reader.Close()
}
