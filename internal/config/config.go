package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Geo      GeoConfig      `mapstructure:"geo"`
	Heatmap  HeatmapConfig  `mapstructure:"heatmap"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AppConfig struct {
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retry"`
	CacheTTL     int    `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeoConfig - политика определения географии по IP
type GeoConfig struct {
	TestOverrideEnabled bool          `mapstructure:"test_override_enabled"`
	FallbackCountry     string        `mapstructure:"fallback_country"`
	FallbackCity        string        `mapstructure:"fallback_city"`
	PrivateRanges       []string      `mapstructure:"private_ranges"`
	LookupTimeout       time.Duration `mapstructure:"lookup_timeout"`
	Provider            string        `mapstructure:"provider"`
	MMDBPath            string        `mapstructure:"mmdb_path"`
	MaxMindAccountID    string        `mapstructure:"maxmind_account_id"`
	MaxMindLicenseKey   string        `mapstructure:"maxmind_license_key"`
	IPAPIRatePerMinute  int           `mapstructure:"ipapi_rate_per_minute"`
}

type HeatmapConfig struct {
	GeometryPath string `mapstructure:"geometry_path"`
	NoDataColor  string `mapstructure:"no_data_color"`
}

const (
	GeoProviderNone    = "none"
	GeoProviderMMDB    = "mmdb"
	GeoProviderIPAPI   = "ipapi"
	GeoProviderMaxMind = "maxmind"
)

// DefaultPrivateRanges - диапазоны, для которых поиск географии не выполняется
var DefaultPrivateRanges = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"::1/128",
}

func Load() (*Config, error) {
	// .env нужен только для локальной разработки, его отсутствие не ошибка
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("LINKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "linkpulse")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "linkpulse")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	// App defaults
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("app.rate_limit", 100)
	v.SetDefault("app.rate_window", time.Minute)

	// Redis defaults
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.max_retry", 3)
	v.SetDefault("redis.cache_ttl", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Geo defaults
	// тестовые заголовки страны включаются только явно
	v.SetDefault("geo.test_override_enabled", false)
	v.SetDefault("geo.fallback_country", "")
	v.SetDefault("geo.fallback_city", "")
	v.SetDefault("geo.private_ranges", DefaultPrivateRanges)
	v.SetDefault("geo.lookup_timeout", 300*time.Millisecond)
	v.SetDefault("geo.provider", GeoProviderMMDB)
	v.SetDefault("geo.mmdb_path", "./data/GeoLite2-City.mmdb")
	v.SetDefault("geo.maxmind_account_id", "")
	v.SetDefault("geo.maxmind_license_key", "")
	v.SetDefault("geo.ipapi_rate_per_minute", 45)

	v.SetDefault("heatmap.geometry_path", "./data/countries.geojson")
	v.SetDefault("heatmap.no_data_color", "#1a1a1a")
}

// Validate проверяет значения, которые нельзя исправить дефолтами
func (c *Config) Validate() error {
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if c.App.RateLimit <= 0 || c.App.RateWindow <= 0 {
		return fmt.Errorf("rate limit and rate window must be positive")
	}

	switch c.Geo.Provider {
	case GeoProviderNone, GeoProviderMMDB, GeoProviderIPAPI, GeoProviderMaxMind:
	default:
		return fmt.Errorf("unknown geo provider %q (must be one of: none, mmdb, ipapi, maxmind)", c.Geo.Provider)
	}

	if c.Geo.LookupTimeout <= 0 {
		return fmt.Errorf("geo lookup timeout must be positive")
	}

	// fallback пишется в clicks.country наравне с кодами провайдеров
	if n := len(strings.TrimSpace(c.Geo.FallbackCountry)); n > 0 && (n < 2 || n > 3) {
		return fmt.Errorf("geo fallback country must be a 2 or 3 letter code, got %q", c.Geo.FallbackCountry)
	}

	if c.Geo.Provider == GeoProviderMaxMind && (c.Geo.MaxMindAccountID == "" || c.Geo.MaxMindLicenseKey == "") {
		return fmt.Errorf("maxmind provider requires account id and license key")
	}

	if _, err := c.Geo.Prefixes(); err != nil {
		return err
	}

	return nil
}

// Prefixes разбирает geo.private_ranges в netip.Prefix
func (g *GeoConfig) Prefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(g.PrivateRanges))
	for _, cidr := range g.PrivateRanges {
		p, err := netip.ParsePrefix(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid private range %q: %w", cidr, err)
		}
		prefixes = append(prefixes, p.Masked())
	}
	return prefixes, nil
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.App.Environment) == "production"
}

func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.App.Environment) == "development"
}

func (c *Config) GetAllowedOrigins() []string {
	if len(c.App.AllowedOrigins) == 0 {
		if c.IsProduction() {
			// В продакшене требуем явного указания origins
			return nil
		}
		return []string{"*"}
	}
	return c.App.AllowedOrigins
}

// DSN собирает строку подключения для драйвера pgx
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}
