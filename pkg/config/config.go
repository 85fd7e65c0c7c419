package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Modos de backend soportados por BACKEND_MODE.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRemote   = "remote"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Remote  RemoteConfig
	Store   StoreConfig
	Alerts  AlertsConfig
	Swagger bool
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig conexión opcional a Redis. Sin URL ni Addr se usa estado en memoria.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

// RemoteConfig backend HTTP remoto (BACKEND_MODE=remote).
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
	APIToken       string
}

// StoreConfig reglas de negocio configurables.
type StoreConfig struct {
	Mode               string
	ShopLimit          int
	CriticalStockRatio decimal.Decimal
	SeedDemoData       bool
}

// AlertsConfig publicación de alertas de stock bajo.
type AlertsConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	ratio, err := decimal.NewFromString(getString(v, "CRITICAL_STOCK_RATIO", "0.5"))
	if err != nil {
		return nil, fmt.Errorf("config: CRITICAL_STOCK_RATIO inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "multitienda-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "multitienda"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "multitienda-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			URL:      getString(v, "REDIS_URL", ""),
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Remote: RemoteConfig{
			BaseURL:        getString(v, "REMOTE_BASE_URL", ""),
			TimeoutSeconds: getInt(v, "REMOTE_TIMEOUT_SECONDS", 10),
			APIToken:       getString(v, "REMOTE_API_TOKEN", ""),
		},
		Store: StoreConfig{
			Mode:               strings.ToLower(getString(v, "BACKEND_MODE", BackendMemory)),
			ShopLimit:          getInt(v, "SHOP_LIMIT", 5),
			CriticalStockRatio: ratio,
			SeedDemoData:       getBool(v, "SEED_DEMO_DATA", false),
		},
		Alerts: AlertsConfig{
			KafkaBrokers: splitList(getString(v, "ALERTS_KAFKA_BROKERS", "")),
			KafkaTopic:   getString(v, "ALERTS_KAFKA_TOPIC", "inventory.low-stock"),
		},
		Swagger: getBool(v, "SWAGGER_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Mode {
	case BackendMemory, BackendPostgres:
	case BackendRemote:
		if c.Remote.BaseURL == "" {
			return fmt.Errorf("config: REMOTE_BASE_URL requerido con BACKEND_MODE=remote")
		}
	default:
		return fmt.Errorf("config: BACKEND_MODE desconocido %q", c.Store.Mode)
	}
	if c.Store.ShopLimit < 1 {
		return fmt.Errorf("config: SHOP_LIMIT debe ser al menos 1")
	}
	if !c.Store.CriticalStockRatio.IsPositive() || c.Store.CriticalStockRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("config: CRITICAL_STOCK_RATIO debe estar en (0, 1]")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
