package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("BACKEND_MODE", "")
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Mode)
	assert.Equal(t, 5, cfg.Store.ShopLimit)
	assert.Equal(t, "0.5", cfg.Store.CriticalStockRatio.String())
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Empty(t, cfg.Alerts.KafkaBrokers)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("BACKEND_MODE", "Remote")
	t.Setenv("REMOTE_BASE_URL", "http://backend:8080/api")
	t.Setenv("SHOP_LIMIT", "3")
	t.Setenv("CRITICAL_STOCK_RATIO", "0.25")
	t.Setenv("ALERTS_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRemote, cfg.Store.Mode)
	assert.Equal(t, 3, cfg.Store.ShopLimit)
	assert.Equal(t, "0.25", cfg.Store.CriticalStockRatio.String())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Alerts.KafkaBrokers)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_Invalida(t *testing.T) {
	cases := map[string]map[string]string{
		"modo desconocido":     {"BACKEND_MODE": "sqlite"},
		"remoto sin url":       {"BACKEND_MODE": "remote", "REMOTE_BASE_URL": ""},
		"cuota cero":           {"SHOP_LIMIT": "0"},
		"ratio fuera de rango": {"CRITICAL_STOCK_RATIO": "1.5"},
		"ratio no numérico":    {"CRITICAL_STOCK_RATIO": "mitad"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "tiendas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/tiendas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
