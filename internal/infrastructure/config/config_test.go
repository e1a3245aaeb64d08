package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHECKOUTS_TABLE", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, "checkouts", cfg.Tables.Checkouts)
	assert.Equal(t, "checkouts_deleted", cfg.Tables.DeletedCheckouts)
	assert.Equal(t, 5*time.Minute, cfg.Redis.EventTTL)
	assert.False(t, cfg.Payments.GatewayMock)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REGISTRATIONS_TABLE", "regs-test")
	t.Setenv("ADMIN_UIDS", " admin-1, ,admin-2 ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("EVENT_CACHE_TTL", "30s")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "regs-test", cfg.Tables.Registrations)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.Auth.AdminUIDs)
	assert.True(t, cfg.Auth.IsAdminUID("admin-2"))
	assert.False(t, cfg.Auth.IsAdminUID("buyer-1"))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.EventTTL)
	assert.True(t, cfg.Payments.GatewayMock)
}
