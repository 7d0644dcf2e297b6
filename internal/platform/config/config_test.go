package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := load(viper.New())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "default", cfg.CooperativeID)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 10*time.Second, cfg.SideEffectTimeout)
	assert.Equal(t, int64(8), cfg.SideEffectConcurrency)
	assert.Equal(t, 3, cfg.TxMaxRetries)
	assert.Empty(t, cfg.ServiceAPIKeyHashes)
	assert.False(t, cfg.IsProduction)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "9090")
	v.Set("COOPERATIVE_ID", " school-42 ")
	v.Set("SERVICE_API_KEY_HASHES", "$2a$10$abc, ,$2a$10$def")
	v.Set("SIDE_EFFECT_TIMEOUT", "2s")
	v.Set("REQUEST_TIMEOUT", "not-a-duration")
	v.Set("TX_MAX_RETRIES", 5)
	v.Set("IS_PRODUCTION", true)

	cfg := load(v)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "school-42", cfg.CooperativeID)
	assert.Equal(t, []string{"$2a$10$abc", "$2a$10$def"}, cfg.ServiceAPIKeyHashes)
	assert.Equal(t, 2*time.Second, cfg.SideEffectTimeout)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.TxMaxRetries)
	assert.True(t, cfg.IsProduction)
}
