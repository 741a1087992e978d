package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedGraduates)
	assert.Equal(t, 8*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Stats.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.Imports.MaxFileSizeBytes)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_DRIVER", " Redis ")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("STATS_CACHE_TTL", "not-a-duration")
	v.Set("IMPORT_MAX_FILE_SIZE", -1)

	cfg := fromViper(v)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Stats.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.Imports.MaxFileSizeBytes)
}
