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
	assert.Equal(t, "docx", cfg.Documents.DefaultFormat)
	assert.Equal(t, 600.0, cfg.Documents.EvidenceMaxWidth)
	assert.Equal(t, 450.0, cfg.Documents.EvidenceMaxHeight)
	assert.Equal(t, 30*time.Second, cfg.Documents.GenerationTimeout)
	assert.Equal(t, "CEPRUNSA - UNSA", cfg.Documents.ProductLabel)
	assert.False(t, cfg.Exports.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DOC_DEFAULT_FORMAT", "PDF")
	v.Set("DOC_EVIDENCE_MAX_WIDTH", -5)
	v.Set("CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := fromViper(v)
	assert.Equal(t, "pdf", cfg.Documents.DefaultFormat)
	assert.Equal(t, 600.0, cfg.Documents.EvidenceMaxWidth)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
