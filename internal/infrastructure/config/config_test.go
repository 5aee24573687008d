package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_Timeouts(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 5, cfg.Database.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:           "db.internal",
		Port:           5432,
		User:           "storefront",
		Password:       "secret",
		DBName:         "storefront",
		SSLMode:        "require",
		ConnectTimeout: 5,
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "connect_timeout=5")
}
