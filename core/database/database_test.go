package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host:           "db.internal",
		Port:           5433,
		User:           "mirror",
		Password:       "secret",
		Name:           "eprel",
		SSLMode:        "require",
		TimeoutSeconds: 10,
	}

	dsn := BuildDSN(cfg)
	assert.Equal(t, "host=db.internal port=5433 user=mirror password=secret dbname=eprel sslmode=require connect_timeout=10", dsn)
}

func TestBuildDSNDefaults(t *testing.T) {
	dsn := BuildDSN(Config{Host: "localhost", Port: 5432, User: "u", Name: "eprel"})
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "connect_timeout=30")
}
