package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "ALLOWED_ORIGINS", "STORE_BACKEND", "AWS_REGION", "TABLE_PREFIX",
		"MIN_OVERLAP_MINUTES", "NOTIFICATION_LIMIT", "PUSH_BUFFER", "S3_BUCKET_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDynamoDB, cfg.Store.Backend)
	assert.Equal(t, "eu-west-1", cfg.Store.AWSRegion)
	assert.Equal(t, 30, cfg.Scheduling.MinOverlapMinutes)
	assert.Equal(t, 30, cfg.NotificationLimit)
	assert.Equal(t, 16, cfg.PushBuffer)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("MIN_OVERLAP_MINUTES", "45")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TABLE_PREFIX", "dev-")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 45, cfg.Scheduling.MinOverlapMinutes)
	assert.Equal(t, "dev-", cfg.Store.TablePrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"dynamodb without region", map[string]string{"STORE_BACKEND": "dynamodb"}},
		{"unknown backend", map[string]string{"STORE_BACKEND": "postgres"}},
		{"non numeric overlap", map[string]string{"STORE_BACKEND": "memory", "MIN_OVERLAP_MINUTES": "half an hour"}},
		{"negative buffer", map[string]string{"STORE_BACKEND": "memory", "PUSH_BUFFER": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
