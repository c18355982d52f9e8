package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultAddr, s.Server.Addr)
	assert.NotEmpty(t, s.Server.AllowedOrigins)
	assert.Equal(t, int64(DefaultMaxUploadSize), s.Upload.MaxBytes)
	assert.Zero(t, s.Upload.RatePerSecond, "throttling is off by default")
	assert.Equal(t, DefaultUploadBurst, s.Upload.Burst)
	assert.Empty(t, s.Storage.DataDir)
	assert.False(t, s.Verbose)
}
