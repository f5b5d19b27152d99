package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultAppSettings tests that defaults work without a config file
func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, DefaultCacheConfig(), settings.Cache)
	assert.Equal(t, DefaultSyncSettings(), settings.Sync)
	require.NoError(t, settings.Validate())
}

// TestAppSettings_Validate tests that section errors bubble up
func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppSettings)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*AppSettings) {},
			wantErr: false,
		},
		{
			name: "invalid cache section fails",
			mutate: func(s *AppSettings) {
				s.Cache.ExpiryDuration = -time.Minute
			},
			wantErr: true,
		},
		{
			name: "invalid sync section fails",
			mutate: func(s *AppSettings) {
				s.Sync.DefaultLocation = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultAppSettings()
			tt.mutate(&settings)

			err := settings.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
