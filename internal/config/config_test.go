package config

import (
	"testing"

	"imgmin/internal/codec"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 75, cfg.Quality)
	assert.Equal(t, 256, cfg.Colors)
	assert.Equal(t, codec.WeightedMedianCut, cfg.QuantizeMethod())
	assert.False(t, cfg.Replace)
	assert.False(t, cfg.DryRun)
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"quality zero", func(c *Config) { c.Quality = 0 }, ErrInvalidQuality},
		{"quality 100", func(c *Config) { c.Quality = 100 }, ErrInvalidQuality},
		{"colors zero", func(c *Config) { c.Colors = 0 }, ErrInvalidColorRange},
		{"colors 257", func(c *Config) { c.Colors = 257 }, ErrInvalidColorRange},
		{"method 4", func(c *Config) { c.Method = 4 }, ErrInvalidMethod},
		{"method negative", func(c *Config) { c.Method = -1 }, ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quality, cfg.Colors, cfg.Method = 1, 1, 0
	assert.NoError(t, cfg.Validate())

	cfg.Quality, cfg.Colors, cfg.Method = 99, 256, 3
	assert.NoError(t, cfg.Validate())
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("path", "photos")
	v.Set("quality", 60)
	v.Set("replace", true)
	v.Set("log-file", "/tmp/imgmin.log")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "photos", cfg.Path)
	assert.Equal(t, 60, cfg.Quality)
	assert.True(t, cfg.Replace)
	assert.Equal(t, 256, cfg.Colors)
	assert.Equal(t, "/tmp/imgmin.log", cfg.Logging.FilePath)
	assert.Equal(t, 10, cfg.Logging.MaxSize)
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("IMGMIN_COLORS", "16")
	t.Setenv("IMGMIN_ASSUME_YES", "true")

	v := viper.New()
	v.SetDefault("colors", 256)
	v.SetDefault("assume-yes", false)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Colors)
	assert.True(t, cfg.AssumeYes)
}

func TestFromViperLogRotationEnvironment(t *testing.T) {
	t.Setenv("IMGMIN_LOG_MAX_SIZE", "50")
	t.Setenv("IMGMIN_LOG_MAX_AGE", "7")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Logging.MaxSize)
	assert.Equal(t, 7, cfg.Logging.MaxAge)
	assert.Equal(t, 3, cfg.Logging.MaxBackups)
}

func TestFromViperRejectsColorRange(t *testing.T) {
	v := viper.New()
	v.Set("colors", 300)

	_, err := FromViper(v)
	assert.ErrorIs(t, err, ErrInvalidColorRange)
}
