package environment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktide/tasktide/sdk/environment"
)

type testConfig struct {
	Port     string            `env:"PORT" default:":8080"`
	Debug    bool              `env:"DEBUG" default:"false"`
	MaxConns int               `env:"MAX_CONNS" default:"25"`
	Timeout  time.Duration     `env:"TIMEOUT" default:"30s"`
	Origins  []string          `env:"ORIGINS" default:"*" separator:","`
	Headers  map[string]string `env:"HEADERS"`
	APIKey   string            `env:"API_KEY" required:"true"`
}

func TestParseEnvTags_Defaults(t *testing.T) {
	t.Setenv("SVC_API_KEY", "secret")

	var cfg testConfig
	require.NoError(t, environment.ParseEnvTags("SVC", &cfg))

	assert.Equal(t, ":8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 25, cfg.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Origins)
	assert.Nil(t, cfg.Headers)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestParseEnvTags_Overrides(t *testing.T) {
	t.Setenv("SVC_PORT", ":9090")
	t.Setenv("SVC_DEBUG", "true")
	t.Setenv("SVC_MAX_CONNS", "50")
	t.Setenv("SVC_TIMEOUT", "1m30s")
	t.Setenv("SVC_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SVC_HEADERS", "X-Frame-Options=DENY,X-Robots-Tag=noindex")
	t.Setenv("SVC_API_KEY", "secret")

	var cfg testConfig
	require.NoError(t, environment.ParseEnvTags("SVC", &cfg))

	assert.Equal(t, ":9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 50, cfg.MaxConns)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.Equal(t, map[string]string{"X-Frame-Options": "DENY", "X-Robots-Tag": "noindex"}, cfg.Headers)
}

func TestParseEnvTags_RequiredMissing(t *testing.T) {
	var cfg testConfig
	err := environment.ParseEnvTags("UNSET_PREFIX", &cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNSET_PREFIX_API_KEY")
}

func TestParseEnvTags_RejectsNonStructPointer(t *testing.T) {
	assert.Error(t, environment.ParseEnvTags("SVC", testConfig{}))

	var s string
	assert.Error(t, environment.ParseEnvTags("SVC", &s))
}
