package cfgloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/invoker/cfgloader"
	"github.com/rise-and-shine/invoker/val"
)

type testConfig struct {
	ServiceName string `yaml:"service_name" validate:"required"`
	Language    string `yaml:"language"     default:"en"`
	Secret      string `yaml:"secret"       mask:"true"`
	Logger      struct {
		Level string `yaml:"level" default:"debug" validate:"oneof=debug info warn error"`
	} `yaml:"logger"`
}

func writeConfig(t *testing.T, env, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_SECRET", "s3cr3t")
	dir := writeConfig(t, cfgloader.EnvTest, `
service_name: billing
secret: ${TEST_SECRET}
logger:
  level: info
`)

	cfg, err := cfgloader.Load[testConfig](
		cfgloader.WithDir(dir),
		cfgloader.WithEnvironment(cfgloader.EnvTest),
		cfgloader.WithSilent(),
	)
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.ServiceName)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "s3cr3t", cfg.Secret)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvironmentFromEnv(t *testing.T) {
	dir := writeConfig(t, cfgloader.EnvLocal, "service_name: local-svc\n")
	t.Setenv("ENVIRONMENT", cfgloader.EnvLocal)

	cfg, err := cfgloader.Load[testConfig](cfgloader.WithDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "local-svc", cfg.ServiceName)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		content  string
		wantCode string
	}{
		{name: "invalid environment", env: "qa", wantCode: cfgloader.CodeInvalidEnvironment},
		{name: "missing file", env: cfgloader.EnvDev, wantCode: cfgloader.CodeConfigNotFound},
		{name: "malformed yaml", env: cfgloader.EnvTest, content: "service_name: [", wantCode: cfgloader.CodeConfigUnreadable},
		{name: "validation failure", env: cfgloader.EnvTest, content: "language: uz\n", wantCode: val.CodeValidationFailed},
		{
			name:     "invalid nested value",
			env:      cfgloader.EnvTest,
			content:  "service_name: x\nlogger:\n  level: loud\n",
			wantCode: val.CodeValidationFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.content != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, tc.env+".yaml"), []byte(tc.content), 0o600))
			}

			_, err := cfgloader.Load[testConfig](
				cfgloader.WithDir(dir),
				cfgloader.WithEnvironment(tc.env),
				cfgloader.WithSilent(),
			)
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestLoad_RejectsNonStruct(t *testing.T) {
	_, err := cfgloader.Load[*testConfig](cfgloader.WithSilent())
	require.Error(t, err)

	_, err = cfgloader.Load[map[string]any](cfgloader.WithSilent())
	require.Error(t, err)
}
