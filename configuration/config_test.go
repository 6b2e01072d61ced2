package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awsinventory/configuration"
)

// chdirTemp moves the test into an empty directory so a developer's .env
// file cannot leak into the run.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(previous)
	})
	return dir
}

func TestInitialize_TableDriven(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		inventory  string // if set, an inventory .hcl file with this content is written and configured
		expectErr  bool
		assertions func(*testing.T, *configuration.Config)
	}{
		{
			name: "Defaults with no configuration",
			assertions: func(t *testing.T, cfg *configuration.Config) {
				assert.Equal(t, "us-east-1", cfg.Region)
				assert.Empty(t, cfg.Regions)
				assert.False(t, cfg.DiscoverRegions)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "", cfg.EndpointURL)
			},
		},
		{
			name: "Valid configuration from environment variables",
			env: map[string]string{
				"AWS_REGION":            "us-west-2",
				"AWS_REGIONS":           "us-east-2, us-west-2,eu-central-1",
				"AWS_ACCESS_KEY_ID":     "AKIAEXAMPLE",
				"AWS_SECRET_ACCESS_KEY": "secret123",
				"LOG_LEVEL":             "debug",
				"ENDPOINT_URL":          "http://localhost:4566",
			},
			assertions: func(t *testing.T, cfg *configuration.Config) {
				assert.Equal(t, "us-west-2", cfg.Region)
				assert.Equal(t, []string{"us-east-2", "us-west-2", "eu-central-1"}, cfg.Regions)
				assert.Equal(t, "AKIAEXAMPLE", cfg.AccessKeyID)
				assert.Equal(t, "secret123", cfg.SecretAccessKey)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "http://localhost:4566", cfg.EndpointURL)
			},
		},
		{
			name: "Inventory file overrides the env region list",
			env: map[string]string{
				"AWS_REGIONS": "us-east-1",
			},
			inventory: `regions = ["us-east-2", "us-west-2"]` + "\n",
			assertions: func(t *testing.T, cfg *configuration.Config) {
				assert.Equal(t, []string{"us-east-2", "us-west-2"}, cfg.Regions)
			},
		},
		{
			name:      "Inventory file enables discovery",
			inventory: "discover_regions = true\n",
			assertions: func(t *testing.T, cfg *configuration.Config) {
				assert.True(t, cfg.DiscoverRegions)
				assert.Empty(t, cfg.Regions)
			},
		},
		{
			name:      "Malformed inventory file fails",
			inventory: "regions = [\n",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			dir := chdirTemp(t)

			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if tt.inventory != "" {
				path := filepath.Join(dir, "inventory.hcl")
				require.NoError(t, os.WriteFile(path, []byte(tt.inventory), 0o600))
				t.Setenv("INVENTORY_FILE", path)
			}

			cfg, err := configuration.Initialize()
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.assertions != nil {
				tt.assertions(t, cfg)
			}
		})
	}
}

func TestInitializeReadsEnvFile(t *testing.T) {
	viper.Reset()
	dir := chdirTemp(t)

	content := "AWS_REGIONS=ap-south-1\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := configuration.Initialize()
	require.NoError(t, err)
	assert.Equal(t, []string{"ap-south-1"}, cfg.Regions)
	assert.Equal(t, "debug", cfg.LogLevel)
}
