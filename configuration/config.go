package configuration

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"awsinventory/errors"
)

const (
	packageName = "configuration"
)

// Config holds the application configuration
type Config struct {
	// Region is the home region used for the identity probe and for region
	// discovery. It is not necessarily part of the collection targets.
	Region string
	// Regions is the list of regions to collect from. Empty means use the
	// default region list, or discovery when DiscoverRegions is set.
	Regions         []string
	DiscoverRegions bool
	AccessKeyID     string
	SecretAccessKey string
	// EndpointURL overrides the EC2 endpoint, e.g. for LocalStack. Empty
	// means the real AWS endpoints.
	EndpointURL   string
	LogLevel      string
	InventoryFile string
}

// Initialize sets up the configuration system
func Initialize() (*Config, error) {
	logger := zap.L().With(
		zap.String("package", packageName),
		zap.String("function", "Initialize"),
	)

	// Set default values
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_REGIONS", "")
	viper.SetDefault("DISCOVER_REGIONS", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ENDPOINT_URL", "")
	viper.SetDefault("INVENTORY_FILE", "")

	// Configure Viper to read from environment
	viper.AutomaticEnv()

	// Read from .env file
	viper.SetConfigFile(".env")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, errors.New(errors.ErrConfigParse, "error reading config file",
				map[string]interface{}{
					"config_file": ".env",
				}, err)
		}
		logger.Info("No .env file found, using environment variables and defaults",
			zap.String("operation", "config_loading"),
		)
	}

	region := viper.GetString("AWS_REGION")
	if region == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid AWS_REGION",
			map[string]interface{}{
				"config_key": "AWS_REGION",
			}, nil)
	}

	config := &Config{
		Region:          region,
		Regions:         splitRegions(viper.GetString("AWS_REGIONS")),
		DiscoverRegions: viper.GetBool("DISCOVER_REGIONS"),
		AccessKeyID:     viper.GetString("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
		EndpointURL:     viper.GetString("ENDPOINT_URL"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
		InventoryFile:   viper.GetString("INVENTORY_FILE"),
	}

	// An inventory file, when configured, owns the target-region choice.
	if config.InventoryFile != "" {
		inventory, err := LoadInventoryFile(config.InventoryFile)
		if err != nil {
			return nil, err
		}
		if len(inventory.Regions) > 0 {
			config.Regions = inventory.Regions
		}
		if inventory.DiscoverRegions {
			config.DiscoverRegions = true
		}
		logger.Info("Inventory file loaded",
			zap.String("path", config.InventoryFile),
			zap.Int("regions", len(inventory.Regions)),
			zap.String("operation", "config_loading"),
		)
	}

	logger.Info("Configuration loaded successfully",
		zap.String("operation", "config_complete"),
		zap.String("home_region", config.Region),
		zap.Int("target_regions", len(config.Regions)),
		zap.Bool("discover_regions", config.DiscoverRegions),
	)
	return config, nil
}

// splitRegions parses the comma-separated AWS_REGIONS value, dropping blanks.
func splitRegions(value string) []string {
	if value == "" {
		return nil
	}
	var regions []string
	for _, region := range strings.Split(value, ",") {
		region = strings.TrimSpace(region)
		if region != "" {
			regions = append(regions, region)
		}
	}
	return regions
}
