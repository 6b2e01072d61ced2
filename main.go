package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"awsinventory/awsd"
	"awsinventory/configuration"
	"awsinventory/logger"
)

const (
	packageName = "main"
)

var regionsFlag []string

var rootCmd = &cobra.Command{
	Use:   "awsinventory",
	Short: "Pull a normalized inventory of EC2 instances across regions",
	Long: `awsinventory enumerates the EC2 instances visible to the caller's
credentials across a set of AWS regions and normalizes them into typed
records. Regions the credentials cannot access are logged and skipped.

Target regions come from, in order of precedence: the --regions flag, the
inventory file (INVENTORY_FILE), the AWS_REGIONS environment variable, region
discovery (DISCOVER_REGIONS=true), or the built-in region list.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&regionsFlag, "regions", "r", nil,
		"regions to pull instances from")
}

func run(cmd *cobra.Command, args []string) error {
	// Initialize logger
	if err := logger.Initialize("info"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := zap.L().With(zap.String("package", packageName))

	// Load configuration
	config, err := configuration.Initialize()
	if err != nil {
		log.Error("Failed to load configuration",
			zap.String("operation", "config_load"),
			zap.Error(err),
		)
		return err
	}
	if config.LogLevel != "" && config.LogLevel != "info" {
		if err := logger.Initialize(config.LogLevel); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = zap.L().With(zap.String("package", packageName))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The identity probe is informational; a failure here surfaces as the
	// per-region access errors during collection.
	if identity, err := awsd.GetCallerIdentity(ctx, config); err != nil {
		log.Warn("Could not resolve caller identity",
			zap.String("operation", "identity_probe"),
			zap.Error(err),
		)
	} else {
		log.Info("Caller identity resolved",
			zap.String("operation", "identity_probe"),
			zap.String("account", identity.Account),
			zap.String("arn", identity.Arn),
		)
	}

	regions, err := targetRegions(ctx, config)
	if err != nil {
		log.Error("Failed to resolve target regions",
			zap.String("operation", "region_resolution"),
			zap.Error(err),
		)
		return err
	}

	collector := awsd.NewCollector(awsd.NewClientFactory(config), zap.L())
	instances, err := collector.Collect(ctx, regions)
	if err != nil {
		log.Error("Failed to collect instances",
			zap.String("operation", "collect"),
			zap.Error(err),
		)
		return err
	}

	log.Info("Inventory collected",
		zap.String("operation", "collect"),
		zap.Int("regions", len(regions)),
		zap.Int("instances", len(instances)),
	)
	return nil
}

// targetRegions resolves the regions to collect from: the --regions flag
// wins, then the configured list (inventory file or AWS_REGIONS), then
// discovery, then the built-in default list.
func targetRegions(ctx context.Context, config *configuration.Config) ([]string, error) {
	if len(regionsFlag) > 0 {
		return regionsFlag, nil
	}
	if len(config.Regions) > 0 {
		return config.Regions, nil
	}
	if config.DiscoverRegions {
		client, err := awsd.NewEC2ClientForRegion(ctx, config, config.Region)
		if err != nil {
			return nil, err
		}
		return awsd.DiscoverRegions(ctx, client)
	}
	return awsd.DefaultRegions, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
