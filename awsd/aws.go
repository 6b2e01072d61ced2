package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"awsinventory/awsd/models"
	"awsinventory/configuration"
	apperrors "awsinventory/errors"
)

// EC2API is the subset of the EC2 client the collector consumes.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// AwsClient wraps the EC2 listing capability for one region.
type AwsClient struct {
	client EC2API
}

// NewEC2ClientWithConfig wraps an EC2 client built from the given SDK config.
func NewEC2ClientWithConfig(cfg aws.Config) *AwsClient {
	return &AwsClient{
		client: ec2.NewFromConfig(cfg),
	}
}

// NewEC2ClientForRegion creates a configured EC2 client scoped to one region.
// Static credentials and the endpoint override are applied only when
// configured, e.g. for local development with LocalStack.
func NewEC2ClientForRegion(ctx context.Context, conf *configuration.Config, region string) (*AwsClient, error) {
	cfg, err := loadConfig(ctx, conf, region)
	if err != nil {
		return nil, err
	}
	return NewEC2ClientWithConfig(cfg), nil
}

func loadConfig(ctx context.Context, conf *configuration.Config, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if conf.AccessKeyID != "" && conf.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, "")))
	}
	if conf.EndpointURL != "" {
		opts = append(opts, config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: conf.EndpointURL, SigningRegion: region}, nil
			}),
		))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// ClientFactory produces a client scoped to one region. It may fail when the
// caller's credentials cannot reach that region.
type ClientFactory func(ctx context.Context, region string) (*AwsClient, error)

// NewClientFactory returns the production factory backed by the AWS SDK.
func NewClientFactory(conf *configuration.Config) ClientFactory {
	return func(ctx context.Context, region string) (*AwsClient, error) {
		return NewEC2ClientForRegion(ctx, conf, region)
	}
}

// Collector pulls every instance visible to the caller's credentials from a
// set of regions and normalizes the raw records.
type Collector struct {
	newClient ClientFactory
	parser    *Parser
	logger    *zap.Logger
}

// NewCollector creates a Collector using the given client factory and logger.
func NewCollector(factory ClientFactory, logger *zap.Logger) *Collector {
	return &Collector{
		newClient: factory,
		parser:    NewParser(logger),
		logger:    logger,
	}
}

// regionRecord keeps the origin region with a raw record so a fatal
// normalization error can name it.
type regionRecord struct {
	region string
	raw    ec2types.Instance
}

// Collect visits the given regions in order, one at a time, accumulating raw
// instance records and then normalizing them. A region the credentials
// cannot access is logged and skipped; the rest of the run is unaffected. A
// raw record missing a required field aborts the whole run.
func (c *Collector) Collect(ctx context.Context, regions []string) ([]models.Instance, error) {
	c.logger.Info("started pulling instances",
		zap.Int("regions", len(regions)),
	)

	var collected []regionRecord
	for _, region := range regions {
		raw, err := c.collectRegion(ctx, region)
		if err != nil {
			if !isRegionAccessError(err) {
				return nil, err
			}
			// Skips regions the given credentials have no access to.
			c.logger.Error("could not pull instances from region",
				zap.String("region", region),
				zap.Error(err),
			)
			continue
		}
		for _, instance := range raw {
			collected = append(collected, regionRecord{region: region, raw: instance})
		}
		c.logger.Debug("pulled instances from region",
			zap.String("region", region),
			zap.Int("instances", len(raw)),
		)
	}
	c.logger.Info("finished pulling instances",
		zap.Int("instances", len(collected)),
	)

	c.logger.Info("processing raw data into records")
	instances := make([]models.Instance, 0, len(collected))
	for _, record := range collected {
		instance, err := c.parser.ToInstance(record.raw)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrMissingField, "failed to normalize instance record",
				map[string]interface{}{
					"region": record.region,
				}, err)
		}
		instances = append(instances, instance)
	}
	c.logger.Info("finished processing the raw data",
		zap.Int("instances", len(instances)),
	)
	return instances, nil
}

func (c *Collector) collectRegion(ctx context.Context, region string) ([]ec2types.Instance, error) {
	client, err := c.newClient(ctx, region)
	if err != nil {
		return nil, err
	}
	return describeInstancesPaginated(ctx, client)
}

// describeInstancesPaginated pulls every page of DescribeInstances for one
// region, flattening instances across reservations. The absence of a
// NextToken in a response means the enumeration is complete.
func describeInstancesPaginated(ctx context.Context, client *AwsClient) ([]ec2types.Instance, error) {
	var instances []ec2types.Instance

	input := &ec2.DescribeInstancesInput{}
	for {
		output, err := client.client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, reservation := range output.Reservations {
			instances = append(instances, reservation.Instances...)
		}
		if output.NextToken == nil {
			break
		}
		input = &ec2.DescribeInstancesInput{NextToken: output.NextToken}
	}
	return instances, nil
}
