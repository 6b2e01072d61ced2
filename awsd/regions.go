package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// DefaultRegions is the region set collected from when no target regions are
// configured and discovery is off.
var DefaultRegions = []string{
	"us-east-2", "us-east-1", "us-west-1", "us-west-2", "af-south-1",
	"ap-east-1", "ap-south-1", "ap-northeast-3", "ap-northeast-2",
	"ap-southeast-1", "ap-southeast-2", "ap-northeast-1", "ca-central-1",
	"eu-central-1", "eu-west-1", "eu-west-2", "eu-south-1", "eu-west-3",
	"eu-north-1", "me-south-1", "sa-east-1",
}

// DiscoverRegions asks EC2 which regions are enabled for the account.
func DiscoverRegions(ctx context.Context, client *AwsClient) ([]string, error) {
	output, err := client.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, err
	}

	regions := make([]string, 0, len(output.Regions))
	for _, region := range output.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, nil
}
