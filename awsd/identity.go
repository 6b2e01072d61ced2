package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"awsinventory/configuration"
)

// CallerIdentity identifies the AWS principal the inventory pull runs as.
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

// GetCallerIdentity returns the current AWS caller identity, resolved in the
// configured home region.
func GetCallerIdentity(ctx context.Context, conf *configuration.Config) (*CallerIdentity, error) {
	cfg, err := loadConfig(ctx, conf, conf.Region)
	if err != nil {
		return nil, err
	}

	client := sts.NewFromConfig(cfg)
	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}

	return &CallerIdentity{
		Account: aws.ToString(output.Account),
		Arn:     aws.ToString(output.Arn),
		UserID:  aws.ToString(output.UserId),
	}, nil
}
