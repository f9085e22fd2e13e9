package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	log "github.com/cantara/bragi/sbragi"
)

type AWS struct {
	ec2 *ec2.Client
	rds *rds.Client
}

// LoadConfig resolves credentials through the SDK default chain. A named
// profile wins over ambient credentials, the region is always pinned.
func LoadConfig(ctx context.Context, region, profile string) (cfg aws.Config, err error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	log.Trace("loading aws config", "region", region, "profile", profile)
	cfg, err = config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		err = fmt.Errorf("unable to load aws config for region %s: %w", region, err)
		return
	}
	return
}

func New(c aws.Config) *AWS {
	a := &AWS{}
	a.NewEC2(c)
	a.NewRDS(c)
	return a
}

func (a AWS) GetEC2() *ec2.Client {
	return a.ec2
}

func (a AWS) GetRDS() *rds.Client {
	return a.rds
}

func (a *AWS) NewEC2(c aws.Config) {
	if a.ec2 != nil {
		return
	}
	a.ec2 = ec2.NewFromConfig(c)
}

func (a *AWS) NewRDS(c aws.Config) {
	if a.rds != nil {
		return
	}
	a.rds = rds.NewFromConfig(c)
}
