package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	log "github.com/cantara/bragi/sbragi"
)

// RDSAPI is the part of *rds.Client used to list instances.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// NoVPC is reported for instances without a DB subnet group.
const NoVPC = "N/A"

type Instance struct {
	Identifier       string   `json:"db_identifier"`
	Engine           string   `json:"engine"`
	VpcId            string   `json:"vpc_id"`
	SecurityGroupIds []string `json:"security_group_ids"`
}

// List issues one DescribeDBInstances call and keeps the API order.
func List(ctx context.Context, r RDSAPI) (instances []Instance, err error) {
	log.Trace("listing rds instances")
	result, err := r.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		err = fmt.Errorf("unable to describe db instances: %w", err)
		return
	}
	for _, db := range result.DBInstances {
		i := Instance{
			Identifier: aws.ToString(db.DBInstanceIdentifier),
			Engine:     aws.ToString(db.Engine),
			VpcId:      NoVPC,
		}
		if db.DBSubnetGroup != nil && db.DBSubnetGroup.VpcId != nil {
			i.VpcId = aws.ToString(db.DBSubnetGroup.VpcId)
		}
		for _, sg := range db.VpcSecurityGroups {
			i.SecurityGroupIds = append(i.SecurityGroupIds, aws.ToString(sg.VpcSecurityGroupId))
		}
		log.Trace("got rds instance", "id", i.Identifier, "engine", i.Engine, "groups", i.SecurityGroupIds)
		instances = append(instances, i)
	}
	return
}
