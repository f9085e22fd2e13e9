// Package awstest holds in-memory stand-ins for the EC2 and RDS clients.
package awstest

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/smithy-go"
)

// EC2 behaves like DescribeSecurityGroups and AuthorizeSecurityGroupIngress
// against a fixed set of groups.
type EC2 struct {
	Groups map[string]ec2types.SecurityGroup
	// DescribeErr fails every describe call when set.
	DescribeErr error
	// AuthorizeErr fails authorize calls per group id.
	AuthorizeErr map[string]error

	DescribeCalls  int
	AuthorizeCalls []*ec2.AuthorizeSecurityGroupIngressInput
}

func NewEC2(groups ...ec2types.SecurityGroup) *EC2 {
	f := &EC2{
		Groups:       map[string]ec2types.SecurityGroup{},
		AuthorizeErr: map[string]error{},
	}
	for _, g := range groups {
		f.Groups[aws.ToString(g.GroupId)] = g
	}
	return f
}

func NotFound(id string) error {
	return &smithy.GenericAPIError{
		Code:    "InvalidGroup.NotFound",
		Message: fmt.Sprintf("The security group '%s' does not exist", id),
		Fault:   smithy.FaultClient,
	}
}

func (f *EC2) DescribeSecurityGroups(_ context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	f.DescribeCalls++
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	out := &ec2.DescribeSecurityGroupsOutput{}
	for _, id := range in.GroupIds {
		sg, ok := f.Groups[id]
		if !ok {
			return nil, NotFound(id)
		}
		out.SecurityGroups = append(out.SecurityGroups, sg)
	}
	return out, nil
}

func (f *EC2) AuthorizeSecurityGroupIngress(_ context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, _ ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	f.AuthorizeCalls = append(f.AuthorizeCalls, in)
	id := aws.ToString(in.GroupId)
	if err := f.AuthorizeErr[id]; err != nil {
		return nil, err
	}
	sg, ok := f.Groups[id]
	if !ok {
		return nil, NotFound(id)
	}
	sg.IpPermissions = append(sg.IpPermissions, in.IpPermissions...)
	f.Groups[id] = sg
	return &ec2.AuthorizeSecurityGroupIngressOutput{Return: aws.Bool(true)}, nil
}

// Group builds a security group with optional ingress permissions.
func Group(id, name, vpcId string, ingress ...ec2types.IpPermission) ec2types.SecurityGroup {
	return ec2types.SecurityGroup{
		GroupId:       aws.String(id),
		GroupName:     aws.String(name),
		Description:   aws.String("security group " + name),
		VpcId:         aws.String(vpcId),
		IpPermissions: ingress,
	}
}

// Ingress builds a tcp permission covering from..to for the given CIDRs.
func Ingress(from, to int32, cidrs ...string) ec2types.IpPermission {
	p := ec2types.IpPermission{
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int32(from),
		ToPort:     aws.Int32(to),
	}
	for _, c := range cidrs {
		p.IpRanges = append(p.IpRanges, ec2types.IpRange{CidrIp: aws.String(c)})
	}
	return p
}

type RDS struct {
	Instances []rdstypes.DBInstance
	Err       error
	Calls     int
}

func (f *RDS) DescribeDBInstances(_ context.Context, _ *rds.DescribeDBInstancesInput, _ ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return &rds.DescribeDBInstancesOutput{DBInstances: f.Instances}, nil
}

// Instance builds a db instance in vpcId (empty means no subnet group).
func Instance(id, engine, vpcId string, groupIds ...string) rdstypes.DBInstance {
	db := rdstypes.DBInstance{
		DBInstanceIdentifier: aws.String(id),
		Engine:               aws.String(engine),
	}
	if vpcId != "" {
		db.DBSubnetGroup = &rdstypes.DBSubnetGroup{VpcId: aws.String(vpcId)}
	}
	for _, g := range groupIds {
		db.VpcSecurityGroups = append(db.VpcSecurityGroups, rdstypes.VpcSecurityGroupMembership{
			VpcSecurityGroupId: aws.String(g),
			Status:             aws.String("active"),
		})
	}
	return db
}
