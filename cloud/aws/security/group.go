package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	log "github.com/cantara/bragi/sbragi"
)

// EC2API is the part of *ec2.Client the security group helpers need.
type EC2API interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
}

type Group struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"description"`
	VpcId string `json:"-"`

	ingress []ec2types.IpPermission
}

const notFoundCode = "InvalidGroup.NotFound"

func fromEC2(sg ec2types.SecurityGroup) Group {
	return Group{
		Id:      aws.ToString(sg.GroupId),
		Name:    aws.ToString(sg.GroupName),
		Desc:    aws.ToString(sg.Description),
		VpcId:   aws.ToString(sg.VpcId),
		ingress: sg.IpPermissions,
	}
}

func ById(ctx context.Context, id string, e2 EC2API) (g Group, err error) {
	log.Trace("getting security group", "id", id)
	groups, err := ByIds(ctx, []string{id}, e2)
	if err != nil {
		return
	}
	if len(groups) == 0 {
		log.Trace("no security group found", "id", id)
		err = fmt.Errorf("%w: %s", ErrNoSecurityGroupsFound, id)
		return
	}
	g = groups[0]
	return
}

// ByIds resolves all ids with a single DescribeSecurityGroups call. Groups
// are returned in the order the API lists them.
func ByIds(ctx context.Context, ids []string, e2 EC2API) (groups []Group, err error) {
	result, err := e2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		GroupIds: ids,
	})
	if err != nil {
		if IsNotFound(err) {
			err = fmt.Errorf("%w: %v: %w", ErrNoSecurityGroupsFound, ids, err)
			return
		}
		err = fmt.Errorf("unable to describe security groups %v: %w", ids, err)
		return
	}
	for _, sg := range result.SecurityGroups {
		groups = append(groups, fromEC2(sg))
	}
	return
}

// IsNotFound reports whether err is EC2 telling us a group id does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNoSecurityGroupsFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == notFoundCode
	}
	return false
}

// APIMessage renders an AWS API error as "Code: message", anything else as is.
func APIMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}

var ErrNoSecurityGroupsFound = fmt.Errorf("no security groups found")
