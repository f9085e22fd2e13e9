package security

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	log "github.com/cantara/bragi/sbragi"
)

// Rule is a single port tcp ingress from one CIDR block.
type Rule struct {
	Protocol string `json:"protocol"`
	Port     int    `json:"port"`
	CIDR     string `json:"cidr"`
	Desc     string `json:"description"`
}

func NewRule(cidr string, port int, desc string) Rule {
	return Rule{
		Protocol: "tcp",
		Port:     port,
		CIDR:     cidr,
		Desc:     desc,
	}
}

func (r Rule) permission() ec2types.IpPermission {
	return ec2types.IpPermission{
		FromPort:   aws.Int32(int32(r.Port)),
		IpProtocol: aws.String(r.Protocol),
		ToPort:     aws.Int32(int32(r.Port)),
		IpRanges: []ec2types.IpRange{
			{
				CidrIp:      aws.String(r.CIDR),
				Description: aws.String(r.Desc),
			},
		},
	}
}

// Matches is true when p covers exactly r.Port on both bounds and lists
// r.CIDR verbatim. Equivalent but differently written blocks do not match.
func (r Rule) Matches(p ec2types.IpPermission) bool {
	if p.FromPort == nil || p.ToPort == nil {
		return false
	}
	if int(*p.FromPort) != r.Port || int(*p.ToPort) != r.Port {
		return false
	}
	for _, ipRange := range p.IpRanges {
		if aws.ToString(ipRange.CidrIp) == r.CIDR {
			return true
		}
	}
	return false
}

// HasIngress checks the permissions fetched with the group.
func (g Group) HasIngress(r Rule) bool {
	for _, p := range g.ingress {
		if r.Matches(p) {
			log.Trace("found matching ingress", "group", g.Id, "cidr", r.CIDR, "port", r.Port)
			return true
		}
	}
	return false
}

func (g Group) Authorize(ctx context.Context, r Rule, e2 EC2API) (err error) {
	_, err = e2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(g.Id),
		IpPermissions: []ec2types.IpPermission{r.permission()},
	})
	if err != nil {
		err = fmt.Errorf("could not add ingress %s/%d from %s to security group %s %s: %w", r.Protocol, r.Port, r.CIDR, g.Id, g.Name, err)
		return
	}
	log.Info("authorized ingress", "group", g.Id, "cidr", r.CIDR, "port", r.Port)
	return
}
