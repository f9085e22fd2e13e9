package database

import (
	"context"
	"errors"
	"testing"

	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantara/bastion/cloud/aws/awstest"
)

func TestList(t *testing.T) {
	r := &awstest.RDS{
		Instances: []rdstypes.DBInstance{
			awstest.Instance("orders", "mysql", "vpc-1", "sg-1", "sg-2"),
			awstest.Instance("legacy", "postgres", ""),
		},
	}

	instances, err := List(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Calls)
	assert.Equal(t, []Instance{
		{Identifier: "orders", Engine: "mysql", VpcId: "vpc-1", SecurityGroupIds: []string{"sg-1", "sg-2"}},
		{Identifier: "legacy", Engine: "postgres", VpcId: NoVPC},
	}, instances)
}

func TestListError(t *testing.T) {
	r := &awstest.RDS{Err: errors.New("AccessDenied")}

	instances, err := List(context.Background(), r)
	require.Error(t, err)
	assert.Empty(t, instances)
	assert.Contains(t, err.Error(), "AccessDenied")
}
