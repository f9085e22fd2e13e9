package inventory

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantara/bastion/cloud/aws/awstest"
	"github.com/cantara/bastion/console"
)

func init() {
	console.Disable()
}

func fixture() (*awstest.RDS, *awstest.EC2) {
	r := &awstest.RDS{Instances: []rdstypes.DBInstance{
		awstest.Instance("orders", "mysql", "vpc-1", "sg-b", "sg-a"),
		awstest.Instance("billing", "aurora-mysql", "vpc-1", "sg-a"),
		awstest.Instance("scratch", "postgres", ""),
	}}
	e2 := awstest.NewEC2(
		awstest.Group("sg-a", "rds-shared", "vpc-1"),
		awstest.Group("sg-b", "rds-orders", "vpc-1"),
	)
	return r, e2
}

func TestCollect(t *testing.T) {
	r, e2 := fixture()

	records := Collect(context.Background(), r, e2)
	assert.Equal(t, 1, r.Calls)
	// scratch has no groups, so no lookup for it
	assert.Equal(t, 2, e2.DescribeCalls)
	assert.Equal(t, []Record{
		{
			Identifier: "orders", Engine: "mysql", VpcId: "vpc-1",
			SecurityGroups: []SecurityGroup{
				{Id: "sg-b", Name: "rds-orders", Description: "security group rds-orders"},
				{Id: "sg-a", Name: "rds-shared", Description: "security group rds-shared"},
			},
		},
		{
			Identifier: "billing", Engine: "aurora-mysql", VpcId: "vpc-1",
			SecurityGroups: []SecurityGroup{
				{Id: "sg-a", Name: "rds-shared", Description: "security group rds-shared"},
			},
		},
		{Identifier: "scratch", Engine: "postgres", VpcId: "N/A", SecurityGroups: []SecurityGroup{}},
	}, records)
}

func TestCollectListingFails(t *testing.T) {
	r := &awstest.RDS{Err: errors.New("ExpiredToken")}
	e2 := awstest.NewEC2()

	records := Collect(context.Background(), r, e2)
	assert.Empty(t, records)
	assert.Equal(t, 0, e2.DescribeCalls)
}

func TestCollectLookupFailsForOneInstance(t *testing.T) {
	r := &awstest.RDS{Instances: []rdstypes.DBInstance{
		awstest.Instance("gone", "mysql", "vpc-1", "sg-deleted"),
		awstest.Instance("ok", "mysql", "vpc-1", "sg-a"),
	}}
	e2 := awstest.NewEC2(awstest.Group("sg-a", "rds-shared", "vpc-1"))

	records := Collect(context.Background(), r, e2)
	require.Len(t, records, 2)
	assert.Equal(t, "gone", records[0].Identifier)
	assert.Empty(t, records[0].SecurityGroups)
	assert.Equal(t, "ok", records[1].Identifier)
	require.Len(t, records[1].SecurityGroups, 1)
	assert.Equal(t, "sg-a", records[1].SecurityGroups[0].Id)
}

func TestListerRun(t *testing.T) {
	r, e2 := fixture()
	out := filepath.Join(t.TempDir(), "groups.json")
	var b bytes.Buffer

	exported := Lister{Region: "ap-northeast-1", Output: out, RDS: r, EC2: e2}.Run(context.Background(), &b)
	assert.True(t, exported)
	assert.Contains(t, b.String(), "Region: ap-northeast-1")
	assert.Contains(t, b.String(), "Exported results to "+out)

	records, err := Load(out)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestListerRunEmptyRegion(t *testing.T) {
	out := filepath.Join(t.TempDir(), "groups.json")
	var b bytes.Buffer

	exported := Lister{Region: "eu-north-1", Output: out, RDS: &awstest.RDS{}, EC2: awstest.NewEC2()}.Run(context.Background(), &b)
	assert.False(t, exported)
	assert.Contains(t, b.String(), "No RDS instances found.")
	_, err := os.Stat(out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListerRunExportFails(t *testing.T) {
	r, e2 := fixture()
	out := filepath.Join(t.TempDir(), "missing", "groups.json")
	var b bytes.Buffer

	exported := Lister{Region: "ap-northeast-1", Output: out, RDS: r, EC2: e2}.Run(context.Background(), &b)
	assert.False(t, exported)
	assert.Contains(t, b.String(), "export failed")
}
