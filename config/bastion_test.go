package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	b, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "ap-northeast-1", b.Region)
	assert.Equal(t, "10.0.0.0/16", b.CIDR)
	assert.Equal(t, 3306, b.Port)
	assert.True(t, b.DryRun)
	assert.Equal(t, DefaultSecurityGroups, b.SecurityGroups)
	assert.Equal(t, "rds_security_groups.json", b.Output)
	assert.Equal(t, "Access from Bastion VPC", b.RuleDesc)

	b.SecurityGroups[0] = "changed"
	assert.Equal(t, "sg-xxxxxxxxx1", DefaultSecurityGroups[0])
}

func TestOverrides(t *testing.T) {
	b, err := FromLookup(lookupMap(map[string]string{
		"aws.region":              "eu-west-1",
		"aws.profile":             "prod",
		"bastion.cidr":            "172.16.0.0/12",
		"bastion.port":            "5432",
		"bastion.dry_run":         "false",
		"bastion.security_groups": " sg-1, sg-2,,sg-3 ",
		"inventory.output":        "out.json",
	}))
	require.NoError(t, err)
	assert.Equal(t, Bastion{
		Region:         "eu-west-1",
		Profile:        "prod",
		CIDR:           "172.16.0.0/12",
		Port:           5432,
		RuleDesc:       DefaultRuleDesc,
		DryRun:         false,
		SecurityGroups: []string{"sg-1", "sg-2", "sg-3"},
		Output:         "out.json",
	}, b)
}

func TestInvalidValues(t *testing.T) {
	_, err := FromLookup(lookupMap(map[string]string{"bastion.port": "mysql"}))
	assert.Error(t, err)

	_, err = FromLookup(lookupMap(map[string]string{"bastion.port": "70000"}))
	assert.True(t, errors.Is(err, ErrPortOutOfRange))

	_, err = FromLookup(lookupMap(map[string]string{"bastion.dry_run": "maybe"}))
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "bastion.env")
	require.NoError(t, os.WriteFile(env, []byte("bastion.port=5432\nbastion.security_groups=sg-a,sg-b\naws.region=us-east-1\n"), 0o600))
	t.Setenv("aws.region", "eu-north-1")

	b, err := Load(filepath.Join(dir, "missing.env"), env)
	require.NoError(t, err)
	assert.Equal(t, 5432, b.Port)
	assert.Equal(t, []string{"sg-a", "sg-b"}, b.SecurityGroups)
	// process environment wins over the file
	assert.Equal(t, "eu-north-1", b.Region)
}
