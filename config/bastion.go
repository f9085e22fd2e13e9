package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	log "github.com/cantara/bragi/sbragi"
	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor a .env file sets a value.
const (
	DefaultRegion      = "ap-northeast-1"
	DefaultBastionCIDR = "10.0.0.0/16"
	DefaultPort        = 3306 // MySQL/Aurora, 5432 for PostgreSQL
	DefaultDryRun      = true
	DefaultOutput      = "rds_security_groups.json"
	DefaultRuleDesc    = "Access from Bastion VPC"
	DefaultEnvFile     = ".env"
)

// DefaultSecurityGroups is the hand maintained target list. Replace it with
// the list printed by list-rds-security-groups.
var DefaultSecurityGroups = []string{
	"sg-xxxxxxxxx1",
	"sg-xxxxxxxxx2",
	"sg-xxxxxxxxx3",
}

const (
	keyRegion         = "aws.region"
	keyProfile        = "aws.profile"
	keyCIDR           = "bastion.cidr"
	keyPort           = "bastion.port"
	keyDryRun         = "bastion.dry_run"
	keySecurityGroups = "bastion.security_groups"
	keyOutput         = "inventory.output"
)

type Bastion struct {
	Region         string
	Profile        string
	CIDR           string
	Port           int
	RuleDesc       string
	DryRun         bool
	SecurityGroups []string
	Output         string
}

func Default() Bastion {
	return Bastion{
		Region:         DefaultRegion,
		CIDR:           DefaultBastionCIDR,
		Port:           DefaultPort,
		RuleDesc:       DefaultRuleDesc,
		DryRun:         DefaultDryRun,
		SecurityGroups: append([]string(nil), DefaultSecurityGroups...),
		Output:         DefaultOutput,
	}
}

// Load reads the given .env files (missing ones are ignored) and lets the
// process environment override them. With no files DefaultEnvFile is tried.
func Load(files ...string) (Bastion, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	fileEnv := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Trace("no env file", "file", f)
				continue
			}
			return Bastion{}, fmt.Errorf("unable to read env file %s: %w", f, err)
		}
		log.Trace("read env file", "file", f, "keys", len(vals))
		for k, v := range vals {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// FromLookup builds the configuration from Default and the values lookup
// finds. Values are taken verbatim, the CIDR included.
func FromLookup(lookup func(string) (string, bool)) (b Bastion, err error) {
	b = Default()
	if v, ok := lookup(keyRegion); ok && v != "" {
		b.Region = v
	}
	if v, ok := lookup(keyProfile); ok {
		b.Profile = v
	}
	if v, ok := lookup(keyCIDR); ok && v != "" {
		b.CIDR = v
	}
	if v, ok := lookup(keyPort); ok && v != "" {
		b.Port, err = strconv.Atoi(v)
		if err != nil {
			err = fmt.Errorf("invalid %s %q: %w", keyPort, v, err)
			return
		}
		if b.Port < 1 || b.Port > 65535 {
			err = fmt.Errorf("invalid %s %d: %w", keyPort, b.Port, ErrPortOutOfRange)
			return
		}
	}
	if v, ok := lookup(keyDryRun); ok && v != "" {
		b.DryRun, err = strconv.ParseBool(v)
		if err != nil {
			err = fmt.Errorf("invalid %s %q: %w", keyDryRun, v, err)
			return
		}
	}
	if v, ok := lookup(keySecurityGroups); ok && v != "" {
		b.SecurityGroups = splitList(v)
	}
	if v, ok := lookup(keyOutput); ok && v != "" {
		b.Output = v
	}
	return
}

func splitList(v string) (out []string) {
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return
}

var ErrPortOutOfRange = fmt.Errorf("port out of range")
