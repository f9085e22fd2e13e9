package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/cantara/bragi/sbragi"

	"github.com/cantara/bastion/cloud/aws"
	"github.com/cantara/bastion/cloud/aws/security"
	"github.com/cantara/bastion/config"
)

// Read only probe: prints the given groups and whether the bastion rule is on them.
func main() {
	dl, _ := log.NewDebugLogger()
	dl.SetDefault()

	conf, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("while loading configuration")
	}
	cfg, err := aws.LoadConfig(context.TODO(), conf.Region, conf.Profile)
	if err != nil {
		log.WithError(err).Fatal("while getting aws config")
	}
	ec2client := aws.New(cfg).GetEC2()

	ids := os.Args[1:]
	if len(ids) == 0 {
		ids = conf.SecurityGroups
	}
	rule := security.NewRule(conf.CIDR, conf.Port, conf.RuleDesc)
	for _, id := range ids {
		g, err := security.ById(context.TODO(), id, ec2client)
		if err != nil {
			log.WithError(err).Error("while getting security group", "id", id)
			continue
		}
		fmt.Printf("%s\t%s\t%s\tbastion rule: %t\n", g.Id, g.Name, g.VpcId, g.HasIngress(rule))
	}
}
