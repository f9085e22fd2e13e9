package main

import (
	"context"
	"os"

	log "github.com/cantara/bragi/sbragi"
	"github.com/gofrs/uuid"

	"github.com/cantara/bastion/cloud/aws"
	"github.com/cantara/bastion/config"
	"github.com/cantara/bastion/inventory"
)

func main() {
	dl, _ := log.NewDebugLogger()
	dl.SetDefault()
	runId := uuid.Must(uuid.NewV7()).String()

	conf, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("while loading configuration", "run", runId)
	}
	ctx := context.Background()
	cfg, err := aws.LoadConfig(ctx, conf.Region, conf.Profile)
	if err != nil {
		log.WithError(err).Fatal("while getting aws config", "run", runId)
	}
	clients := aws.New(cfg)

	log.Info("listing rds security groups", "run", runId, "region", conf.Region)
	exported := inventory.Lister{
		Region: conf.Region,
		Output: conf.Output,
		RDS:    clients.GetRDS(),
		EC2:    clients.GetEC2(),
	}.Run(ctx, os.Stdout)
	log.Info("listing finished", "run", runId, "exported", exported)
}
