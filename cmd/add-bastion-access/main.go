package main

import (
	"context"
	"errors"
	"os"

	log "github.com/cantara/bragi/sbragi"
	"github.com/gofrs/uuid"

	"github.com/cantara/bastion/applier"
	"github.com/cantara/bastion/cloud/aws"
	"github.com/cantara/bastion/cloud/aws/security"
	"github.com/cantara/bastion/config"
)

// exitFailures is returned after all groups ran and at least one failed.
const exitFailures = 2

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

	a := applier.New(applier.Config{
		Region:   conf.Region,
		GroupIds: conf.SecurityGroups,
		Rule:     security.NewRule(conf.CIDR, conf.Port, conf.RuleDesc),
		DryRun:   conf.DryRun,
	}, clients.GetEC2())

	log.Info("adding bastion access", "run", runId, "groups", len(conf.SecurityGroups), "dry_run", conf.DryRun)
	tally, err := a.Run(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, applier.ErrCancelled) {
		return
	}
	if tally.Error > 0 {
		log.Info("finished with errors", "run", runId, "errors", tally.Error)
		os.Exit(exitFailures)
	}
}
