// Package applier adds one ingress rule to a fixed list of security groups.
//
// Every group is handled on its own: a failure is recorded as an error
// result and the run moves on to the next group. The existence check is a
// best effort, the authorize call is the authority.
package applier

import (
	"context"
	"fmt"

	log "github.com/cantara/bragi/sbragi"

	"github.com/cantara/bastion/cloud/aws/security"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusSkip    Status = "skip"
	StatusError   Status = "error"
)

type Result struct {
	GroupId   string
	GroupName string
	VpcId     string
	Status    Status
	Message   string
	// Simulated is set when dry run stopped an authorize call.
	Simulated bool
}

type Tally struct {
	Success int
	Skip    int
	Error   int
}

func (t *Tally) Add(r Result) {
	switch r.Status {
	case StatusSuccess:
		t.Success++
	case StatusSkip:
		t.Skip++
	default:
		t.Error++
	}
}

func (t Tally) Total() int {
	return t.Success + t.Skip + t.Error
}

type Config struct {
	Region   string
	GroupIds []string
	Rule     security.Rule
	DryRun   bool
}

type Applier struct {
	cfg Config
	e2  security.EC2API
}

func New(cfg Config, e2 security.EC2API) Applier {
	return Applier{
		cfg: cfg,
		e2:  e2,
	}
}

func (a Applier) Config() Config {
	return a.cfg
}

// RuleExists answers false when the lookup fails. That means "unknown",
// the caller goes on and lets the authorize call decide.
func (a Applier) RuleExists(ctx context.Context, groupId string) bool {
	g, err := security.ById(ctx, groupId, a.e2)
	if err != nil {
		log.WithError(err).Error("while checking existing ingress", "group", groupId)
		return false
	}
	return g.HasIngress(a.cfg.Rule)
}

func (a Applier) Apply(ctx context.Context, groupId string) (r Result) {
	r.GroupId = groupId
	g, err := security.ById(ctx, groupId, a.e2)
	if err != nil {
		r.Status = StatusError
		if security.IsNotFound(err) {
			r.Message = fmt.Sprintf("security group %s not found", groupId)
		} else {
			r.Message = security.APIMessage(err)
		}
		log.WithError(err).Error("while getting security group", "group", groupId)
		return
	}
	r.GroupName = g.Name
	r.VpcId = g.VpcId

	if a.RuleExists(ctx, groupId) {
		r.Status = StatusSkip
		r.Message = "rule already exists"
		log.Info("rule already exists", "group", groupId, "cidr", a.cfg.Rule.CIDR, "port", a.cfg.Rule.Port)
		return
	}

	if a.cfg.DryRun {
		r.Status = StatusSuccess
		r.Simulated = true
		r.Message = "[DRY RUN] would add rule"
		log.Info("dry run, not adding rule", "group", groupId)
		return
	}

	err = g.Authorize(ctx, a.cfg.Rule, a.e2)
	if err != nil {
		r.Status = StatusError
		r.Message = security.APIMessage(err)
		log.WithError(err).Error("while adding ingress rule", "group", groupId)
		return
	}
	r.Status = StatusSuccess
	r.Message = "rule added"
	return
}
