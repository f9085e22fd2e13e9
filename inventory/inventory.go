package inventory

import (
	"context"
	"fmt"
	"io"

	log "github.com/cantara/bragi/sbragi"

	"github.com/cantara/bastion/cloud/aws/database"
	"github.com/cantara/bastion/cloud/aws/security"
	"github.com/cantara/bastion/console"
)

const DefaultOutput = "rds_security_groups.json"

type SecurityGroup struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Record struct {
	Identifier     string          `json:"db_identifier"`
	Engine         string          `json:"engine"`
	VpcId          string          `json:"vpc_id"`
	SecurityGroups []SecurityGroup `json:"security_groups"`
}

// Collect lists every db instance and resolves its groups. A failed
// listing yields no records; a failed group lookup only empties the
// group list of that instance.
func Collect(ctx context.Context, r database.RDSAPI, e2 security.EC2API) (records []Record) {
	instances, err := database.List(ctx, r)
	if err != nil {
		log.WithError(err).Error("while listing rds instances")
		return
	}
	records = make([]Record, 0, len(instances))
	for _, i := range instances {
		rec := Record{
			Identifier:     i.Identifier,
			Engine:         i.Engine,
			VpcId:          i.VpcId,
			SecurityGroups: []SecurityGroup{},
		}
		if len(i.SecurityGroupIds) > 0 {
			groups, err := security.ByIds(ctx, i.SecurityGroupIds, e2)
			if err != nil {
				log.Warning("could not resolve security groups", "db", i.Identifier, "groups", i.SecurityGroupIds, "error", err)
			}
			for _, g := range groups {
				rec.SecurityGroups = append(rec.SecurityGroups, SecurityGroup{
					Id:          g.Id,
					Name:        g.Name,
					Description: g.Desc,
				})
			}
		}
		records = append(records, rec)
	}
	return
}

type Lister struct {
	Region string
	Output string
	RDS    database.RDSAPI
	EC2    security.EC2API
}

// Run prints the report and exports it. Nothing is written for a region
// without instances. The return value tells whether a file was written.
func (l Lister) Run(ctx context.Context, w io.Writer) bool {
	fmt.Fprintf(w, "Region: %s\n\n", l.Region)
	records := Collect(ctx, l.RDS, l.EC2)
	Render(w, records)
	if len(records) == 0 {
		log.Info("no records, skipping export", "region", l.Region)
		return false
	}
	out := l.Output
	if out == "" {
		out = DefaultOutput
	}
	err := Export(records, out)
	if err != nil {
		log.WithError(err).Error("while exporting records", "path", out)
		console.Fail(w, "\nError: export failed: %v", err)
		return false
	}
	fmt.Fprintf(w, "\nExported results to %s.\n", out)
	return true
}
