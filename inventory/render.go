package inventory

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cantara/bastion/console"
)

const reportWidth = 80

// UniqueGroupIDs returns every group id across records, sorted and deduplicated.
func UniqueGroupIDs(records []Record) []string {
	seen := map[string]struct{}{}
	for _, r := range records {
		for _, g := range r.SecurityGroups {
			seen[g.Id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func Render(w io.Writer, records []Record) {
	console.Header(w, reportWidth, "RDS instances and security groups")
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No RDS instances found.")
		return
	}

	for i, r := range records {
		fmt.Fprintf(w, "%d. RDS: %s\n", i+1, r.Identifier)
		fmt.Fprintf(w, "   Engine: %s\n", r.Engine)
		fmt.Fprintf(w, "   VPC: %s\n", r.VpcId)
		fmt.Fprintln(w, "   Security Groups:")
		if len(r.SecurityGroups) == 0 {
			fmt.Fprintln(w, "     (none)")
		}
		for _, g := range r.SecurityGroups {
			fmt.Fprintf(w, "     - %s (%s)\n", g.Id, g.Name)
			fmt.Fprintf(w, "       %s\n", g.Description)
		}
		fmt.Fprintln(w)
	}

	console.Section(w, reportWidth, "All security group ids (paste into bastion.security_groups or the defaults):")
	fmt.Fprintln(w, strings.Repeat("-", reportWidth))
	ids := UniqueGroupIDs(records)
	if len(ids) == 0 {
		fmt.Fprintln(w, "(no security groups found)")
		return
	}
	fmt.Fprintln(w, "SecurityGroups = []string{")
	for _, id := range ids {
		fmt.Fprintf(w, "\t%q,\n", id)
	}
	fmt.Fprintln(w, "}")
}
