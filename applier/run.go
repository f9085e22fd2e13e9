package applier

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/cantara/bragi/sbragi"

	"github.com/cantara/bastion/console"
)

const reportWidth = 60

// Confirmed reads one line and accepts only "yes", ignoring case and
// surrounding whitespace.
func Confirmed(r io.Reader) bool {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Error("while reading confirmation")
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// Run applies the rule to every configured group in order. Outside dry run
// the operator has to confirm on confirm first; anything but yes returns
// ErrCancelled before any group is touched.
func (a Applier) Run(ctx context.Context, confirm io.Reader, out io.Writer) (t Tally, err error) {
	a.printConfig(out)

	if !a.cfg.DryRun {
		console.Warn(out, "Warning: security groups will be modified.")
		fmt.Fprint(out, "Continue? (yes/no): ")
		if !Confirmed(confirm) {
			fmt.Fprintln(out, "Cancelled.")
			log.Info("run cancelled by operator")
			err = ErrCancelled
			return
		}
	}

	for _, id := range a.cfg.GroupIds {
		console.Section(out, reportWidth, "Processing: "+console.Green(id))
		r := a.Apply(ctx, id)
		a.printResult(out, r)
		t.Add(r)
		fmt.Fprintln(out)
	}

	a.printTally(out, t)
	log.Info("run finished", "success", t.Success, "skip", t.Skip, "error", t.Error, "dry_run", a.cfg.DryRun)
	return
}

func (a Applier) printConfig(out io.Writer) {
	console.Header(out, reportWidth, "RDS security group update")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Settings:")
	fmt.Fprintf(out, "  Bastion VPC CIDR: %s\n", a.cfg.Rule.CIDR)
	fmt.Fprintf(out, "  RDS port: %d\n", a.cfg.Rule.Port)
	fmt.Fprintf(out, "  Region: %s\n", a.cfg.Region)
	fmt.Fprintf(out, "  Dry run: %t\n", a.cfg.DryRun)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Target security groups: %d\n", len(a.cfg.GroupIds))
	fmt.Fprintln(out)
}

func (a Applier) printResult(out io.Writer, r Result) {
	if r.GroupName != "" || r.VpcId != "" {
		fmt.Fprintf(out, "  Name: %s\n", r.GroupName)
		fmt.Fprintf(out, "  VPC: %s\n", r.VpcId)
	}
	switch {
	case r.Status == StatusSkip:
		console.Warn(out, "  → rule already exists (skipped)")
	case r.Simulated:
		console.Success(out, "  → [DRY RUN] would add rule")
		fmt.Fprintf(out, "     CidrIp: %s\n", a.cfg.Rule.CIDR)
		fmt.Fprintf(out, "     Port: %d\n", a.cfg.Rule.Port)
	case r.Status == StatusSuccess:
		console.Success(out, "  ✓ rule added")
	default:
		console.Fail(out, "  ✗ error: %s", r.Message)
	}
}

func (a Applier) printTally(out io.Writer, t Tally) {
	console.Header(out, reportWidth, "Done")
	fmt.Fprintf(out, "Success: %s\n", console.Green(t.Success))
	fmt.Fprintf(out, "Skipped (existing): %s\n", console.Yellow(t.Skip))
	fmt.Fprintf(out, "Errors: %s\n", console.Red(t.Error))
	fmt.Fprintln(out)
	if a.cfg.DryRun {
		console.Warn(out, "This was a dry run. To apply the changes set")
		console.Warn(out, "bastion.dry_run=false in the environment or .env file.")
	}
}

var ErrCancelled = fmt.Errorf("cancelled by operator")
