package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/render"
)

type summaryCmd struct {
	poolFile
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show balances and suggested settlements" }
func (*summaryCmd) Usage() string {
	return `costsplits summary [-f <file>]

  Shows what each person paid, what their share costs and what they are owed,
  followed by the transfers that settle every balance.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}

	report, err := c.app.reports().Report(ctx, pool)
	if err != nil {
		return c.app.fail("computing summary", err)
	}
	return c.app.print(render.SummaryMarkdown(report))
}

type detailsCmd struct {
	poolFile
}

func (*detailsCmd) Name() string     { return "details" }
func (*detailsCmd) Synopsis() string { return "show each person's share of every transaction" }
func (*detailsCmd) Usage() string {
	return `costsplits details [-f <file>]

  Breaks every transaction down per person. Itemized transactions list their
  items, with item costs scaled to the transaction total.
`
}

func (c *detailsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *detailsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}

	report, err := c.app.reports().Report(ctx, pool)
	if err != nil {
		return c.app.fail("computing split details", err)
	}
	return c.app.print(render.DetailsMarkdown(report))
}

type personCmd struct {
	poolFile
}

func (*personCmd) Name() string     { return "person" }
func (*personCmd) Synopsis() string { return "show one person's transactions and settlements" }
func (*personCmd) Usage() string {
	return `costsplits person [-f <file>] <name>

  Lists the transactions the person paid for, the ones they share in with
  their share of each, and the settlements they take part in.
`
}

func (c *personCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *personCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("person takes exactly one name")
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}

	report, err := c.app.reports().Person(ctx, pool, f.Arg(0))
	if err != nil {
		return c.app.fail("computing person report", err)
	}
	return c.app.print(render.PersonMarkdown(report))
}

type checkCmd struct {
	poolFile
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate a pool file" }
func (*checkCmd) Usage() string {
	return `costsplits check [-f <file>]

  Checks that every split has one weight per person, that payers exist and
  that all amounts are valid.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("checking %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "%s: ok, %d people (%s), %d transactions\n",
		c.path, len(pool.People), strings.Join(pool.People, ", "), len(pool.Transactions))
	return subcommands.ExitSuccess
}
