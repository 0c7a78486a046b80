package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/share"
)

type shareCmd struct {
	poolFile
	base string
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print a share link for the pool" }
func (*shareCmd) Usage() string {
	return `costsplits share [-f <file>] [-base <url>]

  Prints a link carrying the people and transactions in its state parameter.
  The pool name is not included.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.base, "base", c.app.Config.ShareBase, "Base URL of the share link")
}

func (c *shareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}

	link, err := share.URL(c.base, pool)
	if err != nil {
		return c.app.fail("building share link", err)
	}
	fmt.Fprintln(c.app.Stdout, link)
	return subcommands.ExitSuccess
}

type unshareCmd struct {
	poolFile
}

func (*unshareCmd) Name() string     { return "unshare" }
func (*unshareCmd) Synopsis() string { return "write the pool carried by a share link to the pool file" }
func (*unshareCmd) Usage() string {
	return `costsplits unshare [-f <file>] <link>

  Decodes the state parameter of a share link and replaces the pool file
  with it.
`
}

func (c *unshareCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *unshareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("unshare takes exactly one link")
	}

	pool, err := share.FromURL(f.Arg(0))
	if err != nil {
		return c.app.fail("reading share link", err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Wrote %d people and %d transactions to %s\n", len(pool.People), len(pool.Transactions), c.path)
	return subcommands.ExitSuccess
}
