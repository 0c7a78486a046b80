package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/render"
)

type saveCmd struct {
	poolFile
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save the pool file under a name" }
func (*saveCmd) Usage() string {
	return `costsplits save [-f <file>] [<name>]

  Saves the pool to the pool store, replacing any pool with the same name.
  The name defaults to the pool's own name.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return c.app.usage("save takes at most one name")
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	name := pool.Name
	if f.NArg() == 1 {
		name = f.Arg(0)
	}
	if name == "" {
		return c.app.usage("the pool has no name, pass one")
	}

	svc, closeStore, err := c.app.pools()
	if err != nil {
		return c.app.fail("opening pools", err)
	}
	defer closeStore()

	saved, err := svc.Save(ctx, name, pool)
	if err != nil {
		return c.app.fail(fmt.Sprintf("saving pool %q", name), err)
	}

	// Keep the file's name in step with the saved pool.
	if pool.Name != saved.Name {
		pool.Name = saved.Name
		if err := c.store(pool); err != nil {
			return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
		}
	}

	fmt.Fprintf(c.app.Stdout, "Saved pool %q\n", saved.Name)
	return subcommands.ExitSuccess
}

type openCmd struct {
	poolFile
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "write a saved pool to the pool file" }
func (*openCmd) Usage() string {
	return `costsplits open [-f <file>] <name>

  Loads a saved pool and replaces the pool file with it.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("open takes exactly one name")
	}

	svc, closeStore, err := c.app.pools()
	if err != nil {
		return c.app.fail("opening pools", err)
	}
	defer closeStore()

	pool, err := svc.Open(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(fmt.Sprintf("opening pool %q", f.Arg(0)), err)
	}
	if err := c.store(*pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Opened pool %q into %s\n", pool.Name, c.path)
	return subcommands.ExitSuccess
}

type poolsCmd struct {
	app *App
}

func (*poolsCmd) Name() string     { return "pools" }
func (*poolsCmd) Synopsis() string { return "list saved pools" }
func (*poolsCmd) Usage() string {
	return `costsplits pools

  Lists the saved pools by name.
`
}

func (*poolsCmd) SetFlags(*flag.FlagSet) {}

func (c *poolsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeStore, err := c.app.pools()
	if err != nil {
		return c.app.fail("opening pools", err)
	}
	defer closeStore()

	pools, err := svc.List(ctx)
	if err != nil {
		return c.app.fail("listing pools", err)
	}
	return c.app.print(render.PoolsMarkdown(pools))
}

type dropCmd struct {
	app *App
}

func (*dropCmd) Name() string     { return "drop" }
func (*dropCmd) Synopsis() string { return "delete a saved pool" }
func (*dropCmd) Usage() string {
	return `costsplits drop <name>

  Deletes a saved pool. Pool files are left alone.
`
}

func (*dropCmd) SetFlags(*flag.FlagSet) {}

func (c *dropCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("drop takes exactly one name")
	}

	svc, closeStore, err := c.app.pools()
	if err != nil {
		return c.app.fail("opening pools", err)
	}
	defer closeStore()

	if err := svc.Delete(ctx, f.Arg(0)); err != nil {
		return c.app.fail(fmt.Sprintf("deleting pool %q", f.Arg(0)), err)
	}

	fmt.Fprintf(c.app.Stdout, "Deleted pool %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}
