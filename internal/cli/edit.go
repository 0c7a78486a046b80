package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/state"
	"github.com/mmynk/costsplits/internal/validate"
)

// editCmd is a command that applies one state edit to the pool file.
type editCmd struct {
	poolFile
	name     string
	synopsis string
	usage    string
	args     []string // argument names, for the usage error
	apply    func(p models.Pool, args []string) (models.Pool, error)
}

func (c *editCmd) Name() string     { return c.name }
func (c *editCmd) Synopsis() string { return c.synopsis }
func (c *editCmd) Usage() string    { return c.usage }

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != len(c.args) {
		return c.app.usage("%s takes %d arguments: %v", c.name, len(c.args), c.args)
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	pool, err = c.apply(pool, f.Args())
	if err != nil {
		return c.app.fail(c.name, err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Updated %s\n", c.path)
	return subcommands.ExitSuccess
}

func edit(app *App, name, synopsis, usage string, args []string, apply func(models.Pool, []string) (models.Pool, error)) *editCmd {
	return &editCmd{
		poolFile: poolFile{app: app},
		name:     name,
		synopsis: synopsis,
		usage:    usage,
		args:     args,
		apply:    apply,
	}
}

func peopleEdits(app *App) []subcommands.Command {
	return []subcommands.Command{
		edit(app, "add-person", "add a person to the pool",
			"costsplits add-person [-f <file>] <name>\n\n  Adds a person with a zero weight in every split.\n",
			[]string{"name"},
			func(p models.Pool, args []string) (models.Pool, error) {
				return state.AddPerson(p, args[0])
			}),
		edit(app, "rename-person", "rename a person",
			"costsplits rename-person [-f <file>] <name> <new-name>\n",
			[]string{"name", "new-name"},
			func(p models.Pool, args []string) (models.Pool, error) {
				i, err := personArg(p, args[0])
				if err != nil {
					return p, err
				}
				return state.RenamePerson(p, i, args[1])
			}),
		edit(app, "remove-person", "remove a person and their transactions",
			"costsplits remove-person [-f <file>] <name>\n\n  Removes the person along with every transaction they paid for or share in.\n",
			[]string{"name"},
			func(p models.Pool, args []string) (models.Pool, error) {
				i, err := personArg(p, args[0])
				if err != nil {
					return p, err
				}
				return state.DeletePerson(p, i)
			}),
	}
}

func transactionEdits(app *App) []subcommands.Command {
	return []subcommands.Command{
		edit(app, "remove-tx", "remove a transaction",
			"costsplits remove-tx [-f <file>] <tx>\n\n  Transactions are numbered from 1 as in the details report.\n",
			[]string{"tx"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				return state.DeleteTransaction(p, ti)
			}),
		edit(app, "set-split", "set a person's weight on a transaction",
			"costsplits set-split [-f <file>] <tx> <name> <weight>\n",
			[]string{"tx", "name", "weight"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				pi, err := personArg(p, args[1])
				if err != nil {
					return p, err
				}
				w, err := validate.ParseWeight(args[2])
				if err != nil {
					return p, err
				}
				return state.SetSplit(p, ti, pi, w)
			}),
		edit(app, "itemize", "split a transaction into items",
			"costsplits itemize [-f <file>] <tx>\n\n  Starts with one item carrying the full cost and the current weights.\n",
			[]string{"tx"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				return state.Itemize(p, ti)
			}),
		edit(app, "unitemize", "drop the items of a transaction",
			"costsplits unitemize [-f <file>] <tx>\n",
			[]string{"tx"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				return state.Unitemize(p, ti)
			}),
	}
}

func itemEdits(app *App) []subcommands.Command {
	return []subcommands.Command{
		edit(app, "remove-item", "remove an item from a transaction",
			"costsplits remove-item [-f <file>] <tx> <item>\n\n  Removing the last item turns the transaction back into a plain one.\n",
			[]string{"tx", "item"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				ii, err := positionArg(args[1], "item")
				if err != nil {
					return p, err
				}
				return state.DeleteItem(p, ti, ii)
			}),
		edit(app, "set-item-split", "set a person's weight on an item",
			"costsplits set-item-split [-f <file>] <tx> <item> <name> <weight>\n",
			[]string{"tx", "item", "name", "weight"},
			func(p models.Pool, args []string) (models.Pool, error) {
				ti, err := positionArg(args[0], "transaction")
				if err != nil {
					return p, err
				}
				ii, err := positionArg(args[1], "item")
				if err != nil {
					return p, err
				}
				pi, err := personArg(p, args[2])
				if err != nil {
					return p, err
				}
				w, err := validate.ParseWeight(args[3])
				if err != nil {
					return p, err
				}
				return state.SetItemSplit(p, ti, ii, pi, w)
			}),
	}
}

type newCmd struct {
	poolFile
	name  string
	force bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a pool file" }
func (*newCmd) Usage() string {
	return `costsplits new [-f <file>] [-name <pool>] [-force] [<person>...]

  Creates a pool file with the given people and no transactions.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.name, "name", "", "Pool name")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing pool file")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		if _, err := os.Stat(c.path); err == nil {
			return c.app.usage("%s already exists, use -force to overwrite it", c.path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return c.app.fail(fmt.Sprintf("checking %q", c.path), err)
		}
	}

	pool := models.Pool{Name: c.name, People: []string{}, Transactions: []models.Transaction{}}
	for _, name := range f.Args() {
		var err error
		if pool, err = state.AddPerson(pool, name); err != nil {
			return c.app.usage("%v", err)
		}
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Created %s with %d people\n", c.path, len(pool.People))
	return subcommands.ExitSuccess
}

type addTxCmd struct {
	poolFile
	name   string
	cost   string
	payer  string
	splits string
	even   bool
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "add a transaction" }
func (*addTxCmd) Usage() string {
	return `costsplits add-tx [-f <file>] -cost <dollars> -payer <name> [-name <name>] [-splits <w1,w2,...> | -even]

  Adds a transaction paid by one person. Weights follow the order of people;
  missing weights are zero. Without -splits or -even nobody shares the cost yet.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.name, "name", "", "Transaction name")
	f.StringVar(&c.cost, "cost", "", "Cost in dollars, e.g. 12 or 3.50 (required)")
	f.StringVar(&c.payer, "payer", "", "Name of the person who paid (required)")
	f.StringVar(&c.splits, "splits", "", "Comma-separated weights, one per person")
	f.BoolVar(&c.even, "even", false, "Split evenly between everyone")
}

func (c *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cost == "" || c.payer == "" {
		return c.app.usage("-cost and -payer are required")
	}
	cost, err := validate.ParseDollar(c.cost)
	if err != nil {
		return c.app.usage("%v", err)
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	payer, err := personArg(pool, c.payer)
	if err != nil {
		return c.app.usage("%v", err)
	}
	splits, err := weightsFlag(c.splits, c.even, len(pool.People))
	if err != nil {
		return c.app.usage("%v", err)
	}

	pool, err = state.AddTransaction(pool, models.Transaction{
		Name:   c.name,
		Cost:   cost,
		Payer:  payer,
		Splits: splits,
	})
	if err != nil {
		return c.app.fail("adding transaction", err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Added transaction %d to %s\n", len(pool.Transactions), c.path)
	return subcommands.ExitSuccess
}

type addItemCmd struct {
	poolFile
	label  string
	cost   string
	splits string
	even   bool
}

func (*addItemCmd) Name() string     { return "add-item" }
func (*addItemCmd) Synopsis() string { return "add an item to a transaction" }
func (*addItemCmd) Usage() string {
	return `costsplits add-item [-f <file>] [-label <label>] [-cost <dollars>] [-splits <w1,w2,...> | -even] <tx>

  Adds an item to a transaction, itemizing it if needed. Item costs are
  scaled so that all items together add up to the transaction cost.
`
}

func (c *addItemCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.label, "label", "", "Item label")
	f.StringVar(&c.cost, "cost", "0", "Item cost in dollars")
	f.StringVar(&c.splits, "splits", "", "Comma-separated weights, one per person")
	f.BoolVar(&c.even, "even", false, "Split evenly between everyone")
}

func (c *addItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("add-item takes exactly one transaction number")
	}
	ti, err := positionArg(f.Arg(0), "transaction")
	if err != nil {
		return c.app.usage("%v", err)
	}
	cost, err := validate.ParseDollar(c.cost)
	if err != nil {
		return c.app.usage("%v", err)
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	splits, err := weightsFlag(c.splits, c.even, len(pool.People))
	if err != nil {
		return c.app.usage("%v", err)
	}

	pool, err = state.AddItem(pool, ti, models.Item{Label: c.label, Cost: cost, Splits: splits})
	if err != nil {
		return c.app.fail("adding item", err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Added item %d to transaction %d in %s\n", len(pool.Transactions[ti].Items), ti+1, c.path)
	return subcommands.ExitSuccess
}

// visited reports which flags were given on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

type editTxCmd struct {
	poolFile
	name  string
	cost  string
	payer string
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "change a transaction's name, cost or payer" }
func (*editTxCmd) Usage() string {
	return `costsplits edit-tx [-f <file>] [-name <name>] [-cost <dollars>] [-payer <name>] <tx>

  Changes only the given fields; weights and items are kept. Use -name ""
  to clear the name.
`
}

func (c *editTxCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.name, "name", "", "New transaction name")
	f.StringVar(&c.cost, "cost", "", "New cost in dollars")
	f.StringVar(&c.payer, "payer", "", "Name of the person who paid")
}

func (c *editTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("edit-tx takes exactly one transaction number")
	}
	ti, err := positionArg(f.Arg(0), "transaction")
	if err != nil {
		return c.app.usage("%v", err)
	}
	set := visited(f)
	if !set["name"] && !set["cost"] && !set["payer"] {
		return c.app.usage("nothing to change, give -name, -cost or -payer")
	}
	var cost float64
	if set["cost"] {
		if cost, err = validate.ParseDollar(c.cost); err != nil {
			return c.app.usage("%v", err)
		}
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	if ti >= len(pool.Transactions) {
		return c.app.fail("editing transaction",
			fmt.Errorf("%w: transaction %d of %d", state.ErrOutOfRange, ti+1, len(pool.Transactions)))
	}
	t := pool.Transactions[ti]
	if set["name"] {
		t.Name = c.name
	}
	if set["cost"] {
		t.Cost = cost
	}
	if set["payer"] {
		if t.Payer, err = personArg(pool, c.payer); err != nil {
			return c.app.usage("%v", err)
		}
	}

	pool, err = state.UpdateTransaction(pool, ti, t)
	if err != nil {
		return c.app.fail("editing transaction", err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Updated transaction %d in %s\n", ti+1, c.path)
	return subcommands.ExitSuccess
}

type editItemCmd struct {
	poolFile
	label string
	cost  string
}

func (*editItemCmd) Name() string     { return "edit-item" }
func (*editItemCmd) Synopsis() string { return "change an item's label or cost" }
func (*editItemCmd) Usage() string {
	return `costsplits edit-item [-f <file>] [-label <label>] [-cost <dollars>] <tx> <item>

  Changes only the given fields; weights are kept.
`
}

func (c *editItemCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.label, "label", "", "New item label")
	f.StringVar(&c.cost, "cost", "", "New item cost in dollars")
}

func (c *editItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.app.usage("edit-item takes a transaction and an item number")
	}
	ti, err := positionArg(f.Arg(0), "transaction")
	if err != nil {
		return c.app.usage("%v", err)
	}
	ii, err := positionArg(f.Arg(1), "item")
	if err != nil {
		return c.app.usage("%v", err)
	}
	set := visited(f)
	if !set["label"] && !set["cost"] {
		return c.app.usage("nothing to change, give -label or -cost")
	}
	var cost float64
	if set["cost"] {
		if cost, err = validate.ParseDollar(c.cost); err != nil {
			return c.app.usage("%v", err)
		}
	}

	pool, err := c.load()
	if err != nil {
		return c.app.fail(fmt.Sprintf("reading pool %q", c.path), err)
	}
	if ti >= len(pool.Transactions) || ii >= len(pool.Transactions[ti].Items) {
		return c.app.fail("editing item",
			fmt.Errorf("%w: no item %d in transaction %d", state.ErrOutOfRange, ii+1, ti+1))
	}
	item := pool.Transactions[ti].Items[ii]
	if set["label"] {
		item.Label = c.label
	}
	if set["cost"] {
		item.Cost = cost
	}

	pool, err = state.UpdateItem(pool, ti, ii, item)
	if err != nil {
		return c.app.fail("editing item", err)
	}
	if err := c.store(pool); err != nil {
		return c.app.fail(fmt.Sprintf("writing pool %q", c.path), err)
	}

	fmt.Fprintf(c.app.Stdout, "Updated item %d of transaction %d in %s\n", ii+1, ti+1, c.path)
	return subcommands.ExitSuccess
}
