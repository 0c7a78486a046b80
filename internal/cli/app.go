// Package cli implements the costsplits subcommands.
//
// Every command works on a pool file (-f, COSTSPLITS_POOL_FILE by default):
// report commands read it, edit commands rewrite it, and the pool commands
// move it in and out of the SQLite pool store.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/google/subcommands"

	"github.com/mmynk/costsplits/internal/config"
	"github.com/mmynk/costsplits/internal/metrics"
	"github.com/mmynk/costsplits/internal/middleware"
	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/render"
	"github.com/mmynk/costsplits/internal/service"
	"github.com/mmynk/costsplits/internal/share"
	"github.com/mmynk/costsplits/internal/storage"
	"github.com/mmynk/costsplits/internal/validate"
)

// App carries what commands share: configuration, output streams and access
// to the pool store.
type App struct {
	Config    config.Config
	Metrics   *metrics.Metrics
	OpenStore func() (storage.Store, error)
	Stdout    io.Writer
	Stderr    io.Writer
	Styled    bool // render markdown for a terminal
}

// Register adds every command, wrapped with logging, to the commander.
func Register(c *subcommands.Commander, app *App) {
	for _, g := range groups(app) {
		for _, cmd := range g.commands {
			c.Register(middleware.WithLogging(cmd), g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

func groups(app *App) []group {
	return []group{
		{"reports", []subcommands.Command{
			&summaryCmd{poolFile: poolFile{app: app}},
			&detailsCmd{poolFile: poolFile{app: app}},
			&personCmd{poolFile: poolFile{app: app}},
			&checkCmd{poolFile: poolFile{app: app}},
		}},
		{"sharing", []subcommands.Command{
			&shareCmd{poolFile: poolFile{app: app}},
			&unshareCmd{poolFile: poolFile{app: app}},
		}},
		{"pools", []subcommands.Command{
			&saveCmd{poolFile: poolFile{app: app}},
			&openCmd{poolFile: poolFile{app: app}},
			&poolsCmd{app: app},
			&dropCmd{app: app},
		}},
		{"people", append([]subcommands.Command{
			&newCmd{poolFile: poolFile{app: app}},
		}, peopleEdits(app)...)},
		{"transactions", append([]subcommands.Command{
			&addTxCmd{poolFile: poolFile{app: app}},
			&editTxCmd{poolFile: poolFile{app: app}},
		}, transactionEdits(app)...)},
		{"items", append([]subcommands.Command{
			&addItemCmd{poolFile: poolFile{app: app}},
			&editItemCmd{poolFile: poolFile{app: app}},
		}, itemEdits(app)...)},
	}
}

// reports returns a service for computations that need no store.
func (a *App) reports() *service.PoolService {
	return service.NewPoolService(nil, a.Metrics)
}

// pools opens the store and returns a service backed by it along with a
// function releasing the store.
func (a *App) pools() (*service.PoolService, func(), error) {
	store, err := a.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open pool store: %w", err)
	}
	return service.NewPoolService(store, a.Metrics), func() { store.Close() }, nil
}

func (a *App) print(doc string) subcommands.ExitStatus {
	if err := render.Write(a.Stdout, doc, a.Styled); err != nil {
		return a.fail("writing output", err)
	}
	return subcommands.ExitSuccess
}

func (a *App) fail(doing string, err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Stderr, "Error %s: %v\n", doing, err)
	return subcommands.ExitFailure
}

func (a *App) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// poolFile is the -f flag shared by commands that work on a pool file.
type poolFile struct {
	app  *App
	path string
}

func (p *poolFile) setFlags(f *flag.FlagSet) {
	f.StringVar(&p.path, "f", p.app.Config.PoolFile, "Pool file to work on")
}

func (p *poolFile) load() (models.Pool, error) {
	return share.ReadFile(p.path)
}

// store validates the pool and writes it to the pool file.
func (p *poolFile) store(pool models.Pool) error {
	if err := validate.Pool(pool); err != nil {
		return err
	}
	return share.WriteFile(p.path, pool)
}

var errUnknownPerson = errors.New("unknown person")

// personArg resolves a person name to its index.
func personArg(p models.Pool, name string) (int, error) {
	i := p.IndexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", errUnknownPerson, name)
	}
	return i, nil
}

// positionArg parses a 1-based position, as shown in reports, into an index.
func positionArg(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return n - 1, nil
}

// weightsFlag parses a comma-separated weight list. even gives everyone a
// weight of 1 and takes precedence.
func weightsFlag(s string, even bool, n int) ([]float64, error) {
	if even {
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w, nil
	}
	w, err := validate.ParseWeights(s)
	if err != nil {
		return nil, err
	}
	if len(w) > n {
		return nil, fmt.Errorf("got %d weights for %d people", len(w), n)
	}
	return w, nil
}
