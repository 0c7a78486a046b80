package cli

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/costsplits/internal/config"
	"github.com/mmynk/costsplits/internal/metrics"
	"github.com/mmynk/costsplits/internal/models"
	"github.com/mmynk/costsplits/internal/share"
	"github.com/mmynk/costsplits/internal/storage"
	"github.com/mmynk/costsplits/internal/storage/sqlite"
)

type testApp struct {
	*App
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	ta := &testApp{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.App = &App{
		Config: config.Config{
			DBPath:    filepath.Join(dir, "pools.db"),
			ShareBase: config.DefaultShareBase,
			PoolFile:  filepath.Join(dir, config.DefaultPoolFile),
		},
		Metrics: metrics.New(),
		OpenStore: func() (storage.Store, error) {
			return sqlite.New(filepath.Join(dir, "pools.db"))
		},
		Stdout: ta.stdout,
		Stderr: ta.stderr,
	}
	return ta
}

// run executes the named command with fresh flags, as the commander would.
func (ta *testApp) run(t *testing.T, name string, args ...string) subcommands.ExitStatus {
	t.Helper()
	ta.stdout.Reset()
	ta.stderr.Reset()

	for _, g := range groups(ta.App) {
		for _, cmd := range g.commands {
			if cmd.Name() != name {
				continue
			}
			fs := flag.NewFlagSet(name, flag.ContinueOnError)
			cmd.SetFlags(fs)
			require.NoError(t, fs.Parse(args))
			return cmd.Execute(context.Background(), fs)
		}
	}
	t.Fatalf("no command %q", name)
	return subcommands.ExitFailure
}

func (ta *testApp) mustRun(t *testing.T, name string, args ...string) string {
	t.Helper()
	status := ta.run(t, name, args...)
	require.Equal(t, subcommands.ExitSuccess, status, "stderr: %s", ta.stderr.String())
	return ta.stdout.String()
}

func (ta *testApp) pool(t *testing.T) models.Pool {
	t.Helper()
	p, err := share.ReadFile(ta.Config.PoolFile)
	require.NoError(t, err)
	return p
}

// trip sets up Alice paying a hotel for three and Bob a dinner for two.
func (ta *testApp) trip(t *testing.T) {
	t.Helper()
	ta.mustRun(t, "new", "-name", "Trip", "Alice", "Bob", "Chloé")
	ta.mustRun(t, "add-tx", "-name", "Hotel", "-cost", "90", "-payer", "Alice", "-even")
	ta.mustRun(t, "add-tx", "-name", "Dinner", "-cost", "30.00", "-payer", "Bob", "-splits", "1,1")
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range groups(&App{}) {
		for _, cmd := range g.commands {
			assert.False(t, seen[cmd.Name()], "duplicate command %q", cmd.Name())
			seen[cmd.Name()] = true
		}
	}
	assert.Len(t, seen, 24)
}

func TestSummaryWorkflow(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	p := ta.pool(t)
	assert.Equal(t, "Trip", p.Name)
	assert.Equal(t, []float64{1, 1, 1}, p.Transactions[0].Splits)
	assert.Equal(t, []float64{1, 1, 0}, p.Transactions[1].Splits)

	out := ta.mustRun(t, "summary")
	assert.Contains(t, out, "# Trip")
	assert.Contains(t, out, "Chloé pays Alice $30.00")
	assert.Contains(t, out, "Bob pays Alice $15.00")

	out = ta.mustRun(t, "details")
	assert.Contains(t, out, "Hotel - $90.00")
	assert.Contains(t, out, "Dinner - $30.00")

	out = ta.mustRun(t, "person", "Bob")
	assert.Contains(t, out, "### Paid Transactions")
	assert.Contains(t, out, "### Shared Splits")
	assert.Contains(t, out, "### Settlement Plan")

	out = ta.mustRun(t, "check")
	assert.Contains(t, out, "ok, 3 people (Alice, Bob, Chloé), 2 transactions")
}

func TestPeopleEdits(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	ta.mustRun(t, "add-person", "Dan")
	p := ta.pool(t)
	assert.Equal(t, []string{"Alice", "Bob", "Chloé", "Dan"}, p.People)
	assert.Equal(t, []float64{1, 1, 1, 0}, p.Transactions[0].Splits)

	ta.mustRun(t, "rename-person", "Dan", "Daniel")
	assert.Equal(t, "Daniel", ta.pool(t).People[3])

	// Chloé shares the hotel, so it goes with her.
	ta.mustRun(t, "remove-person", "Chloé")
	p = ta.pool(t)
	assert.Equal(t, []string{"Alice", "Bob", "Daniel"}, p.People)
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, "Dinner", p.Transactions[0].Name)
	assert.Equal(t, []float64{1, 1, 0}, p.Transactions[0].Splits)

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "add-person", "Bob"))
	assert.Contains(t, ta.stderr.String(), "Error add-person")

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "remove-person", "Zoe"))
	assert.Contains(t, ta.stderr.String(), "unknown person")
}

func TestTransactionAndItemEdits(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	ta.mustRun(t, "set-split", "2", "Chloé", "2")
	assert.Equal(t, []float64{1, 1, 2}, ta.pool(t).Transactions[1].Splits)

	ta.mustRun(t, "itemize", "2")
	p := ta.pool(t)
	require.Len(t, p.Transactions[1].Items, 1)
	assert.Equal(t, 30.0, p.Transactions[1].Items[0].Cost)

	ta.mustRun(t, "add-item", "-label", "Wine", "-cost", "10", "-splits", "0,1", "2")
	ta.mustRun(t, "set-item-split", "2", "2", "Alice", "0.5")
	p = ta.pool(t)
	require.Len(t, p.Transactions[1].Items, 2)
	assert.Equal(t, models.Item{Label: "Wine", Cost: 10, Splits: []float64{0.5, 1, 0}}, p.Transactions[1].Items[1])

	out := ta.mustRun(t, "details")
	assert.Contains(t, out, "↳ Wine")

	ta.mustRun(t, "remove-item", "2", "1")
	ta.mustRun(t, "remove-item", "2", "1")
	assert.Nil(t, ta.pool(t).Transactions[1].Items)

	ta.mustRun(t, "itemize", "1")
	ta.mustRun(t, "unitemize", "1")
	assert.Nil(t, ta.pool(t).Transactions[0].Items)

	ta.mustRun(t, "remove-tx", "1")
	p = ta.pool(t)
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, "Dinner", p.Transactions[0].Name)

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "remove-tx", "5"))
	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "set-split", "1", "Alice", "-1"))
	assert.Equal(t, subcommands.ExitUsageError, ta.run(t, "remove-tx"))
}

func TestEditTx(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	ta.mustRun(t, "edit-tx", "-cost", "120", "-payer", "Chloé", "1")
	hotel := ta.pool(t).Transactions[0]
	assert.Equal(t, "Hotel", hotel.Name)
	assert.Equal(t, 120.0, hotel.Cost)
	assert.Equal(t, 2, hotel.Payer)
	assert.Equal(t, []float64{1, 1, 1}, hotel.Splits)

	out := ta.mustRun(t, "summary")
	assert.Contains(t, out, "Alice pays Chloé $55.00")
	assert.Contains(t, out, "Bob pays Chloé $25.00")

	ta.mustRun(t, "edit-tx", "-name", "", "2")
	dinner := ta.pool(t).Transactions[1]
	assert.Empty(t, dinner.Name)
	assert.Equal(t, 30.0, dinner.Cost)

	tests := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
	}{
		{name: "nothing to change", args: []string{"1"}, status: subcommands.ExitUsageError},
		{name: "no transaction", args: []string{"-cost", "5"}, status: subcommands.ExitUsageError},
		{name: "three decimals", args: []string{"-cost", "1.234", "1"}, status: subcommands.ExitUsageError},
		{name: "unknown payer", args: []string{"-payer", "Zoe", "1"}, status: subcommands.ExitUsageError},
		{name: "out of range", args: []string{"-cost", "5", "3"}, status: subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ta.pool(t)
			assert.Equal(t, tt.status, ta.run(t, "edit-tx", tt.args...))
			assert.Equal(t, before, ta.pool(t))
		})
	}
}

func TestEditItem(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)
	ta.mustRun(t, "itemize", "2")
	ta.mustRun(t, "add-item", "-label", "Tip", "-cost", "3", "-even", "2")

	ta.mustRun(t, "edit-item", "-label", "Pasta", "-cost", "27", "2", "1")
	items := ta.pool(t).Transactions[1].Items
	require.Len(t, items, 2)
	assert.Equal(t, models.Item{Label: "Pasta", Cost: 27, Splits: []float64{1, 1, 0}}, items[0])

	ta.mustRun(t, "edit-item", "-label", "", "2", "2")
	items = ta.pool(t).Transactions[1].Items
	assert.Equal(t, models.Item{Cost: 3, Splits: []float64{1, 1, 1}}, items[1])

	tests := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
	}{
		{name: "nothing to change", args: []string{"2", "1"}, status: subcommands.ExitUsageError},
		{name: "missing item", args: []string{"-cost", "5", "2"}, status: subcommands.ExitUsageError},
		{name: "bad cost", args: []string{"-cost", "abc", "2", "1"}, status: subcommands.ExitUsageError},
		{name: "plain transaction", args: []string{"-cost", "5", "1", "1"}, status: subcommands.ExitFailure},
		{name: "out of range", args: []string{"-cost", "5", "2", "3"}, status: subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ta.pool(t)
			assert.Equal(t, tt.status, ta.run(t, "edit-item", tt.args...))
			assert.Equal(t, before, ta.pool(t))
		})
	}
}

func TestAddTxValidation(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "new", "Alice", "Bob")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing cost", args: []string{"-payer", "Alice"}},
		{name: "three decimals", args: []string{"-cost", "1.234", "-payer", "Alice"}},
		{name: "unknown payer", args: []string{"-cost", "5", "-payer", "Zoe"}},
		{name: "too many weights", args: []string{"-cost", "5", "-payer", "Bob", "-splits", "1,1,1"}},
		{name: "bad weight", args: []string{"-cost", "5", "-payer", "Bob", "-splits", "1,x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, subcommands.ExitUsageError, ta.run(t, "add-tx", tt.args...))
			assert.Empty(t, ta.pool(t).Transactions)
		})
	}
}

func TestNewRefusesToOverwrite(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "new", "Alice")

	assert.Equal(t, subcommands.ExitUsageError, ta.run(t, "new", "Bob"))
	assert.Equal(t, []string{"Alice"}, ta.pool(t).People)

	ta.mustRun(t, "new", "-force", "Bob")
	assert.Equal(t, []string{"Bob"}, ta.pool(t).People)
}

func TestShareAndUnshare(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	link := strings.TrimSpace(ta.mustRun(t, "share"))
	assert.True(t, strings.HasPrefix(link, config.DefaultShareBase+"?state="), link)

	other := filepath.Join(ta.dir, "shared.json")
	ta.mustRun(t, "unshare", "-f", other, link)

	got, err := share.ReadFile(other)
	require.NoError(t, err)
	want := ta.pool(t)
	want.Name = ""
	assert.Equal(t, want, got)

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "unshare", "http://localhost:8080/"))
}

func TestPoolCommands(t *testing.T) {
	ta := newTestApp(t)
	ta.trip(t)

	ta.mustRun(t, "save")
	out := ta.mustRun(t, "pools")
	assert.Contains(t, out, "Trip")

	ta.mustRun(t, "save", "Weekend")
	assert.Equal(t, "Weekend", ta.pool(t).Name)

	other := filepath.Join(ta.dir, "opened.json")
	ta.mustRun(t, "open", "-f", other, "Trip")
	opened, err := share.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "Trip", opened.Name)
	assert.Equal(t, ta.pool(t).Transactions, opened.Transactions)

	ta.mustRun(t, "drop", "Trip")
	out = ta.mustRun(t, "pools")
	assert.NotContains(t, out, "Trip")
	assert.Contains(t, out, "Weekend")

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "open", "Trip"))
	assert.Contains(t, ta.stderr.String(), "pool not found")
}

func TestSaveWithoutName(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "new", "Alice")

	assert.Equal(t, subcommands.ExitUsageError, ta.run(t, "save"))
}

func TestMissingPoolFile(t *testing.T) {
	ta := newTestApp(t)

	assert.Equal(t, subcommands.ExitFailure, ta.run(t, "summary"))
	assert.Contains(t, ta.stderr.String(), "Error reading pool")
}
