package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/costsplits/internal/models"
)

func samplePool() models.Pool {
	return models.Pool{
		Name:   "Trip",
		People: []string{"A", "B", "C"},
		Transactions: []models.Transaction{
			{Name: "Taxi", Payer: 0, Cost: 30, Splits: []float64{1, 1, 0}},
			{Name: "Lunch", Payer: 2, Cost: 45, Splits: []float64{1, 0, 1}},
			{
				Name:   "Groceries",
				Payer:  0,
				Cost:   20,
				Splits: []float64{1, 1, 1},
				Items:  []models.Item{{Label: "Beer", Cost: 20, Splits: []float64{0, 1, 0}}},
			},
		},
	}
}

func TestAddPerson(t *testing.T) {
	p := samplePool()

	out, err := AddPerson(p, "  Dana ")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "Dana"}, out.People)
	for _, tx := range out.Transactions {
		assert.Len(t, tx.Splits, 4)
		assert.Zero(t, tx.Splits[3])
		for _, item := range tx.Items {
			assert.Len(t, item.Splits, 4)
		}
	}
	assert.Equal(t, samplePool(), p, "input must not change")
}

func TestAddPersonRejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "   ", "B", " B "} {
		_, err := AddPerson(samplePool(), name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestRenamePerson(t *testing.T) {
	out, err := RenamePerson(samplePool(), 1, "Bea")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Bea", "C"}, out.People)

	same, err := RenamePerson(samplePool(), 1, " B ")
	require.NoError(t, err)
	assert.Equal(t, samplePool().People, same.People)

	_, err = RenamePerson(samplePool(), 1, "C")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = RenamePerson(samplePool(), 1, "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = RenamePerson(samplePool(), 3, "X")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeletePerson(t *testing.T) {
	t.Run("cascades involved transactions", func(t *testing.T) {
		out, err := DeletePerson(samplePool(), 1)
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "C"}, out.People)
		// Taxi (B has weight) and Groceries (B has an item weight) go away.
		require.Len(t, out.Transactions, 1)
		lunch := out.Transactions[0]
		assert.Equal(t, "Lunch", lunch.Name)
		assert.Equal(t, []float64{1, 1}, lunch.Splits)
		assert.Equal(t, 1, lunch.Payer, "payer after removed index shifts down")
	})

	t.Run("uninvolved person keeps transactions", func(t *testing.T) {
		p := samplePool()
		p, err := AddPerson(p, "D")
		require.NoError(t, err)

		out, err := DeletePerson(p, 3)
		require.NoError(t, err)
		assert.Equal(t, samplePool(), out)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := DeletePerson(samplePool(), -1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestTransactionEdits(t *testing.T) {
	p := samplePool()

	p, err := AddTransaction(p, models.Transaction{Name: "Tip", Payer: 1, Cost: 6, Splits: []float64{1}})
	require.NoError(t, err)
	require.Len(t, p.Transactions, 4)
	assert.Equal(t, []float64{1, 0, 0}, p.Transactions[3].Splits, "weights are padded")

	_, err = AddTransaction(p, models.Transaction{Payer: 3, Cost: 1})
	assert.ErrorIs(t, err, ErrOutOfRange)

	p, err = SetSplit(p, 3, 2, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 2.5}, p.Transactions[3].Splits)

	p, err = UpdateTransaction(p, 3, models.Transaction{Name: "Tip", Payer: 2, Cost: 8, Splits: []float64{1, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, 8.0, p.Transactions[3].Cost)

	p, err = DeleteTransaction(p, 0)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", p.Transactions[0].Name)

	_, err = DeleteTransaction(p, 10)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestItemLifecycle(t *testing.T) {
	p := samplePool()

	p, err := Itemize(p, 0)
	require.NoError(t, err)
	taxi := p.Transactions[0]
	require.Len(t, taxi.Items, 1)
	assert.Equal(t, 30.0, taxi.Items[0].Cost)
	assert.Equal(t, taxi.Splits, taxi.Items[0].Splits)

	p, err = AddItem(p, 0, models.Item{Label: "Toll", Cost: 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, p.Transactions[0].Items[1].Splits)

	p, err = SetItemSplit(p, 0, 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, p.Transactions[0].Items[1].Splits)

	p, err = DeleteItem(p, 0, 0)
	require.NoError(t, err)
	assert.Len(t, p.Transactions[0].Items, 1)

	p, err = DeleteItem(p, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, p.Transactions[0].Items, "removing the last item un-itemizes")
	assert.Equal(t, []float64{1, 1, 0}, p.Transactions[0].Splits, "top-level weights survive")

	_, err = DeleteItem(p, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	p, err = AddItem(p, 1, models.Item{Cost: 2, Splits: []float64{1, 1, 1}})
	require.NoError(t, err)
	p, err = Unitemize(p, 1)
	require.NoError(t, err)
	assert.False(t, p.Transactions[1].Itemized())
}

func TestUpdateItem(t *testing.T) {
	p := samplePool()

	out, err := UpdateItem(p, 2, 0, models.Item{Label: "Cider", Cost: 12, Splits: []float64{1}})
	require.NoError(t, err)

	assert.Equal(t, models.Item{Label: "Cider", Cost: 12, Splits: []float64{1, 0, 0}}, out.Transactions[2].Items[0])
	assert.Equal(t, "Beer", p.Transactions[2].Items[0].Label, "input is left alone")

	_, err = UpdateItem(p, 2, 1, models.Item{Cost: 1})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = UpdateItem(p, 0, 0, models.Item{Cost: 1})
	assert.ErrorIs(t, err, ErrOutOfRange, "plain transactions have no items")
}

func TestEditsDoNotAliasInput(t *testing.T) {
	p := samplePool()

	out, err := SetSplit(p, 0, 0, 9)
	require.NoError(t, err)
	out.Transactions[2].Items[0].Splits[0] = 7

	assert.Equal(t, samplePool(), p)
}
