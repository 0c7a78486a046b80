package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/costsplits/internal/models"
)

func validPool() models.Pool {
	return models.Pool{
		People: []string{"A", "B"},
		Transactions: []models.Transaction{
			{Payer: 0, Cost: 10, Splits: []float64{1, 1}},
			{
				Payer:  1,
				Cost:   5,
				Splits: []float64{0, 0},
				Items:  []models.Item{{Label: "Tea", Cost: 5, Splits: []float64{1, 0}}},
			},
		},
	}
}

func TestPool(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Pool)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *models.Pool) {}},
		{name: "empty pool", mutate: func(p *models.Pool) { *p = models.Pool{} }},
		{name: "blank name", mutate: func(p *models.Pool) { p.People[0] = "  " }, wantErr: true},
		{name: "empty name", mutate: func(p *models.Pool) { p.People[0] = "" }, wantErr: true},
		{name: "duplicate name", mutate: func(p *models.Pool) { p.People[1] = "A" }, wantErr: true},
		{name: "negative cost", mutate: func(p *models.Pool) { p.Transactions[0].Cost = -1 }, wantErr: true},
		{name: "infinite cost", mutate: func(p *models.Pool) { p.Transactions[0].Cost = math.Inf(1) }, wantErr: true},
		{name: "NaN weight", mutate: func(p *models.Pool) { p.Transactions[0].Splits[1] = math.NaN() }, wantErr: true},
		{name: "negative weight", mutate: func(p *models.Pool) { p.Transactions[0].Splits[1] = -2 }, wantErr: true},
		{name: "short splits", mutate: func(p *models.Pool) { p.Transactions[0].Splits = []float64{1} }, wantErr: true},
		{name: "payer out of range", mutate: func(p *models.Pool) { p.Transactions[0].Payer = 2 }, wantErr: true},
		{name: "negative payer", mutate: func(p *models.Pool) { p.Transactions[0].Payer = -1 }, wantErr: true},
		{name: "item splits too long", mutate: func(p *models.Pool) { p.Transactions[1].Items[0].Splits = []float64{1, 0, 0} }, wantErr: true},
		{name: "negative item cost", mutate: func(p *models.Pool) { p.Transactions[1].Items[0].Cost = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPool()
			tt.mutate(&p)

			err := Pool(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPool)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDollar(t *testing.T) {
	for in, want := range map[string]float64{"12": 12, "3.50": 3.5, "0.5": 0.5, "7.": 7} {
		got, err := ParseDollar(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "1.234", "-1", "abc", "1e3", " 1"} {
		_, err := ParseDollar(in)
		assert.ErrorIs(t, err, ErrDollarFormat, in)
	}
}

func TestParseWeights(t *testing.T) {
	got, err := ParseWeights("1, 0.75,,2")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.75, 0, 2}, got)

	_, err = ParseWeights("1,-1")
	assert.ErrorIs(t, err, ErrNumberFormat)

	got, err = ParseWeights("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
