package allocation_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MWhitfield89/strata/internal/allocation"
)

func entries(weights ...int64) []allocation.Entry {
	es := make([]allocation.Entry, len(weights))
	for i, w := range weights {
		es[i] = allocation.Entry{ID: uuid.New(), Weight: w}
	}

	return es
}

func sum(shares []allocation.Share) int64 {
	var total int64
	for _, s := range shares {
		total += s.Amount
	}

	return total
}

func TestDistribute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		budget  int64
		entries []allocation.Entry
	}{
		{name: "ZeroBudget", budget: 0, entries: entries(1)},
		{name: "NegativeBudget", budget: -100, entries: entries(1)},
		{name: "NoEntries", budget: 100, entries: nil},
		{name: "ZeroWeight", budget: 100, entries: entries(5, 0, 3)},
		{name: "NegativeWeight", budget: 100, entries: entries(5, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := allocation.Distribute(tt.budget, tt.entries)
			require.ErrorIs(t, err, allocation.ErrInvalidInput)
			assert.Nil(t, shares)
		})
	}
}

func TestDistribute_EvenSplit(t *testing.T) {
	// $50,000.00 budget, lot holding 15 of 200 entitlements: exact share is
	// 5,000,000 * 15 / 200 = 375,000 cents with no remainder.
	es := entries(15, 185)

	shares, err := allocation.Distribute(5_000_000, es)
	require.NoError(t, err)

	assert.Equal(t, int64(375_000), shares[0].Amount)
	assert.Equal(t, int64(4_625_000), shares[1].Amount)
}

func TestDistribute_UnevenSplit(t *testing.T) {
	// 100 cents over three equal weights cannot split evenly. Remainders tie,
	// so the first entry in input order gets the extra cent.
	shares, err := allocation.Distribute(100, entries(1, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(34), shares[0].Amount)
	assert.Equal(t, int64(33), shares[1].Amount)
	assert.Equal(t, int64(33), shares[2].Amount)
	assert.Equal(t, int64(100), sum(shares))
}

func TestDistribute_LargestRemainderWins(t *testing.T) {
	// 100 over weights 1,2,3,5 (total 11). Floors allocate 99; products mod 11
	// are 1,2,3,5, so the weight-5 entry has the largest remainder and takes
	// the leftover cent.
	shares, err := allocation.Distribute(100, entries(1, 2, 3, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(9), shares[0].Amount)
	assert.Equal(t, int64(18), shares[1].Amount)
	assert.Equal(t, int64(27), shares[2].Amount)
	assert.Equal(t, int64(46), shares[3].Amount)
}

func TestDistribute_PreservesInputOrder(t *testing.T) {
	es := entries(3, 1, 2)

	shares, err := allocation.Distribute(1000, es)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	for i, e := range es {
		assert.Equal(t, e.ID, shares[i].ID)
	}
}

func TestDistribute_ExactSumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(2000)
		weights := make([]int64, n)

		for j := range weights {
			weights[j] = 1 + rng.Int63n(10_000)
		}

		budget := 1 + rng.Int63n(100_000_000)

		shares, err := allocation.Distribute(budget, entries(weights...))
		require.NoError(t, err)
		require.Equal(t, budget, sum(shares), "budget=%d n=%d", budget, n)

		for _, s := range shares {
			require.GreaterOrEqual(t, s.Amount, int64(0))
		}
	}
}

func TestDistribute_Deterministic(t *testing.T) {
	es := entries(7, 7, 7, 7, 7, 3, 3, 3)

	first, err := allocation.Distribute(9973, es)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := allocation.Distribute(9973, es)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDistribute_MonotonicFairness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := 2 + rng.Intn(50)
		weights := make([]int64, n)

		for j := range weights {
			weights[j] = 1 + rng.Int63n(500)
		}

		budget := 1 + rng.Int63n(1_000_000)
		target := rng.Intn(n)

		base, err := allocation.Distribute(budget, entries(weights...))
		require.NoError(t, err)

		weights[target] += 1 + rng.Int63n(100)

		bumped, err := allocation.Distribute(budget, entries(weights...))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, bumped[target].Amount, base[target].Amount,
			"raising a weight must never lower its allocation")
	}
}

func TestDistribute_SingleEntryTakesAll(t *testing.T) {
	shares, err := allocation.Distribute(12345, entries(99))
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, int64(12345), shares[0].Amount)
}

func TestDistribute_OverflowGuard(t *testing.T) {
	_, err := allocation.Distribute(1<<40, entries(1<<40))
	require.ErrorIs(t, err, allocation.ErrInvalidInput)
}

func TestPercentShare(t *testing.T) {
	assert.InDelta(t, 7.5, allocation.PercentShare(15, 200), 1e-9)
	assert.Zero(t, allocation.PercentShare(10, 0))
}
