// Package allocation splits a whole-cent budget across weighted entries using
// the Largest Remainder Method, guaranteeing the parts sum exactly to the total.
package allocation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// ErrInvalidInput is wrapped by all precondition failures of Distribute.
var ErrInvalidInput = errors.New("invalid allocation input")

// Entry is one weighted participant in a distribution.
type Entry struct {
	ID     uuid.UUID
	Weight int64
}

// Share is the whole-cent amount allocated to one entry.
type Share struct {
	ID     uuid.UUID
	Amount int64
}

// Distribute splits budget (minor currency units) across entries proportionally
// to their weights. Each entry gets the floor of its exact share budget*w/total;
// the leftover cents go one at a time to the entries with the largest fractional
// remainders. Remainders are compared as integers (budget*w mod total), so the
// result is exact and platform-independent.
//
// Ties on remainder are broken by input order: the earlier entry wins the extra
// cent. The sort is stable, so the outcome is deterministic.
//
// The returned shares are in input order and always sum to budget exactly.
func Distribute(budget int64, entries []Entry) ([]Share, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive, got %d", ErrInvalidInput, budget)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidInput)
	}

	var total int64

	for i, e := range entries {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%w: entry %d has non-positive weight %d", ErrInvalidInput, i, e.Weight)
		}

		if budget > math.MaxInt64/e.Weight {
			return nil, fmt.Errorf("%w: budget %d * weight %d overflows", ErrInvalidInput, budget, e.Weight)
		}

		total += e.Weight
	}

	shares := make([]Share, len(entries))
	remainders := make([]int64, len(entries))
	order := make([]int, len(entries))

	var allocated int64

	for i, e := range entries {
		product := budget * e.Weight
		shares[i] = Share{ID: e.ID, Amount: product / total}
		remainders[i] = product % total
		order[i] = i
		allocated += shares[i].Amount
	}

	// Stable keeps input order for equal remainders.
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	// Leftover is < len(entries) by construction; the wrap-around below is a
	// fallback so no cent is ever left undistributed.
	leftover := budget - allocated
	for i := int64(0); i < leftover; i++ {
		shares[order[i%int64(len(order))]].Amount++
	}

	return shares, nil
}

// PercentShare returns the informational display percentage for a weight. It is
// never used in monetary computation.
func PercentShare(weight, total int64) float64 {
	if total == 0 {
		return 0
	}

	return float64(weight) / float64(total) * 100
}
