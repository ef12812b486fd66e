package entitlement

import (
	"time"

	"github.com/google/uuid"
)

// Lot is one lot on a scheme's entitlement roll. The unit entitlement is the
// integer weight that drives levy distribution.
type Lot struct {
	ID          uuid.UUID
	SchemeID    uuid.UUID
	LotNumber   string
	Entitlement int64
	OwnerName   string
	OwnerEmail  string // empty when the owner has no usable address
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LotParams is one incoming roll row, before persistence.
type LotParams struct {
	LotNumber   string
	Entitlement int64
	OwnerName   string
	OwnerEmail  string
}

// Totals summarizes a scheme's roll.
type Totals struct {
	LotCount    int
	TotalWeight int64
}
