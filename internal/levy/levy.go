package levy

import (
	"time"

	"github.com/google/uuid"
)

// FundType classifies which fund a levy run draws against.
type FundType string

const (
	FundAdmin   FundType = "admin"
	FundCapital FundType = "capital"
)

// Valid reports whether the fund type is one of the two known categories.
func (f FundType) Valid() bool {
	return f == FundAdmin || f == FundCapital
}

// RunStatus is the lifecycle state of a levy run.
type RunStatus string

const (
	RunStatusDraft  RunStatus = "draft"
	RunStatusIssued RunStatus = "issued"
)

// InvoiceStatus is the lifecycle state of a single lot's invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Run is one billing event for a scheme: a total budget split across lots.
// TotalAmount is fixed at creation and never mutated.
type Run struct {
	ID          uuid.UUID
	SchemeID    uuid.UUID
	FundType    FundType
	TotalAmount int64 // minor currency units
	PeriodLabel string
	PeriodStart time.Time
	PeriodEnd   time.Time
	DueDate     time.Time
	Status      RunStatus
	CreatedAt   time.Time
	IssuedAt    *time.Time
}

// Invoice is one lot's share of a run. Amount is immutable once persisted;
// only status and the two timestamps change. Lot contact fields are loaded
// via JOIN from the entitlement roll.
type Invoice struct {
	ID        uuid.UUID
	RunID     uuid.UUID
	LotID     uuid.UUID
	Amount    int64 // minor currency units
	Status    InvoiceStatus
	SentAt    *time.Time
	PaidAt    *time.Time
	CreatedAt time.Time

	LotNumber  string
	OwnerName  string
	OwnerEmail string // empty when the owner has no usable address
}

// WeightedLot is the entitlement roll's view of a lot, consumed as
// distribution input. It is never persisted by this package.
type WeightedLot struct {
	LotID      uuid.UUID
	LotNumber  string
	Weight     int64
	OwnerName  string
	OwnerEmail string
}
